package forecaster_test

import (
	"testing"

	forecaster "github.com/aouyang1/ozone-forecaster"
	"github.com/aouyang1/ozone-forecaster/internal/fixture"
	"github.com/pkg/profile"
)

var benchPredictRes *forecaster.Results

func BenchmarkPredictFromModel(b *testing.B) {
	f, err := forecaster.NewFromModel(fixture.Model(3 * 365))
	if err != nil {
		panic(err)
	}

	input, err := f.MakeFuture(365)
	if err != nil {
		panic(err)
	}
	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	for b.Loop() {
		benchPredictRes, err = f.Predict(input)
		if err != nil {
			panic(err)
		}
	}
}
