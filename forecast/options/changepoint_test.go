package options

import (
	"testing"
	"time"

	"github.com/aouyang1/ozone-forecaster/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangepointGenerateFeatures(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	tSeries := dailyTimes(start, 6)
	trainEnd := start.AddDate(0, 0, 4)

	c := ChangepointOptions{
		Changepoints: []Changepoint{
			NewChangepoint("shift", start.AddDate(0, 0, 2)),
			NewChangepoint("", start.AddDate(0, 0, 1)),
			NewChangepoint("future", start.AddDate(0, 0, 5)),
		},
		EnableGrowth: true,
	}
	feat := c.GenerateFeatures(tSeries, trainEnd)

	// changepoints after the training end are skipped
	assert.Equal(t, 4, feat.Len())
	_, exists := feat.Get(feature.NewChangepoint("future", feature.ChangepointCompBias))
	assert.False(t, exists)

	bias, exists := feat.Get(feature.NewChangepoint("shift", feature.ChangepointCompBias))
	require.True(t, exists)
	assert.Equal(t, []float64{0, 0, 1, 1, 1, 1}, bias)

	slope, exists := feat.Get(feature.NewChangepoint("shift", feature.ChangepointCompSlope))
	require.True(t, exists)
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0.5, 1, 1.5}, slope, 1e-9)

	unnamed, exists := feat.Get(feature.NewChangepoint("1", feature.ChangepointCompBias))
	require.True(t, exists)
	assert.Equal(t, []float64{0, 1, 1, 1, 1, 1}, unnamed)
}

func TestChangepointGenerateFeaturesNoGrowth(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	c := ChangepointOptions{
		Changepoints: []Changepoint{NewChangepoint("shift", start)},
	}
	feat := c.GenerateFeatures(dailyTimes(start, 3), start.AddDate(0, 0, 2))
	assert.Equal(t, 1, feat.Len())
}
