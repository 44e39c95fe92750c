// Package fixture builds small fitted models for tests and benchmarks.
package fixture

import (
	"time"

	forecaster "github.com/aouyang1/ozone-forecaster"
	"github.com/aouyang1/ozone-forecaster/feature"
	"github.com/aouyang1/ozone-forecaster/forecast"
	"github.com/aouyang1/ozone-forecaster/forecast/options"
	"github.com/aouyang1/ozone-forecaster/timedataset"
)

const (
	Base        = 40.0
	WeeklyAmp   = 3.0
	Uncertainty = 4.0
	NatalEffect = -2.0
)

// Start is the first day of the fixture history
var Start = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

// Model returns a fitted model whose series model reproduces a noise free simulated history of
// the given number of days exactly. The uncertainty band is a constant width.
func Model(days int) forecaster.Model {
	history := timedataset.Simulate(Start, days, timedataset.SimulateConfig{
		Base:      Base,
		WeeklyAmp: WeeklyAmp,
	})
	end := timedataset.TimeSlice(history.T).EndTime()

	series := forecast.Model{
		TrainStartTime: Start,
		TrainEndTime:   end,
		Options: &options.Options{
			GrowthType: feature.GrowthLinear,
			SeasonalityOptions: options.SeasonalityOptions{
				SeasonalityConfigs: []options.SeasonalityConfig{
					options.NewWeeklySeasonalityConfig(1),
				},
			},
			HolidayOptions: options.HolidayOptions{
				Enabled: true,
				Names:   []string{"natal"},
			},
		},
		Scores: &forecast.Scores{RMSE: 3.21, MSE: 3.21 * 3.21, MAPE: 0.08, R2: 0.71},
		Weights: forecast.Weights{
			Intercept: Base,
			Coef: []forecast.FeatureWeight{
				forecast.NewFeatureWeight(feature.Linear(), 0),
				forecast.NewFeatureWeight(feature.NewSeasonality("epoch_weekly", feature.FourierCompSin, 1), WeeklyAmp),
				forecast.NewFeatureWeight(feature.NewSeasonality("epoch_weekly", feature.FourierCompCos, 1), 0),
				forecast.NewFeatureWeight(feature.NewEvent("natal"), NatalEffect),
			},
		},
	}

	uncertainty := forecast.Model{
		TrainStartTime: Start,
		TrainEndTime:   end,
		Options:        &options.Options{},
		Weights:        forecast.Weights{Intercept: Uncertainty},
	}

	return forecaster.Model{
		Options:     forecaster.NewDefaultOptions(),
		Series:      series,
		Uncertainty: uncertainty,
		History:     history,
	}
}
