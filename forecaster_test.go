package forecaster_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	forecaster "github.com/aouyang1/ozone-forecaster"
	"github.com/aouyang1/ozone-forecaster/forecast"
	"github.com/aouyang1/ozone-forecaster/internal/fixture"
	"github.com/aouyang1/ozone-forecaster/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeFuture(t *testing.T) {
	f, err := forecaster.NewFromModel(fixture.Model(120))
	require.NoError(t, err)

	testData := map[string]struct {
		periods int
		expLen  int
		expLast time.Time
		expErr  error
	}{
		"history only": {
			periods: 0,
			expLen:  120,
			expLast: time.Date(2023, 4, 30, 0, 0, 0, 0, time.UTC),
		},
		"three days": {
			periods: 3,
			expLen:  123,
			expLast: time.Date(2023, 5, 3, 0, 0, 0, 0, time.UTC),
		},
		"negative": {
			periods: -1,
			expErr:  forecaster.ErrInvalidPeriods,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			future, err := f.MakeFuture(td.periods)
			if td.expErr != nil {
				assert.ErrorIs(t, err, td.expErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, future, td.expLen)
			assert.Equal(t, td.expLast, future[len(future)-1])
			assert.Equal(t, fixture.Start, future[0])
			assert.True(t, timedataset.TimeSlice(future).IsDaily())
		})
	}
}

func TestMakeFutureWithoutHistory(t *testing.T) {
	m := fixture.Model(30)
	m.History = nil
	f, err := forecaster.NewFromModel(m)
	require.NoError(t, err)

	future, err := f.MakeFuture(2)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
	}, future)

	_, err = f.FitResults()
	assert.ErrorIs(t, err, forecaster.ErrEmptyTimeDataset)
	assert.Equal(t, 3.21, f.FitScores().RMSE)
}

func TestPredict(t *testing.T) {
	f, err := forecaster.NewFromModel(fixture.Model(120))
	require.NoError(t, err)

	future, err := f.MakeFuture(7)
	require.NoError(t, err)
	res, err := f.Predict(future)
	require.NoError(t, err)
	require.Equal(t, len(future), res.Len())

	history := f.History()
	for i := 0; i < history.Len(); i++ {
		assert.InDelta(t, history.Y[i], res.Forecast[i], 1e-9)
	}
	for i := range res.T {
		assert.InDelta(t, fixture.Uncertainty, res.Upper[i]-res.Forecast[i], 1e-9)
		assert.InDelta(t, fixture.Uncertainty, res.Forecast[i]-res.Lower[i], 1e-9)
		assert.InDelta(t, res.Forecast[i], res.SeriesComponents.Trend[i]+res.SeriesComponents.Seasonality[i]+res.SeriesComponents.Event[i], 1e-9)
	}
}

func TestPredictHoliday(t *testing.T) {
	f, err := forecaster.NewFromModel(fixture.Model(365))
	require.NoError(t, err)

	res, err := f.Predict([]time.Time{
		time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, fixture.NatalEffect}, res.SeriesComponents.Event)
}

func TestPredictNonNegative(t *testing.T) {
	testData := map[string]struct {
		nonNegative bool
		expForecast float64
		expLower    float64
		expUpper    float64
	}{
		"clipped": {
			nonNegative: true,
			expForecast: 0,
			expLower:    0,
			expUpper:    0,
		},
		"raw": {
			nonNegative: false,
			expForecast: -10,
			expLower:    -14,
			expUpper:    -6,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			m := fixture.Model(30)
			m.Options.NonNegative = td.nonNegative
			m.Series.Options.SeasonalityOptions.SeasonalityConfigs = nil
			m.Series.Weights = forecast.Weights{Intercept: -10}

			f, err := forecaster.NewFromModel(m)
			require.NoError(t, err)
			res, err := f.Predict([]time.Time{time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)})
			require.NoError(t, err)
			assert.InDelta(t, td.expForecast, res.Forecast[0], 1e-9)
			assert.InDelta(t, td.expLower, res.Lower[0], 1e-9)
			assert.InDelta(t, td.expUpper, res.Upper[0], 1e-9)
		})
	}
}

func TestFitScores(t *testing.T) {
	f, err := forecaster.NewFromModel(fixture.Model(120))
	require.NoError(t, err)

	scores := f.FitScores()
	assert.InDelta(t, 0, scores.RMSE, 1e-9)
	assert.InDelta(t, 0, scores.MAPE, 1e-9)
	assert.InDelta(t, 1, scores.R2, 1e-9)

	fitRes, err := f.FitResults()
	require.NoError(t, err)
	assert.Equal(t, 120, fitRes.Len())
	assert.Equal(t, time.Date(2023, 4, 30, 0, 0, 0, 0, time.UTC), f.TrainEndTime())
	assert.Equal(t, time.Date(2023, 4, 30, 0, 0, 0, 0, time.UTC), f.LastObservedTime())
}

func TestModelEq(t *testing.T) {
	f, err := forecaster.NewFromModel(fixture.Model(30))
	require.NoError(t, err)

	eq, err := f.SeriesModelEq()
	require.NoError(t, err)
	assert.Equal(t, "y ~ 40.00+3.00*seas_epoch_weekly_01_sin-2.00*event_natal", eq)

	_, err = f.UncertaintyModelEq()
	assert.ErrorIs(t, err, forecast.ErrNoModelCoefficients)
}

func TestModelRoundTrip(t *testing.T) {
	f, err := forecaster.NewFromModel(fixture.Model(60))
	require.NoError(t, err)

	m, err := f.Model()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, forecaster.WriteModel(&buf, m))

	decoded, err := forecaster.ReadModel(&buf)
	require.NoError(t, err)
	nextF, err := forecaster.NewFromModel(decoded)
	require.NoError(t, err)

	future, err := f.MakeFuture(5)
	require.NoError(t, err)
	nextFuture, err := nextF.MakeFuture(5)
	require.NoError(t, err)
	require.Len(t, nextFuture, len(future))
	for i := range future {
		assert.True(t, future[i].Equal(nextFuture[i]))
	}

	res, err := f.Predict(future)
	require.NoError(t, err)
	nextRes, err := nextF.Predict(nextFuture)
	require.NoError(t, err)
	assert.InDeltaSlice(t, res.Forecast, nextRes.Forecast, 1e-9)
	assert.InDeltaSlice(t, res.Upper, nextRes.Upper, 1e-9)
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(dir, "missing.json")
		_, err := forecaster.LoadModel(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("undecodable", func(t *testing.T) {
		_, err := forecaster.ReadModel(strings.NewReader("{not json"))
		require.Error(t, err)
	})

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "modelo_O3_prophet.json")
		var buf bytes.Buffer
		require.NoError(t, forecaster.WriteModel(&buf, fixture.Model(10)))
		require.NoError(t, writeFile(path, buf.Bytes()))

		m, err := forecaster.LoadModel(path)
		require.NoError(t, err)
		assert.Equal(t, 10, m.History.Len())
	})
}

func TestModelValidate(t *testing.T) {
	testData := map[string]struct {
		update func(m *forecaster.Model)
		expErr error
	}{
		"valid": {
			update: func(m *forecaster.Model) {},
		},
		"no options": {
			update: func(m *forecaster.Model) { m.Options = nil },
			expErr: forecaster.ErrNoOptionsInModel,
		},
		"no series options": {
			update: func(m *forecaster.Model) { m.Series.Options = nil },
			expErr: forecast.ErrNoOptions,
		},
		"untrained uncertainty": {
			update: func(m *forecaster.Model) { m.Uncertainty.TrainEndTime = time.Time{} },
			expErr: forecast.ErrUntrainedForecast,
		},
		"empty history": {
			update: func(m *forecaster.Model) { m.History = &timedataset.TimeDataset{} },
			expErr: timedataset.ErrNoTrainingData,
		},
		"gap in history": {
			update: func(m *forecaster.Model) {
				m.History.T = append(m.History.T[:4:4], m.History.T[5:]...)
				m.History.Y = m.History.Y[1:]
			},
			expErr: forecaster.ErrNonDailyHistory,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			m := fixture.Model(10)
			td.update(&m)
			err := m.Validate()
			if td.expErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, td.expErr)
		})
	}
}

func TestModelTablePrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fixture.Model(10).TablePrint(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Forecaster:\n"))
	assert.Contains(t, out, "  Residual Window: 30    Residual Z-Score: 1.96    Non Negative: true\n")
	assert.Contains(t, out, "  History: 10 points from 2023-01-01 to 2023-01-10\n")
	assert.Contains(t, out, "  Series:\n")
	assert.Contains(t, out, "  Uncertainty:\n")
	assert.Contains(t, out, "RMSE: 3.210")
}
