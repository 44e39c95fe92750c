package forecaster

import (
	"errors"
	"fmt"
	"time"

	"github.com/aouyang1/ozone-forecaster/forecast"
	"github.com/aouyang1/ozone-forecaster/timedataset"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidPeriods   = errors.New("number of periods must be non-negative")
	ErrEmptyTimeDataset = errors.New("no timedataset or uninitialized")
)

// Forecaster generates forecasts with an uncertainty band from a fitted model. It is read only
// once created and can be shared between goroutines.
type Forecaster struct {
	opt *Options

	seriesForecast      *forecast.Forecast
	uncertaintyForecast *forecast.Forecast

	history    *timedataset.TimeDataset
	fitResults *Results
	fitScores  *forecast.Scores
}

// NewFromModel creates a new instance of Forecaster from a previously fit model. When the model
// carries its history the in-sample results and scores are computed once here.
func NewFromModel(model Model) (*Forecaster, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}

	seriesForecast, err := forecast.NewFromModel(model.Series)
	if err != nil {
		return nil, fmt.Errorf("unable to load from series model, %w", err)
	}
	uncertaintyForecast, err := forecast.NewFromModel(model.Uncertainty)
	if err != nil {
		return nil, fmt.Errorf("unable to load from uncertainty model, %w", err)
	}
	f := &Forecaster{
		opt:                 model.Options,
		seriesForecast:      seriesForecast,
		uncertaintyForecast: uncertaintyForecast,
	}

	if model.History == nil {
		return f, nil
	}
	f.history = model.History.Copy()
	f.fitResults, err = f.Predict(f.history.T)
	if err != nil {
		return nil, fmt.Errorf("unable to predict over history, %w", err)
	}
	f.fitScores, err = forecast.NewScores(f.fitResults.Forecast, f.history.Y)
	if err != nil {
		return nil, fmt.Errorf("unable to score history, %w", err)
	}
	return f, nil
}

// MakeFuture returns the history time points followed by the requested number of daily time
// points after the last observed day. Without a stored history the future starts the day
// after the series training end.
func (f *Forecaster) MakeFuture(periods int) ([]time.Time, error) {
	if periods < 0 {
		return nil, fmt.Errorf("%d periods, %w", periods, ErrInvalidPeriods)
	}

	var t []time.Time
	if f.history != nil {
		t = make([]time.Time, 0, f.history.Len()+periods)
		t = append(t, f.history.T...)
	}
	last := f.LastObservedTime()
	t = append(t, timedataset.DailyRange(last.AddDate(0, 0, 1), periods)...)
	return t, nil
}

// LastObservedTime returns the last day of the history or the series training end time when
// no history is stored
func (f *Forecaster) LastObservedTime() time.Time {
	if f.history != nil && f.history.Len() > 0 {
		return timedataset.TimeSlice(f.history.T).EndTime()
	}
	return f.seriesForecast.TrainEndTime()
}

// Predict takes in any set of time samples and generates a forecast, upper, lower values per time point
func (f *Forecaster) Predict(t []time.Time) (*Results, error) {
	seriesRes, seriesComp, err := f.seriesForecast.Predict(t)
	if err != nil {
		return nil, fmt.Errorf("unable to predict series forecasts, %w", err)
	}
	uncertaintyRes, uncertaintyComp, err := f.uncertaintyForecast.Predict(t)
	if err != nil {
		return nil, fmt.Errorf("unable to predict uncertainty forecasts, %w", err)
	}

	// cap uncertainty predictions to be greater than or equal to 0
	for i := 0; i < len(uncertaintyRes); i++ {
		if uncertaintyRes[i] < 0.0 {
			uncertaintyRes[i] = 0.0
		}
	}

	r := &Results{
		T:                     t,
		Forecast:              seriesRes,
		SeriesComponents:      seriesComp,
		UncertaintyComponents: uncertaintyComp,
	}
	upper := make([]float64, len(seriesRes))
	lower := make([]float64, len(seriesRes))

	copy(upper, seriesRes)
	copy(lower, seriesRes)

	floats.Add(upper, uncertaintyRes)
	floats.Sub(lower, uncertaintyRes)
	r.Upper = upper
	r.Lower = lower

	if f.opt.NonNegative {
		clipNegative(r.Forecast)
		clipNegative(r.Upper)
		clipNegative(r.Lower)
	}
	return r, nil
}

func clipNegative(y []float64) {
	for i := range y {
		if y[i] < 0 {
			y[i] = 0
		}
	}
}

// History returns the observed series stored with the model. It must not be modified.
func (f *Forecaster) History() *timedataset.TimeDataset {
	return f.history
}

// TrainEndTime returns the last time point the series model was trained on
func (f *Forecaster) TrainEndTime() time.Time {
	return f.seriesForecast.TrainEndTime()
}

// FitResults returns the predictions over the stored history
func (f *Forecaster) FitResults() (*Results, error) {
	if f.fitResults == nil {
		return nil, ErrEmptyTimeDataset
	}
	return f.fitResults, nil
}

// FitScores returns the in-sample scores against the stored history. Models without a history
// fall back to the scores recorded when the series model was trained.
func (f *Forecaster) FitScores() forecast.Scores {
	if f.fitScores != nil {
		return *f.fitScores
	}
	return f.seriesForecast.Scores()
}

// SeriesModelEq returns a string representation of the fit series model represented as
// y ~ b + m1x1 + m2x2 ...
func (f *Forecaster) SeriesModelEq() (string, error) {
	return f.seriesForecast.ModelEq()
}

// UncertaintyModelEq returns a string representation of the fit uncertainty model represented as
// y ~ b + m1x1 + m2x2 ...
func (f *Forecaster) UncertaintyModelEq() (string, error) {
	return f.uncertaintyForecast.ModelEq()
}

// Model generates a serializeable representation of the options, series model, uncertainty model
// and history.
func (f *Forecaster) Model() (Model, error) {
	seriesModel, err := f.seriesForecast.Model()
	if err != nil {
		return Model{}, fmt.Errorf("unable to fetch series model, %w", err)
	}
	uncertaintyModel, err := f.uncertaintyForecast.Model()
	if err != nil {
		return Model{}, fmt.Errorf("unable to fetch uncertainty model, %w", err)
	}
	m := Model{
		Options:     f.opt,
		Series:      seriesModel,
		Uncertainty: uncertaintyModel,
	}
	if f.history != nil {
		m.History = f.history.Copy()
	}
	return m, nil
}
