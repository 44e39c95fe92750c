package forecast

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aouyang1/ozone-forecaster/feature"
	"github.com/aouyang1/ozone-forecaster/forecast/options"
	"github.com/aouyang1/ozone-forecaster/forecast/util"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrUninitializedForecast = errors.New("uninitialized forecast")
	ErrNoOptions             = errors.New("no options set in forecast model")
	ErrNoModelCoefficients   = errors.New("no model coefficients from fit")
	ErrUntrainedForecast     = errors.New("forecast has not been trained yet")
	ErrNoPredictTime         = errors.New("no time points to predict")
)

// Forecast represents a single linear forecast model of a time series. The series is decomposed
// into an intercept, trend components (growth and changepoints), seasonal components and holiday
// events. A Forecast is read only once created and is safe for concurrent use.
type Forecast struct {
	opt    *options.Options
	scores *Scores

	// model coefficients
	fLabels *feature.Labels

	trainStartTime time.Time
	trainEndTime   time.Time

	coef      []float64
	intercept float64
}

// NewFromModel creates a new forecast instance given a forecast Model to initialize. This
// instance can be used for inference immediately.
func NewFromModel(model Model) (*Forecast, error) {
	if model.Options == nil {
		return nil, ErrNoOptions
	}
	if model.TrainEndTime.IsZero() {
		return nil, ErrUntrainedForecast
	}
	if err := model.Options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid forecast options, %w", err)
	}
	model.Options.Normalize()

	labels, err := model.Weights.FeatureLabels()
	if err != nil {
		return nil, fmt.Errorf("unable to decode feature labels, %w", err)
	}

	f := &Forecast{
		opt:            model.Options,
		scores:         model.Scores,
		fLabels:        feature.NewLabels(labels),
		trainStartTime: model.TrainStartTime,
		trainEndTime:   model.TrainEndTime,
		intercept:      model.Weights.Intercept,
		coef:           model.Weights.Coefficients(),
	}
	return f, nil
}

// Predict takes a slice of times in any order and produces the predicted value for those
// times along with the trend, seasonality and event components.
func (f *Forecast) Predict(t []time.Time) ([]float64, Components, error) {
	if f == nil {
		return nil, Components{}, ErrUninitializedForecast
	}
	if len(t) == 0 {
		return nil, Components{}, ErrNoPredictTime
	}

	x, err := f.opt.GenerateFeatures(t, f.trainStartTime, f.trainEndTime)
	if err != nil {
		return nil, Components{}, fmt.Errorf("unable to generate features, %w", err)
	}

	trendSet := x.Filter(feature.FeatureTypeGrowth)
	trendSet.Update(x.Filter(feature.FeatureTypeChangepoint))

	comp := Components{
		Trend:       f.runInference(trendSet, len(t), true),
		Seasonality: f.runInference(x.Filter(feature.FeatureTypeSeasonality), len(t), false),
		Event:       f.runInference(x.Filter(feature.FeatureTypeEvent), len(t), false),
	}

	res := f.runInference(x, len(t), true)
	if f.opt.UseLog {
		util.SliceMap(res, math.Exp)
	}
	return res, comp, nil
}

// runInference computes the weighted sum of every feature with a coefficient. Features
// without a coefficient in the model are ignored.
func (f *Forecast) runInference(x *feature.Set, n int, withIntercept bool) []float64 {
	yhat := make([]float64, n)
	if withIntercept {
		floats.AddConst(f.intercept, yhat)
	}

	for _, label := range x.Labels().Labels() {
		wIdx, exists := f.fLabels.Index(label)
		if !exists {
			continue
		}
		data, _ := x.Get(label)
		floats.AddScaled(yhat, f.coef[wIdx], data)
	}
	return yhat
}

// FeatureLabels returns the slice of feature labels in the order of the coefficients
func (f *Forecast) FeatureLabels() []feature.Feature {
	if f == nil {
		return nil
	}
	return f.fLabels.Labels()
}

// Coefficients returns a forecast model map of coefficients keyed by the string
// representation of each feature label
func (f *Forecast) Coefficients() (map[string]float64, error) {
	if f == nil {
		return nil, ErrUninitializedForecast
	}

	labels := f.fLabels.Labels()
	if len(labels) == 0 || len(f.coef) == 0 {
		return nil, ErrNoModelCoefficients
	}
	coef := make(map[string]float64)
	for i := 0; i < len(f.coef); i++ {
		coef[labels[i].String()] = f.coef[i]
	}
	return coef, nil
}

// Intercept returns the intercept of the forecast model
func (f *Forecast) Intercept() float64 {
	if f == nil {
		return 0
	}
	return f.intercept
}

// TrainStartTime returns the first time point of the training data
func (f *Forecast) TrainStartTime() time.Time {
	if f == nil {
		return time.Time{}
	}
	return f.trainStartTime
}

// TrainEndTime returns the last time point of the training data
func (f *Forecast) TrainEndTime() time.Time {
	if f == nil {
		return time.Time{}
	}
	return f.trainEndTime
}

// Scores returns the scores stored with the model when it was trained
func (f *Forecast) Scores() Scores {
	if f == nil || f.scores == nil {
		return Scores{}
	}
	return *f.scores
}

// Model returns the serializeable format of the forecast model composing of the
// forecast options, intercept, coefficients with their feature labels, and the
// model fit scores
func (f *Forecast) Model() (Model, error) {
	if f == nil {
		return Model{}, ErrUninitializedForecast
	}

	labels := f.fLabels.Labels()
	fws := make([]FeatureWeight, 0, len(f.coef))
	for i, c := range f.coef {
		fws = append(fws, NewFeatureWeight(labels[i], c))
	}
	m := Model{
		TrainStartTime: f.trainStartTime,
		TrainEndTime:   f.trainEndTime,
		Options:        f.opt,
		Scores:         f.scores,
		Weights: Weights{
			Intercept: f.intercept,
			Coef:      fws,
		},
	}
	return m, nil
}

// ModelEq returns a string representation of the model linear equation in the format of
// y ~ b + m1x1 + m2x2 + ...
func (f *Forecast) ModelEq() (string, error) {
	if f == nil {
		return "", ErrUninitializedForecast
	}

	coef, err := f.Coefficients()
	if err != nil {
		return "", err
	}

	var eq strings.Builder
	eq.WriteString("y ~ ")
	eq.WriteString(fmt.Sprintf("%.2f", f.Intercept()))
	for _, label := range f.fLabels.Labels() {
		w := coef[label.String()]
		if w == 0 {
			continue
		}
		eq.WriteString(fmt.Sprintf("%+.2f*%s", w, label))
	}
	return eq.String(), nil
}
