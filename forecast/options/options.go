// Package options contains all forecast options for a linear model of a daily univariate
// time series
package options

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aouyang1/ozone-forecaster/feature"
	"github.com/aouyang1/ozone-forecaster/forecast/util"
)

const (
	LabelTimeEpoch = "epoch"

	LabelSeasWeekly  = "weekly"
	LabelSeasMonthly = "monthly"
	LabelSeasYearly  = "yearly"
)

var (
	ErrUnknownTimeFeature = errors.New("unknown time feature")
	ErrUnknownGrowthType  = errors.New("unknown growth type")
	ErrEmptyTime          = errors.New("no time points to generate features for")
)

// Options configures which features are generated for a forecast: the growth type, known
// changepoints, Fourier seasonality and holiday events. UseLog signals the model was fit on
// the log of the series so predictions must be exponentiated.
type Options struct {
	UseLog bool `json:"use_log"`

	GrowthType         string             `json:"growth_type"`
	ChangepointOptions ChangepointOptions `json:"changepoint_options"`
	SeasonalityOptions SeasonalityOptions `json:"seasonality_options"`
	HolidayOptions     HolidayOptions     `json:"holiday_options"`
}

// NewDefaultOptions returns a set of default forecast options for daily data: linear growth
// with weekly and yearly seasonality
func NewDefaultOptions() *Options {
	return &Options{
		GrowthType:         feature.GrowthLinear,
		ChangepointOptions: NewDefaultChangepointOptions(),
		SeasonalityOptions: NewDefaultSeasonalityOptions(),
	}
}

// Validate checks the options can generate features
func (o *Options) Validate() error {
	switch o.GrowthType {
	case "", feature.GrowthLinear, feature.GrowthQuadratic:
	default:
		return fmt.Errorf("%q, %w", o.GrowthType, ErrUnknownGrowthType)
	}
	if err := o.HolidayOptions.Validate(); err != nil {
		return err
	}
	return nil
}

// Normalize drops invalid or duplicate seasonality configs. It should be called once before
// the options are shared since feature generation does not modify the options.
func (o *Options) Normalize() {
	o.SeasonalityOptions.removeDuplicates()
}

// GenerateFeatures generates every feature column for the input times. The training start and
// end times anchor the growth and changepoint features so that the same time produces the same
// value at training and at inference.
func (o *Options) GenerateFeatures(t []time.Time, trainStartTime, trainEndTime time.Time) (*feature.Set, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if len(t) == 0 {
		return nil, ErrEmptyTime
	}

	feat := feature.NewSet()

	epochFeat := feature.NewTime(LabelTimeEpoch)
	epoch := epochFeat.Generate(t)

	if err := o.generateGrowthFeatures(epoch, trainStartTime, trainEndTime, feat); err != nil {
		return nil, err
	}

	feat.Update(o.ChangepointOptions.GenerateFeatures(t, trainEndTime))

	seasFeat, err := o.SeasonalityOptions.GenerateFeatures(epoch)
	if err != nil {
		return nil, fmt.Errorf("unable to generate seasonality features, %w", err)
	}
	feat.Update(seasFeat)

	holidayFeat, err := o.HolidayOptions.GenerateFeatures(t)
	if err != nil {
		return nil, fmt.Errorf("unable to generate holiday features, %w", err)
	}
	feat.Update(holidayFeat)

	return feat, nil
}

func (o *Options) generateGrowthFeatures(epoch []float64, trainStartTime, trainEndTime time.Time, feat *feature.Set) error {
	if !trainEndTime.After(trainStartTime) {
		return nil
	}
	interceptFeat := feature.Intercept()
	feat.Set(interceptFeat, interceptFeat.Generate(epoch, trainStartTime, trainEndTime))

	var growthFeat *feature.Growth
	switch o.GrowthType {
	case "":
		return nil
	case feature.GrowthLinear:
		growthFeat = feature.Linear()
	case feature.GrowthQuadratic:
		growthFeat = feature.Quadratic()
	default:
		return fmt.Errorf("%q, %w", o.GrowthType, ErrUnknownGrowthType)
	}
	feat.Set(growthFeat, growthFeat.Generate(epoch, trainStartTime, trainEndTime))
	return nil
}

// TablePrint writes a human readable summary of the options
func (o *Options) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	growth := o.GrowthType
	if growth == "" {
		growth = "none"
	}
	if _, err := fmt.Fprintf(w, "%s%sGrowth: %s    Log Transform: %t\n",
		prefix, util.IndentExpand(indent, indentGrowth), growth, o.UseLog); err != nil {
		return err
	}
	if err := o.SeasonalityOptions.TablePrint(w, prefix, indent, indentGrowth); err != nil {
		return err
	}
	if err := o.ChangepointOptions.TablePrint(w, prefix, indent, indentGrowth); err != nil {
		return err
	}
	return o.HolidayOptions.TablePrint(w, prefix, indent, indentGrowth)
}
