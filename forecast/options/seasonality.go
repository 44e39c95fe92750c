package options

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/aouyang1/ozone-forecaster/feature"
	"github.com/aouyang1/ozone-forecaster/forecast/util"
)

const (
	day = 24 * time.Hour

	// average Gregorian month and year so the Fourier terms stay aligned across leap years
	avgMonth = time.Duration(30.436875 * float64(day))
	avgYear  = time.Duration(365.2425 * float64(day))
)

// SeasonalityOptions configures the number of seasonality components to fit for.
type SeasonalityOptions struct {
	SeasonalityConfigs []SeasonalityConfig `json:"seasonality_configs"`
}

// NewDefaultSeasonalityOptions generates a default seasonality config with weekly and yearly
// seasonal components
func NewDefaultSeasonalityOptions() SeasonalityOptions {
	return SeasonalityOptions{
		SeasonalityConfigs: []SeasonalityConfig{
			NewWeeklySeasonalityConfig(3),
			NewYearlySeasonalityConfig(10),
		},
	}
}

func (s SeasonalityOptions) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	noCfg := " None"
	if len(s.SeasonalityConfigs) > 0 {
		noCfg = ""
	}
	if _, err := fmt.Fprintf(w, "%s%sSeasonality:%s\n", prefix, util.IndentExpand(indent, indentGrowth), noCfg); err != nil {
		return err
	}
	if len(s.SeasonalityConfigs) == 0 {
		return nil
	}
	fmt.Fprintf(tbl, "%s%sName\tPeriod\tOrders\t\n", prefix, util.IndentExpand(indent, indentGrowth+1))
	for _, seasCfg := range s.SeasonalityConfigs {
		fmt.Fprintf(tbl, "%s%s%s\t%s\t%d\t\n",
			prefix, util.IndentExpand(indent, indentGrowth+1),
			seasCfg.Name, seasCfg.Period, seasCfg.Orders)
	}
	return tbl.Flush()
}

// GenerateFeatures creates the sine and cosine terms of every configured order
func (s SeasonalityOptions) GenerateFeatures(epoch []float64) (*feature.Set, error) {
	x := feature.NewSet()
	for _, seasCfg := range s.SeasonalityConfigs {
		if seasCfg.Period <= 0 {
			return nil, fmt.Errorf("seasonality %q has non-positive period, %w", seasCfg.Name, ErrUnknownTimeFeature)
		}
		period := seasCfg.Period.Seconds()
		col := LabelTimeEpoch + "_" + seasCfg.Name
		for order := 1; order <= seasCfg.Orders; order++ {
			sinFeat := feature.NewSeasonality(col, feature.FourierCompSin, order)
			cosFeat := feature.NewSeasonality(col, feature.FourierCompCos, order)
			x.Set(sinFeat, sinFeat.Generate(epoch, period))
			x.Set(cosFeat, cosFeat.Generate(epoch, period))
		}
	}
	return x, nil
}

func (s *SeasonalityOptions) removeDuplicates() {
	// sort seasonality configs so we can find duplicate periods and remove them
	optSeasConfigs := s.SeasonalityConfigs
	sort.Slice(optSeasConfigs, func(i, j int) bool {
		if optSeasConfigs[i].Period != optSeasConfigs[j].Period {
			return optSeasConfigs[i].Period < optSeasConfigs[j].Period
		}
		if optSeasConfigs[i].Orders != optSeasConfigs[j].Orders {
			return optSeasConfigs[i].Orders > optSeasConfigs[j].Orders
		}
		return optSeasConfigs[i].Name < optSeasConfigs[j].Name
	})
	validated := make([]SeasonalityConfig, 0, len(optSeasConfigs))
	var lastValidPeriod time.Duration
	for _, seasCfg := range optSeasConfigs {
		if seasCfg.Period > 0 && seasCfg.Period > lastValidPeriod && seasCfg.Name != "" && seasCfg.Orders > 0 {
			validated = append(validated, seasCfg)
			lastValidPeriod = seasCfg.Period
		}
	}
	s.SeasonalityConfigs = validated
}

// SeasonalityConfig represents a single seasonality configuration to model. This will generate
// Fourier series of the specified period and number of orders. E.g. a period of 7 days
// with 3 orders will create 6 Fourier series of order 1, 2, 3 and for the sine/cosine components
// where order 1 will have a period of 7 days and order 2 will have a period of 3.5 days.
type SeasonalityConfig struct {
	Name   string        `json:"name"`
	Orders int           `json:"orders"`
	Period time.Duration `json:"period"`
}

// NewSeasonalityConfig creates a new seasonality config given a name, period and orders
func NewSeasonalityConfig(name string, period time.Duration, orders int) SeasonalityConfig {
	if orders < 0 {
		orders = 0
	}

	return SeasonalityConfig{
		Name:   name,
		Orders: orders,
		Period: period,
	}
}

// NewWeeklySeasonalityConfig creates a weekly seasonality config given a specified number of orders
func NewWeeklySeasonalityConfig(orders int) SeasonalityConfig {
	return NewSeasonalityConfig(LabelSeasWeekly, 7*day, orders)
}

// NewMonthlySeasonalityConfig creates a monthly seasonality config given a specified number of orders
func NewMonthlySeasonalityConfig(orders int) SeasonalityConfig {
	return NewSeasonalityConfig(LabelSeasMonthly, avgMonth, orders)
}

// NewYearlySeasonalityConfig creates a yearly seasonality config given a specified number of orders
func NewYearlySeasonalityConfig(orders int) SeasonalityConfig {
	return NewSeasonalityConfig(LabelSeasYearly, avgYear, orders)
}
