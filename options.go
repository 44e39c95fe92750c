package forecaster

import (
	"fmt"
	"io"

	"github.com/aouyang1/ozone-forecaster/forecast/util"
)

// Options stores how the uncertainty model was fit along with prediction time behaviour.
type Options struct {
	// ResidualWindow is the number of residual points used for each rolling standard deviation
	// when the uncertainty model was fit
	ResidualWindow int `json:"residual_window"`

	// ResidualZscore scales the rolling standard deviation into the uncertainty band
	ResidualZscore float64 `json:"residual_zscore"`

	// NonNegative clips the forecast and its bounds at zero since concentrations cannot be negative
	NonNegative bool `json:"non_negative"`
}

func NewDefaultOptions() *Options {
	return &Options{
		ResidualWindow: 30,
		ResidualZscore: 1.96,
		NonNegative:    true,
	}
}

func (o *Options) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	_, err := fmt.Fprintf(w, "%s%sResidual Window: %d    Residual Z-Score: %.2f    Non Negative: %t\n",
		prefix, util.IndentExpand(indent, indentGrowth),
		o.ResidualWindow, o.ResidualZscore, o.NonNegative,
	)
	return err
}
