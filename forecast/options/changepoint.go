package options

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/aouyang1/ozone-forecaster/feature"
	"github.com/aouyang1/ozone-forecaster/forecast/util"
)

// Changepoint describes a point in time that will change the ongoing trend. This will
// include a bias and optionally a growth feature.
type Changepoint struct {
	T    time.Time `json:"time"`
	Name string    `json:"name"`
}

func NewChangepoint(name string, t time.Time) Changepoint {
	return Changepoint{t, name}
}

// ChangepointOptions lists the known changepoints of the training window
type ChangepointOptions struct {
	Changepoints []Changepoint `json:"changepoints"`
	EnableGrowth bool          `json:"enable_growth"`
}

// NewDefaultChangepointOptions generates a set of default changepoint options
func NewDefaultChangepointOptions() ChangepointOptions {
	return ChangepointOptions{}
}

func (c ChangepointOptions) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	noCfg := " None"
	if len(c.Changepoints) > 0 {
		noCfg = ""
	}
	if _, err := fmt.Fprintf(w, "%s%sChangepoints:%s\n", prefix, util.IndentExpand(indent, indentGrowth), noCfg); err != nil {
		return err
	}
	if len(c.Changepoints) == 0 {
		return nil
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tbl, "%s%sName\tDatetime\t\n", prefix, util.IndentExpand(indent, indentGrowth+1))
	for _, chpt := range c.Changepoints {
		fmt.Fprintf(tbl, "%s%s%s\t%s\t\n",
			prefix, util.IndentExpand(indent, indentGrowth+1),
			chpt.Name, chpt.T.Format(time.DateOnly))
	}
	return tbl.Flush()
}

// GenerateFeatures creates a bias and, when growth is enabled, a slope column per changepoint.
// The slope is scaled so it is 1 at the training end time.
func (c ChangepointOptions) GenerateFeatures(t []time.Time, trainingEndTime time.Time) *feature.Set {
	feat := feature.NewSet()

	var idx int
	for _, chpt := range c.Changepoints {
		// changepoints after the training end were never modeled
		if chpt.T.After(trainingEndTime) {
			continue
		}
		chpntName := strconv.Itoa(idx)
		if chpt.Name != "" {
			chpntName = chpt.Name
		}
		idx++

		bias := make([]float64, len(t))
		var growth []float64
		if c.EnableGrowth {
			growth = make([]float64, len(t))
		}

		delta := trainingEndTime.Sub(chpt.T).Seconds()
		for i := 0; i < len(t); i++ {
			if t[i].Before(chpt.T) {
				continue
			}
			bias[i] = 1.0
			if c.EnableGrowth && delta > 0 {
				growth[i] = t[i].Sub(chpt.T).Seconds() / delta
			}
		}

		feat.Set(feature.NewChangepoint(chpntName, feature.ChangepointCompBias), bias)
		if c.EnableGrowth {
			feat.Set(feature.NewChangepoint(chpntName, feature.ChangepointCompSlope), growth)
		}
	}
	return feat
}
