package feature

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	GrowthIntercept = "intercept"
	GrowthLinear    = "linear"
	GrowthQuadratic = "quadratic"
)

// Growth represents the trend terms of a model. The intercept is a constant column while
// linear and quadratic growth are scaled so the training window spans [0, 1].
type Growth struct {
	Name string `json:"name"`
}

func NewGrowth(name string) *Growth {
	return &Growth{name}
}

func Intercept() *Growth {
	return NewGrowth(GrowthIntercept)
}

func Linear() *Growth {
	return NewGrowth(GrowthLinear)
}

func Quadratic() *Growth {
	return NewGrowth(GrowthQuadratic)
}

// String returns the string representation of the growth feature
func (g Growth) String() string {
	return fmt.Sprintf("growth_%s", g.Name)
}

// Get returns the value of an arbitrary label and returns the value along with whether
// the label exists
func (g Growth) Get(label string) (string, bool) {
	switch strings.ToLower(label) {
	case "name":
		return g.Name, true
	}
	return "", false
}

// Type returns the type of this feature
func (g Growth) Type() FeatureType {
	return FeatureTypeGrowth
}

// Decode converts the feature into a map of label values
func (g Growth) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = g.Name
	return res
}

// UnmarshalJSON converts a map of label values into a growth feature
func (g *Growth) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &labelStr); err != nil {
		return err
	}
	g.Name = labelStr.Name
	return nil
}

// Generate produces the growth column for the epoch seconds relative to the training window.
// Unknown growth names and an empty training window produce nil.
func (g Growth) Generate(epoch []float64, trainStartTime, trainEndTime time.Time) []float64 {
	window := trainEndTime.Sub(trainStartTime).Seconds()
	if window <= 0 {
		return nil
	}
	start := float64(trainStartTime.UnixNano()) / 1e9

	res := make([]float64, len(epoch))
	switch g.Name {
	case GrowthIntercept:
		for i := range res {
			res[i] = 1.0
		}
	case GrowthLinear:
		for i, e := range epoch {
			res[i] = (e - start) / window
		}
	case GrowthQuadratic:
		for i, e := range epoch {
			x := (e - start) / window
			res[i] = x * x
		}
	default:
		return nil
	}
	return res
}
