// Package feature describes the typed columns a forecast model is built from. Each feature
// has a stable string label used to align generated data with the coefficients stored in a
// serialized model.
package feature

// FeatureType identifies the family a feature belongs to
type FeatureType string

const (
	FeatureTypeTime        FeatureType = "time"
	FeatureTypeGrowth      FeatureType = "growth"
	FeatureTypeChangepoint FeatureType = "changepoint"
	FeatureTypeSeasonality FeatureType = "seasonality"
	FeatureTypeEvent       FeatureType = "event"
)

// Feature is a single labelled column of a forecast model
type Feature interface {
	String() string
	Get(string) (string, bool)
	Type() FeatureType
	Decode() map[string]string
	UnmarshalJSON([]byte) error
}
