package forecaster

import (
	"time"

	"github.com/aouyang1/ozone-forecaster/forecast"
)

// Results holds the forecast of every requested time point with its uncertainty band
type Results struct {
	T        []time.Time `json:"time"`
	Forecast []float64   `json:"forecast"`
	Upper    []float64   `json:"upper"`
	Lower    []float64   `json:"lower"`

	SeriesComponents      forecast.Components `json:"series_components"`
	UncertaintyComponents forecast.Components `json:"uncertainty_components"`
}

// Len returns the number of predicted time points
func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.T)
}
