package forecast

// Components breaks a prediction down into its additive parts. The intercept is included in
// the trend.
type Components struct {
	Trend       []float64 `json:"trend"`
	Seasonality []float64 `json:"seasonality"`
	Event       []float64 `json:"event"`
}
