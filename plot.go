package forecaster

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/aouyang1/ozone-forecaster/timedataset"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var (
	ErrPlotLenMismatch = errors.New("series length does not match time length")
	ErrNoResults       = errors.New("no results to plot")
)

// PlotDateLayout is the day first layout of the chart x axis
const PlotDateLayout = "02-01-2006"

// PlotLabels holds the display text of a forecast chart so it can be localized
type PlotLabels struct {
	PageTitle      string
	Title          string
	Subtitle       string
	ValueAxis      string
	Actual         string
	Forecast       string
	Upper          string
	Lower          string
	ComponentTitle string
	Trend          string
	Seasonality    string
	Event          string
}

// NewDefaultPlotLabels returns the Portuguese chart labels
func NewDefaultPlotLabels() PlotLabels {
	return PlotLabels{
		PageTitle:      "Previsão de Níveis de Ozônio (O3)",
		Title:          "Previsão de O3",
		ValueAxis:      "O3 (ug/m3)",
		Actual:         "Observado",
		Forecast:       "Previsão",
		Upper:          "Limite superior",
		Lower:          "Limite inferior",
		ComponentTitle: "Componentes da previsão",
		Trend:          "Tendência",
		Seasonality:    "Sazonalidade",
		Event:          "Feriados",
	}
}

// lineValue maps missing values to the echarts gap marker
func lineValue(v float64) opts.LineData {
	if math.IsNaN(v) {
		return opts.LineData{Value: "-"}
	}
	return opts.LineData{Value: v}
}

func plotDates(t []time.Time) []string {
	dates := make([]string, 0, len(t))
	for _, tPnt := range t {
		dates = append(dates, tPnt.Format(PlotDateLayout))
	}
	return dates
}

func newLine(title, subtitle, valueAxis string, assetsHost string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(
			opts.Initialization{
				Width:      "100%",
				Height:     "420px",
				AssetsHost: assetsHost,
			},
		),
		charts.WithTitleOpts(
			opts.Title{
				Title:    title,
				Subtitle: subtitle,
			},
		),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Name: valueAxis, Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	return line
}

// LineTSeries generates an echart multi-line chart for some arbitrary time/value combination. The input
// y is a slice of series that must have the same length as the input time slice.
func LineTSeries(title, valueAxis, assetsHost string, seriesName []string, t []time.Time, y [][]float64) (*charts.Line, error) {
	if len(seriesName) != len(y) {
		return nil, fmt.Errorf("%d series names for %d series, %w", len(seriesName), len(y), ErrPlotLenMismatch)
	}
	line := newLine(title, "", valueAxis, assetsHost)
	line.SetXAxis(plotDates(t))
	for i, series := range seriesName {
		if len(y[i]) != len(t) {
			return nil, fmt.Errorf("series %q has %d points for %d times, %w", series, len(y[i]), len(t), ErrPlotLenMismatch)
		}
		lineData := make([]opts.LineData, 0, len(y[i]))
		for _, v := range y[i] {
			lineData = append(lineData, lineValue(v))
		}
		line.AddSeries(series, lineData)
	}
	return line, nil
}

// LineForecast generates an echart line chart of the observed history along with the forecast and
// its upper and lower bounds. Results are expected to start with the history time points as
// produced by MakeFuture.
func LineForecast(history *timedataset.TimeDataset, res *Results, labels PlotLabels, assetsHost string) *charts.Line {
	line := newLine(labels.Title, labels.Subtitle, labels.ValueAxis, assetsHost)

	observed := make(map[int64]float64)
	if history != nil {
		for i, tPnt := range history.T {
			observed[tPnt.Unix()] = history.Y[i]
		}
	}

	lineDataActual := make([]opts.LineData, 0, len(res.T))
	lineDataForecast := make([]opts.LineData, 0, len(res.T))
	lineDataUpper := make([]opts.LineData, 0, len(res.T))
	lineDataLower := make([]opts.LineData, 0, len(res.T))

	for i := 0; i < len(res.T); i++ {
		actual, exists := observed[res.T[i].Unix()]
		if !exists {
			actual = math.NaN()
		}
		lineDataActual = append(lineDataActual, lineValue(actual))
		lineDataForecast = append(lineDataForecast, lineValue(res.Forecast[i]))
		lineDataUpper = append(lineDataUpper, lineValue(res.Upper[i]))
		lineDataLower = append(lineDataLower, lineValue(res.Lower[i]))
	}

	boundStyle := charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Width: 1})
	line.SetXAxis(plotDates(res.T)).
		AddSeries(labels.Actual, lineDataActual,
			charts.WithLineChartOpts(opts.LineChart{Symbol: "circle", SymbolSize: 3}),
			charts.WithLineStyleOpts(opts.LineStyle{Width: 0}),
		).
		AddSeries(labels.Forecast, lineDataForecast).
		AddSeries(labels.Upper, lineDataUpper, boundStyle).
		AddSeries(labels.Lower, lineDataLower, boundStyle)
	return line
}

// LineComponents plots the trend, seasonality and holiday components of the series forecast
func LineComponents(res *Results, labels PlotLabels, assetsHost string) (*charts.Line, error) {
	comp := res.SeriesComponents
	return LineTSeries(
		labels.ComponentTitle, labels.ValueAxis, assetsHost,
		[]string{labels.Trend, labels.Seasonality, labels.Event},
		res.T,
		[][]float64{comp.Trend, comp.Seasonality, comp.Event},
	)
}

// PlotForecast uses the Apache Echarts library to render an html page with the forecast and
// its components
func PlotForecast(w io.Writer, history *timedataset.TimeDataset, res *Results, labels PlotLabels, assetsHost string) error {
	if res.Len() == 0 {
		return ErrNoResults
	}

	page := components.NewPage()
	page.SetPageTitle(labels.PageTitle)
	if assetsHost != "" {
		page.SetAssetsHost(assetsHost)
	}
	compLine, err := LineComponents(res, labels, assetsHost)
	if err != nil {
		return fmt.Errorf("unable to plot components, %w", err)
	}
	page.AddCharts(
		LineForecast(history, res, labels, assetsHost),
		compLine,
	)
	return page.Render(w)
}
