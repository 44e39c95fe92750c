// Package i18n negotiates the page language and holds the translated interface strings.
package i18n

import (
	"fmt"

	forecaster "github.com/aouyang1/ozone-forecaster"
	"github.com/aouyang1/ozone-forecaster/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys
const (
	MsgPageTitle        = "page.title"
	MsgCaption          = "page.caption"
	MsgCaptionScore     = "page.caption_score"
	MsgDaysLabel        = "form.days"
	MsgPredict          = "form.predict"
	MsgPrompt           = "form.prompt"
	MsgResultHeader     = "result.header"
	MsgDownload         = "result.download"
	MsgInvalidHorizon   = "error.invalid_horizon"
	MsgInsufficientData = "error.insufficient_data"
	MsgPredictFailed    = "error.predict_failed"

	MsgChartTitle      = "chart.title"
	MsgChartActual     = "chart.actual"
	MsgChartForecast   = "chart.forecast"
	MsgChartUpper      = "chart.upper"
	MsgChartLower      = "chart.lower"
	MsgChartComponents = "chart.components"
	MsgChartTrend      = "chart.trend"
	MsgChartSeasonal   = "chart.seasonality"
	MsgChartEvent      = "chart.event"
)

var messages = map[language.Tag]map[string]string{
	language.BrazilianPortuguese: {
		MsgPageTitle:        "Previsão de Níveis de Ozônio (O3)",
		MsgCaption:          "Este aplicativo usa um modelo de séries temporais treinado com dados diários de O3 até %s para prever as concentrações dos próximos dias.",
		MsgCaptionScore:     "Erro quadrático médio (RMSE) do modelo no treino: %.2f ug/m3.",
		MsgDaysLabel:        "Dias de previsão",
		MsgPredict:          "Prever",
		MsgPrompt:           "Escolha o número de dias e clique em Prever.",
		MsgResultHeader:     "Previsões para os próximos %d dia(s):",
		MsgDownload:         "Baixar CSV",
		MsgInvalidHorizon:   "O número de dias deve ser um inteiro entre 1 e %d.",
		MsgInsufficientData: "A previsão não tem dias suficientes para o horizonte solicitado.",
		MsgPredictFailed:    "Não foi possível gerar a previsão.",
		MsgChartTitle:       "Previsão de O3",
		MsgChartActual:      "Observado",
		MsgChartForecast:    "Previsão",
		MsgChartUpper:       "Limite superior",
		MsgChartLower:       "Limite inferior",
		MsgChartComponents:  "Componentes da previsão",
		MsgChartTrend:       "Tendência",
		MsgChartSeasonal:    "Sazonalidade",
		MsgChartEvent:       "Feriados",
	},
	language.English: {
		MsgPageTitle:        "Ozone (O3) Level Forecast",
		MsgCaption:          "This application uses a time series model trained on daily O3 data up to %s to forecast the concentration of the coming days.",
		MsgCaptionScore:     "Model root mean squared error (RMSE) on training: %.2f µg/m³.",
		MsgDaysLabel:        "Days of forecast",
		MsgPredict:          "Predict",
		MsgPrompt:           "Choose the number of days and click Predict.",
		MsgResultHeader:     "Forecast for the next %d day(s):",
		MsgDownload:         "Download CSV",
		MsgInvalidHorizon:   "The number of days must be a whole number between 1 and %d.",
		MsgInsufficientData: "The forecast does not have enough days for the requested horizon.",
		MsgPredictFailed:    "Unable to generate the forecast.",
		MsgChartTitle:       "O3 Forecast",
		MsgChartActual:      "Observed",
		MsgChartForecast:    "Forecast",
		MsgChartUpper:       "Upper bound",
		MsgChartLower:       "Lower bound",
		MsgChartComponents:  "Forecast components",
		MsgChartTrend:       "Trend",
		MsgChartSeasonal:    "Seasonality",
		MsgChartEvent:       "Holidays",
	},
}

var tableLabels = map[language.Tag]table.Labels{
	language.BrazilianPortuguese: table.DefaultLabels,
	language.English:             table.EnglishLabels,
}

// Catalog matches requested languages against the supported translations
type Catalog struct {
	cat       *catalog.Builder
	matcher   language.Matcher
	supported []language.Tag
}

// New builds the catalog. The default language is used whenever a request matches nothing.
func New(defaultLang string) (*Catalog, error) {
	def, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("unable to parse default language %q, %w", defaultLang, err)
	}

	supported := []language.Tag{language.BrazilianPortuguese, language.English}
	_, idx, conf := language.NewMatcher(supported).Match(def)
	if conf == language.No {
		return nil, fmt.Errorf("default language %q is not supported", defaultLang)
	}
	// the matcher falls back to the first supported tag
	supported[0], supported[idx] = supported[idx], supported[0]

	cat := catalog.NewBuilder(catalog.Fallback(supported[0]))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := cat.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("unable to set message %q for %s, %w", key, tag, err)
			}
		}
	}

	return &Catalog{
		cat:       cat,
		matcher:   language.NewMatcher(supported),
		supported: supported,
	}, nil
}

// Default returns the localizer of the default language
func (c *Catalog) Default() *Localizer {
	return c.localizer(c.supported[0])
}

// Match picks the supported language that best fits an Accept-Language header value
func (c *Catalog) Match(acceptLanguage string) *Localizer {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.Default()
	}
	_, idx, _ := c.matcher.Match(tags...)
	return c.localizer(c.supported[idx])
}

func (c *Catalog) localizer(tag language.Tag) *Localizer {
	return &Localizer{
		Tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(c.cat)),
	}
}

// Localizer renders messages in a single language
type Localizer struct {
	Tag     language.Tag
	printer *message.Printer
}

// T returns the translated message formatted with args
func (l *Localizer) T(key string, args ...interface{}) string {
	return l.printer.Sprintf(key, args...)
}

// Lang returns the BCP 47 tag used for the html lang attribute
func (l *Localizer) Lang() string {
	return l.Tag.String()
}

// TableLabels returns the column labels of the display table
func (l *Localizer) TableLabels() table.Labels {
	if labels, exists := tableLabels[l.Tag]; exists {
		return labels
	}
	return table.DefaultLabels
}

// PlotLabels returns the translated chart labels
func (l *Localizer) PlotLabels() forecaster.PlotLabels {
	return forecaster.PlotLabels{
		PageTitle:      l.T(MsgPageTitle),
		Title:          l.T(MsgChartTitle),
		ValueAxis:      l.TableLabels().Estimate,
		Actual:         l.T(MsgChartActual),
		Forecast:       l.T(MsgChartForecast),
		Upper:          l.T(MsgChartUpper),
		Lower:          l.T(MsgChartLower),
		ComponentTitle: l.T(MsgChartComponents),
		Trend:          l.T(MsgChartTrend),
		Seasonality:    l.T(MsgChartSeasonal),
		Event:          l.T(MsgChartEvent),
	}
}
