package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	forecaster "github.com/aouyang1/ozone-forecaster"
	"github.com/aouyang1/ozone-forecaster/config"
	"github.com/aouyang1/ozone-forecaster/i18n"
	"github.com/aouyang1/ozone-forecaster/internal/fixture"
	"github.com/aouyang1/ozone-forecaster/logging"
	"github.com/aouyang1/ozone-forecaster/table"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxDays = 30

func newTestApp(t *testing.T) (*fiber.App, *forecaster.Forecaster) {
	t.Helper()

	fc, err := forecaster.NewFromModel(fixture.Model(120))
	require.NoError(t, err)

	catalog, err := i18n.New("pt-BR")
	require.NoError(t, err)

	cfg := *config.DefaultConfig()
	cfg.Forecast.MaxHorizonDays = testMaxDays
	return New(cfg, logging.NewNop(), fc, catalog), fc
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func predictRequest(days string, acceptLanguage string) *http.Request {
	form := url.Values{FieldDays: []string{days}}
	req := httptest.NewRequest(fiber.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	if acceptLanguage != "" {
		req.Header.Set(fiber.HeaderAcceptLanguage, acceptLanguage)
	}
	return req
}

func TestIndex(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := do(t, app, httptest.NewRequest(fiber.MethodGet, "/", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, fiber.MIMETextHTMLCharsetUTF8, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, body, `<html lang="pt-BR">`)
	assert.Contains(t, body, "Previsão de Níveis de Ozônio (O3)")
	assert.Contains(t, body, "Escolha o número de dias e clique em Prever.")
	assert.Contains(t, body, "30-04-2023")
	assert.Contains(t, body, `name="dias"`)
	assert.Contains(t, body, `value="1"`)
	assert.NotContains(t, body, "<table>")
	assert.NotContains(t, body, "/download")
}

func TestPredict(t *testing.T) {
	app, _ := newTestApp(t)

	testData := map[string]struct {
		days           string
		acceptLanguage string
		expStatus      int
		expContains    []string
		expMissing     []string
	}{
		"three days": {
			days:      "3",
			expStatus: fiber.StatusOK,
			expContains: []string{
				"Previsões para os próximos 3 dia(s):",
				"Data (Dia/Mês/Ano)",
				"O3 (ug/m3)",
				"<td>01-05-2023</td>",
				"<td>02-05-2023</td>",
				"<td>03-05-2023</td>",
				`src="/chart?dias=3"`,
				`href="/download?dias=3"`,
				"Baixar CSV",
				`value="3"`,
			},
			expMissing: []string{"30-04-2023</td>", "04-05-2023", "Escolha o número"},
		},
		"english": {
			days:           "2",
			acceptLanguage: "en-US,en;q=0.9",
			expStatus:      fiber.StatusOK,
			expContains: []string{
				`<html lang="en">`,
				"Forecast for the next 2 day(s):",
				"Date (Day/Month/Year)",
				"O3 (µg/m³)",
				"Download CSV",
			},
		},
		"zero": {
			days:        "0",
			expStatus:   fiber.StatusBadRequest,
			expContains: []string{"O número de dias deve ser um inteiro entre 1 e 30.", `value="0"`},
			expMissing:  []string{"<table>"},
		},
		"negative": {
			days:        "-3",
			expStatus:   fiber.StatusBadRequest,
			expContains: []string{"O número de dias deve ser um inteiro entre 1 e 30.", `value="-3"`},
			expMissing:  []string{"<table>"},
		},
		"not a number": {
			days:        "abc",
			expStatus:   fiber.StatusBadRequest,
			expContains: []string{"O número de dias deve ser um inteiro entre 1 e 30."},
			expMissing:  []string{"<table>"},
		},
		"above maximum": {
			days:        "31",
			expStatus:   fiber.StatusBadRequest,
			expContains: []string{"O número de dias deve ser um inteiro entre 1 e 30."},
			expMissing:  []string{"<table>"},
		},
		"english error": {
			days:           "0",
			acceptLanguage: "en",
			expStatus:      fiber.StatusBadRequest,
			expContains:    []string{"The number of days must be a whole number between 1 and 30."},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			resp, body := do(t, app, predictRequest(td.days, td.acceptLanguage))
			assert.Equal(t, td.expStatus, resp.StatusCode)
			for _, exp := range td.expContains {
				assert.Contains(t, body, exp)
			}
			for _, exp := range td.expMissing {
				assert.NotContains(t, body, exp)
			}
		})
	}
}

func TestPredictRowCount(t *testing.T) {
	app, _ := newTestApp(t)

	for _, days := range []string{"1", "7", "30"} {
		t.Run(days, func(t *testing.T) {
			resp, body := do(t, app, predictRequest(days, ""))
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			tbody := body[strings.Index(body, "<tbody>"):strings.Index(body, "</tbody>")]
			assert.Equal(t, days, strconv.Itoa(strings.Count(tbody, "<tr>")))
		})
	}
}

func TestDownload(t *testing.T) {
	app, fc := newTestApp(t)

	future, err := fc.MakeFuture(3)
	require.NoError(t, err)
	res, err := fc.Predict(future)
	require.NoError(t, err)
	est := res.Forecast[len(res.Forecast)-3:]

	exp := "Data (Dia/Mês/Ano),O3 (ug/m3)\n" +
		"01-05-2023," + table.FormatNumber(table.Round(est[0], table.EstimatePlaces)) + "\n" +
		"02-05-2023," + table.FormatNumber(table.Round(est[1], table.EstimatePlaces)) + "\n" +
		"03-05-2023," + table.FormatNumber(table.Round(est[2], table.EstimatePlaces)) + "\n"

	resp, body := do(t, app, httptest.NewRequest(fiber.MethodGet, "/download?dias=3", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename="previsao_ozonio.csv"`, resp.Header.Get(fiber.HeaderContentDisposition))
	assert.Equal(t, exp, body)

	// repeated downloads are byte identical
	_, again := do(t, app, httptest.NewRequest(fiber.MethodGet, "/download?dias=3", nil))
	assert.Equal(t, body, again)
}

func TestDownloadErrors(t *testing.T) {
	app, _ := newTestApp(t)

	testData := map[string]struct {
		query string
	}{
		"missing": {query: ""},
		"zero":    {query: "?dias=0"},
		"above":   {query: "?dias=31"},
		"text":    {query: "?dias=dez"},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			resp, body := do(t, app, httptest.NewRequest(fiber.MethodGet, "/download"+td.query, nil))
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Empty(t, resp.Header.Get(fiber.HeaderContentDisposition))
			assert.Contains(t, body, "O número de dias deve ser um inteiro entre 1 e 30.")
		})
	}
}

func TestChart(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := do(t, app, httptest.NewRequest(fiber.MethodGet, "/chart?dias=5", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, fiber.MIMETextHTMLCharsetUTF8, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, body, "echarts")
	assert.Contains(t, body, "05-05-2023")

	resp, _ = do(t, app, httptest.NewRequest(fiber.MethodGet, "/chart?dias=0", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := do(t, app, httptest.NewRequest(fiber.MethodGet, "/health", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
	assert.Empty(t, resp.Header.Get(logging.HeaderRequestID))
}

func TestRequestID(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := do(t, app, httptest.NewRequest(fiber.MethodGet, "/", nil))
	assert.NotEmpty(t, resp.Header.Get(logging.HeaderRequestID))
}
