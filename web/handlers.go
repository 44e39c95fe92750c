package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	forecaster "github.com/aouyang1/ozone-forecaster"
	"github.com/aouyang1/ozone-forecaster/i18n"
	"github.com/aouyang1/ozone-forecaster/logging"
	"github.com/aouyang1/ozone-forecaster/table"
	"github.com/gofiber/fiber/v2"
)

// FieldDays is the form and query field holding the requested horizon
const FieldDays = "dias"

// page is the data rendered by the form template
type page struct {
	Lang         string
	Title        string
	Caption      string
	CaptionScore string
	DaysLabel    string
	PredictLabel string
	Prompt       string
	Days         string
	MaxDays      int
	Error        string
	Result       *result
}

type result struct {
	Header        string
	ChartURL      string
	DownloadURL   string
	DownloadLabel string
	Table         *table.Table
}

// forecastRun is the output of one predict action
type forecastRun struct {
	results *forecaster.Results
	table   *table.Table
}

func (h *Handler) localizer(c *fiber.Ctx) *i18n.Localizer {
	return h.catalog.Match(c.Get(fiber.HeaderAcceptLanguage))
}

// parseHorizon reads the requested number of days, rejecting anything that is not a whole
// number between 1 and the configured maximum
func (h *Handler) parseHorizon(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number, %w", raw, table.ErrInvalidHorizon)
	}
	if n < 1 || n > h.cfg.Forecast.MaxHorizonDays {
		return 0, fmt.Errorf("%d outside of [1, %d], %w", n, h.cfg.Forecast.MaxHorizonDays, table.ErrInvalidHorizon)
	}
	return n, nil
}

// run extends the history by n days, predicts every day and keeps the last n as the display table
func (h *Handler) run(n int, loc *i18n.Localizer) (*forecastRun, error) {
	future, err := h.forecaster.MakeFuture(n)
	if err != nil {
		return nil, fmt.Errorf("unable to extend history, %w", err)
	}
	res, err := h.forecaster.Predict(future)
	if err != nil {
		return nil, fmt.Errorf("unable to predict, %w", err)
	}
	records, err := table.NewRecords(res.T, res.Forecast, res.Lower, res.Upper)
	if err != nil {
		return nil, err
	}

	formatter := table.Formatter{
		Labels: loc.TableLabels(),
		Cutoff: h.forecaster.LastObservedTime(),
	}
	tbl, err := formatter.Format(records, n)
	if err != nil {
		return nil, err
	}
	return &forecastRun{results: res, table: tbl}, nil
}

// userError maps request errors to the inline message and status shown to the user
func (h *Handler) userError(err error, loc *i18n.Localizer) (int, string) {
	switch {
	case errors.Is(err, table.ErrInvalidHorizon):
		return fiber.StatusBadRequest, loc.T(i18n.MsgInvalidHorizon, h.cfg.Forecast.MaxHorizonDays)
	case errors.Is(err, table.ErrInsufficientData):
		return fiber.StatusBadRequest, loc.T(i18n.MsgInsufficientData)
	default:
		return fiber.StatusInternalServerError, loc.T(i18n.MsgPredictFailed)
	}
}

func (h *Handler) newPage(loc *i18n.Localizer, days string) *page {
	p := &page{
		Lang:         loc.Lang(),
		Title:        loc.T(i18n.MsgPageTitle),
		Caption:      loc.T(i18n.MsgCaption, h.forecaster.TrainEndTime().Format(table.DateLayout)),
		DaysLabel:    loc.T(i18n.MsgDaysLabel),
		PredictLabel: loc.T(i18n.MsgPredict),
		Prompt:       loc.T(i18n.MsgPrompt),
		Days:         days,
		MaxDays:      h.cfg.Forecast.MaxHorizonDays,
	}
	if rmse := h.forecaster.FitScores().RMSE; rmse > 0 {
		p.CaptionScore = loc.T(i18n.MsgCaptionScore, rmse)
	}
	return p
}

func (h *Handler) render(c *fiber.Ctx, status int, p *page) error {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "index.html", p); err != nil {
		return fmt.Errorf("unable to render page, %w", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// Index renders the empty form with the prompt
func (h *Handler) Index(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, h.newPage(h.localizer(c), "1"))
}

// Predict handles the form submission and renders the chart frame, table and download link
func (h *Handler) Predict(c *fiber.Ctx) error {
	loc := h.localizer(c)
	logger := logging.FromContext(c.UserContext())

	raw := c.FormValue(FieldDays)
	p := h.newPage(loc, raw)

	n, err := h.parseHorizon(raw)
	if err == nil {
		var run *forecastRun
		run, err = h.run(n, loc)
		if err == nil {
			query := url.Values{FieldDays: []string{strconv.Itoa(n)}}.Encode()
			p.Result = &result{
				Header:        loc.T(i18n.MsgResultHeader, n),
				ChartURL:      "/chart?" + query,
				DownloadURL:   "/download?" + query,
				DownloadLabel: loc.T(i18n.MsgDownload),
				Table:         run.table,
			}
			logger.Info("Forecast generated", "days", n)
			return h.render(c, fiber.StatusOK, p)
		}
	}

	status, msg := h.userError(err, loc)
	if status >= fiber.StatusInternalServerError {
		logger.Error("Forecast failed", "days", raw, "error", err)
	} else {
		logger.Warn("Forecast rejected", "days", raw, "error", err)
	}
	p.Error = msg
	return h.render(c, status, p)
}

// Chart renders the interactive history and forecast chart shown in the result frame
func (h *Handler) Chart(c *fiber.Ctx) error {
	loc := h.localizer(c)
	n, err := h.parseHorizon(c.Query(FieldDays))
	if err != nil {
		status, msg := h.userError(err, loc)
		return c.Status(status).SendString(msg)
	}
	run, err := h.run(n, loc)
	if err != nil {
		status, msg := h.userError(err, loc)
		return c.Status(status).SendString(msg)
	}

	labels := loc.PlotLabels()
	labels.Subtitle = loc.T(i18n.MsgResultHeader, n)

	var buf bytes.Buffer
	if err := forecaster.PlotForecast(&buf, h.forecaster.History(), run.results, labels, h.cfg.UI.ChartAssetsHost); err != nil {
		return fmt.Errorf("unable to plot forecast, %w", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// Download sends the display table as a csv attachment
func (h *Handler) Download(c *fiber.Ctx) error {
	loc := h.localizer(c)
	n, err := h.parseHorizon(c.Query(FieldDays))
	if err != nil {
		status, msg := h.userError(err, loc)
		return c.Status(status).SendString(msg)
	}
	run, err := h.run(n, loc)
	if err != nil {
		status, msg := h.userError(err, loc)
		return c.Status(status).SendString(msg)
	}

	out, err := run.table.CSV()
	if err != nil {
		return fmt.Errorf("unable to serialize table, %w", err)
	}
	c.Attachment(DownloadFilename)
	c.Set(fiber.HeaderContentType, "text/csv")
	return c.Send(out)
}

// Health reports the process is serving
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}
