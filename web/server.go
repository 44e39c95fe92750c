// Package web serves the forecast form, its chart frame and the CSV download.
package web

import (
	"embed"
	"errors"
	"html/template"

	forecaster "github.com/aouyang1/ozone-forecaster"
	"github.com/aouyang1/ozone-forecaster/config"
	"github.com/aouyang1/ozone-forecaster/i18n"
	"github.com/aouyang1/ozone-forecaster/logging"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// DownloadFilename is the name of the csv attachment
const DownloadFilename = "previsao_ozonio.csv"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Handler holds the shared read only state of every request
type Handler struct {
	cfg        config.Config
	logger     *logging.Logger
	forecaster *forecaster.Forecaster
	catalog    *i18n.Catalog
}

// NewHandler creates the request handlers around an already loaded forecaster
func NewHandler(cfg config.Config, logger *logging.Logger, fc *forecaster.Forecaster, catalog *i18n.Catalog) *Handler {
	return &Handler{
		cfg:        cfg,
		logger:     logger,
		forecaster: fc,
		catalog:    catalog,
	}
}

// Setup configures all routes and middlewares
func Setup(app *fiber.App, h *Handler) {
	app.Use(recover.New())
	app.Use(logging.FiberMiddleware(h.logger, logging.DefaultMiddlewareConfig()))

	app.Get("/health", h.Health)
	app.Get("/", h.Index)
	app.Post("/predict", h.Predict)
	app.Get("/chart", h.Chart)
	app.Get("/download", h.Download)
}

// New creates a new Fiber app serving the forecast form
func New(cfg config.Config, logger *logging.Logger, fc *forecaster.Forecaster, catalog *i18n.Catalog) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Ozone Forecaster",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		ErrorHandler:          errorHandler(logger),
	})
	Setup(app, NewHandler(cfg, logger, fc, catalog))
	return app
}

// errorHandler logs unexpected errors and answers with a plain status text
func errorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := fiber.ErrInternalServerError.Message
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code, msg = fe.Code, fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error("Unhandled error", "path", c.Path(), "error", err)
		}
		return c.Status(code).SendString(msg)
	}
}
