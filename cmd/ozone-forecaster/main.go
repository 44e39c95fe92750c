package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	forecaster "github.com/aouyang1/ozone-forecaster"
	"github.com/aouyang1/ozone-forecaster/config"
	"github.com/aouyang1/ozone-forecaster/i18n"
	"github.com/aouyang1/ozone-forecaster/internal/fixture"
	"github.com/aouyang1/ozone-forecaster/logging"
	"github.com/aouyang1/ozone-forecaster/web"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	summary := flag.Bool("summary", false, "Print the model summary and exit")
	samplePath := flag.String("write-sample", "", "Write a sample model artifact to this path and exit")
	sampleDays := flag.Int("sample-days", 3*365, "Days of simulated history in the sample model")
	flag.Parse()

	if *samplePath != "" {
		if err := writeSample(*samplePath, *sampleDays); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write sample model: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sample model written to %s\n", *samplePath)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Ozone forecaster starting...", "version", Version, "commit", GitCommit)

	model, err := forecaster.LoadModel(cfg.Model.Path)
	if err != nil {
		logger.Fatal("Failed to load forecast model", "path", cfg.Model.Path, "error", err)
	}
	model.Options.NonNegative = cfg.Forecast.NonNegative

	if *summary {
		if err := model.TablePrint(os.Stdout); err != nil {
			logger.Fatal("Failed to print model summary", "error", err)
		}
		return
	}

	fc, err := forecaster.NewFromModel(model)
	if err != nil {
		logger.Fatal("Failed to initialize forecaster", "path", cfg.Model.Path, "error", err)
	}
	logger.Info("Forecast model loaded",
		"path", cfg.Model.Path,
		"train_end", fc.TrainEndTime(),
		"rmse", fc.FitScores().RMSE,
	)

	catalog, err := i18n.New(cfg.UI.DefaultLanguage)
	if err != nil {
		logger.Fatal("Failed to build message catalog", "language", cfg.UI.DefaultLanguage, "error", err)
	}

	app := web.New(*cfg, logger, fc, catalog)

	go func() {
		addr := cfg.Server.Addr()
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}

var errInvalidSampleDays = errors.New("sample model needs at least one day of history")

// writeSample writes a fitted model over a simulated daily history so the server can run
// without a trained artifact
func writeSample(path string, days int) error {
	if days < 1 {
		return fmt.Errorf("%d days, %w", days, errInvalidSampleDays)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s, %w", path, err)
	}
	if err := forecaster.WriteModel(file, fixture.Model(days)); err != nil {
		file.Close()
		return fmt.Errorf("unable to write %s, %w", path, err)
	}
	return file.Close()
}
