// Command export converts computed hazard and risk result bundles (JSON)
// into NRML XML documents.
//
// One-shot mode converts each bundle file named on the command line and
// exits:
//
//	export results/hazard_curves.json results/disagg.json
//
// Serve mode runs the conversion as an HTTP service (POST /export) with
// health, readiness, and Prometheus metrics endpoints:
//
//	export -serve
//
// Configuration comes from the environment: HTTP_ADDR, OUTPUT_DIR,
// LOG_LEVEL, LOG_FORMAT, SHUTDOWN_TIMEOUT.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/hazard-nrml-export/internal/adapter/http"
	"github.com/couchcryptid/hazard-nrml-export/internal/config"
	"github.com/couchcryptid/hazard-nrml-export/internal/export"
	"github.com/couchcryptid/hazard-nrml-export/internal/observability"
)

func main() {
	serve := flag.Bool("serve", false, "run as an HTTP conversion service instead of converting files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	exporter := export.New(logger, metrics, nil)

	if *serve {
		runServer(cfg, exporter, logger)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if code := runFiles(flag.Args(), cfg.OutputDir, exporter, logger); code != 0 {
		os.Exit(code)
	}
}

// runFiles converts each bundle file in turn. A failing bundle does not stop
// the remaining ones, but any failure makes the exit code non-zero.
func runFiles(paths []string, outputDir string, exporter *export.Exporter, logger *slog.Logger) int {
	code := 0
	for _, path := range paths {
		outPath, err := exporter.ExportFile(path, outputDir)
		if err != nil {
			logger.Error("bundle export failed", "bundle", path, "error", err)
			code = 1
			continue
		}
		logger.Info("document written", "bundle", path, "document", outPath)
	}
	return code
}

func runServer(cfg *config.Config, exporter *export.Exporter, logger *slog.Logger) {
	srv := httpadapter.NewServer(cfg.HTTPAddr, exporter, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}
