package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"

	"github.com/openclaw/ainews/internal/app"
	"github.com/openclaw/ainews/internal/config"
	"github.com/openclaw/ainews/internal/logger"
	"github.com/openclaw/ainews/internal/metrics"
	"github.com/openclaw/ainews/internal/scheduler"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "crawl and print a preview, do not publish")
	once := flag.Bool("once", false, "run a single pass instead of the daily schedule")
	flag.Parse()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	if *dryRun || *once {
		runOnce(cfg, *dryRun)
		return
	}

	sched, err := scheduler.New(cfg.ScheduleTime, func() {
		runOnce(cfg, false)
	})
	if err != nil {
		logger.Error("scheduler setup failed", "error", err)
		os.Exit(1)
	}
	logger.Info("daily schedule active", "at", cfg.ScheduleTime)
	sched.Run()
}

func runOnce(cfg *config.Config, dryRun bool) {
	result, err := app.Run(cfg, dryRun)
	if err != nil {
		metrics.Global.SetError(err.Error())
		logger.Error("run failed", "error", err)
		return
	}
	logger.Info("run finished", "status", result.Status, "articles", result.ArticleCount, "doc", result.DocURL)
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("monitoring server listening", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("monitoring server stopped", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics.Global.GetStats())
}
