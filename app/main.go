package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seojin-dev/newsradar/app/api"
	"github.com/seojin-dev/newsradar/app/cfg"
	"github.com/seojin-dev/newsradar/app/classify"
	"github.com/seojin-dev/newsradar/app/collect"
	"github.com/seojin-dev/newsradar/app/database"
	"github.com/seojin-dev/newsradar/app/registry"
	"github.com/seojin-dev/newsradar/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting NewsRadar server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	sources, err := loadSources(appCfg)
	if err != nil {
		slog.Error("Failed to load feed sources", "file", appCfg.SourcesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Feed sources loaded", "count", len(sources))

	ruleset, err := loadRuleset(appCfg)
	if err != nil {
		slog.Error("Failed to load classification rules", "file", appCfg.RulesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Classification rules loaded", "rules", len(ruleset.Rules))

	classifier := classify.NewClassifier(ruleset, appCfg.KeywordLimit)

	httpClient := &http.Client{}
	fetchTimeout := time.Duration(appCfg.FetchTimeout) * time.Second
	fetcher := collect.NewFetcher(httpClient, classifier, appCfg.UserAgent, fetchTimeout, appCfg.EntryLimit)

	var extractor *collect.Extractor
	if appCfg.ExtractContent {
		extractor = collect.NewExtractor(httpClient, appCfg.UserAgent, fetchTimeout)
		slog.Info("Article body extraction enabled", "limit", appCfg.ExtractLimit)
	}

	repo := database.NewArticleRepo(db)

	orchestrator := tasks.NewOrchestrator(sources, fetcher, repo, extractor, classifier,
		appCfg.WorkerCount, time.Duration(appCfg.RunTimeout)*time.Second)

	scheduler := tasks.NewScheduler(orchestrator,
		time.Duration(appCfg.CollectInterval)*time.Minute,
		appCfg.ExtractContent, appCfg.ExtractLimit)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(repo, scheduler, appCfg.DBPath)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func loadSources(appCfg *cfg.Cfg) ([]registry.Source, error) {
	if appCfg.SourcesFile == "" {
		return registry.Default(), nil
	}
	return registry.LoadFile(appCfg.SourcesFile)
}

func loadRuleset(appCfg *cfg.Cfg) (classify.Ruleset, error) {
	if appCfg.RulesFile == "" {
		return classify.DefaultRuleset(), nil
	}

	f, err := os.Open(appCfg.RulesFile)
	if err != nil {
		return classify.Ruleset{}, err
	}
	defer f.Close()

	return classify.LoadRuleset(f)
}
