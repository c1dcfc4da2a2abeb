package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Application configuration
	Port        string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	DBPath      string `long:"db-path" env:"DB_PATH" default:"./data/newsradar.db" description:"Path to the sqlite database file"`
	SourcesFile string `long:"sources-file" env:"SOURCES_FILE" description:"YAML file overriding the built-in feed source catalog"`
	RulesFile   string `long:"rules-file" env:"RULES_FILE" description:"YAML file overriding the built-in classification rule table"`

	// Collection pipeline configuration
	WorkerCount     int  `long:"worker-count" env:"WORKER_COUNT" default:"8" description:"Number of concurrent feed fetch workers"`
	FetchTimeout    int  `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"20" description:"Per-feed request timeout in seconds"`
	EntryLimit      int  `long:"entry-limit" env:"ENTRY_LIMIT" default:"20" description:"Maximum entries processed per feed per run"`
	RunTimeout      int  `long:"run-timeout" env:"RUN_TIMEOUT" default:"300" description:"Deadline for a full collection run in seconds"`
	KeywordLimit    int  `long:"keyword-limit" env:"KEYWORD_LIMIT" default:"15" description:"Maximum keywords stored per article"`
	CollectInterval int  `long:"collect-interval" env:"COLLECT_INTERVAL" default:"30" description:"Minutes between scheduled collection runs (0 disables)"`
	ExtractContent  bool `long:"extract-content" env:"EXTRACT_CONTENT" description:"Enable article body extraction after collection"`
	ExtractLimit    int  `long:"extract-limit" env:"EXTRACT_LIMIT" default:"25" description:"Maximum articles enriched with body text per pass"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"NewsRadar/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:            raw.Port,
		DBPath:          raw.DBPath,
		SourcesFile:     raw.SourcesFile,
		RulesFile:       raw.RulesFile,
		WorkerCount:     raw.WorkerCount,
		FetchTimeout:    raw.FetchTimeout,
		EntryLimit:      raw.EntryLimit,
		RunTimeout:      raw.RunTimeout,
		KeywordLimit:    raw.KeywordLimit,
		CollectInterval: raw.CollectInterval,
		ExtractContent:  raw.ExtractContent,
		ExtractLimit:    raw.ExtractLimit,
		UserAgent:       raw.UserAgent,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
