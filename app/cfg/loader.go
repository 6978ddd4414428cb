package cfg

import (
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Notification configuration
	TelegramToken  string `long:"telegram-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token"`
	TelegramChatID string `long:"telegram-chat-id" env:"TELEGRAM_CHAT_ID" description:"Telegram chat ID to notify"`

	// Scan configuration
	SourcesDir   string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing source configuration files"`
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"blogwatch/1.0" description:"User agent string for HTTP requests"`
	Cutoff       string `long:"cutoff" env:"CUTOFF" description:"Freshness cutoff date (YYYY-MM-DD, default: yesterday)"`
	LookbackDays int    `long:"lookback-days" env:"LOOKBACK_DAYS" default:"1" description:"How many days back counts as new"`
	DryRun       bool   `long:"dry-run" env:"DRY_RUN" description:"Print the notification instead of sending it"`

	// Trigger surfaces
	Serve        bool   `long:"serve" env:"SERVE" description:"Run as an HTTP service with a scan trigger endpoint"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (with --serve)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API key protecting the scan endpoint (optional)"`
	CronSpec     string `long:"cron" env:"CRON_SPEC" description:"Run scans on a cron schedule instead of once"`

	// Helper modes
	GetChatID        bool `long:"get-chat-id" description:"List chat IDs the bot can see and exit"`
	TestNotification bool `long:"test-notification" description:"Send a test notification and exit"`

	// Application metadata
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
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
		TelegramToken:    raw.TelegramToken,
		TelegramChatID:   raw.TelegramChatID,
		SourcesDir:       raw.SourcesDir,
		UserAgent:        raw.UserAgent,
		Cutoff:           raw.Cutoff,
		LookbackDays:     raw.LookbackDays,
		DryRun:           raw.DryRun,
		Serve:            raw.Serve,
		Port:             raw.Port,
		APIAccessKey:     raw.APIAccessKey,
		CronSpec:         raw.CronSpec,
		GetChatID:        raw.GetChatID,
		TestNotification: raw.TestNotification,
		Debug:            raw.Debug,
		Version:          GetVersion(),
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
