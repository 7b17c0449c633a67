package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/database"
)

// TelegramConfig holds Telegram bot transport settings.
type TelegramConfig struct {
	Token    string  `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminIDs []int64 `yaml:"admin_ids" envconfig:"TELEGRAM_ADMIN_IDS"`
	RunMode  string  `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Dir     string `yaml:"dir"`
	BotFile string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// RateLimitConfig holds settings for the per-user rate limit middleware.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// MarketplaceConfig tunes listing lifecycle behaviour.
type MarketplaceConfig struct {
	// DefaultExpiryDays is used when a listing carries no explicit expiry input.
	DefaultExpiryDays int `yaml:"default_expiry_days" envconfig:"MARKET_DEFAULT_EXPIRY_DAYS"`
	// SweepIntervalHours is the pause between expiry sweeps.
	SweepIntervalHours int `yaml:"sweep_interval_hours" envconfig:"MARKET_SWEEP_INTERVAL_HOURS"`
	// SweepBackoffMinutes is the shortened pause after a failed sweep.
	SweepBackoffMinutes int `yaml:"sweep_backoff_minutes" envconfig:"MARKET_SWEEP_BACKOFF_MINUTES"`
	// ListPageSize caps how many listings of each kind /list shows.
	ListPageSize int `yaml:"list_page_size" envconfig:"MARKET_LIST_PAGE_SIZE"`
	// FallbackLang is used when the user has not chosen a language yet.
	FallbackLang string `yaml:"fallback_lang" envconfig:"MARKET_FALLBACK_LANG"`
	// SecondaryLang is the last-resort language for missing translations.
	SecondaryLang string `yaml:"secondary_lang" envconfig:"MARKET_SECONDARY_LANG"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
)

// Config aggregates every section of the bot configuration.
type Config struct {
	Telegram    TelegramConfig    `yaml:"telegram"`
	Webhook     WebhookConfig     `yaml:"webhook"`
	Logging     LoggingConfig     `yaml:"logging"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Database    database.Config   `yaml:"database"`
	Marketplace MarketplaceConfig `yaml:"marketplace"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and fills defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	allowed := map[string]struct{}{
		UpdateCallback: {},
		UpdateMessage:  {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}

	m := &cfg.Marketplace
	if m.DefaultExpiryDays <= 0 {
		m.DefaultExpiryDays = 7
	}
	if m.SweepIntervalHours <= 0 {
		m.SweepIntervalHours = 24
	}
	if m.SweepBackoffMinutes <= 0 {
		m.SweepBackoffMinutes = 60
	}
	if m.ListPageSize <= 0 {
		m.ListPageSize = 10
	}
	m.FallbackLang = strings.ToLower(strings.TrimSpace(m.FallbackLang))
	if m.FallbackLang == "" {
		m.FallbackLang = "tr"
	}
	m.SecondaryLang = strings.ToLower(strings.TrimSpace(m.SecondaryLang))
	if m.SecondaryLang == "" {
		m.SecondaryLang = "en"
	}

	return nil
}

// IsAdmin reports whether the given Telegram user is configured as an admin.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Telegram.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
