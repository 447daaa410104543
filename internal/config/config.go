package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"CrossSentinel/internal/model"
)

const DateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken  string `yaml:"bot_token"`
		ChatID    string `yaml:"chat_id"`
		ParseMode string `yaml:"parse_mode"`
	} `yaml:"telegram"`
	Notify struct {
		Greeting    string        `yaml:"greeting"`
		Link        string        `yaml:"link"`
		MaxAttempts int           `yaml:"max_attempts"`
		Backoff     time.Duration `yaml:"backoff"`
	} `yaml:"notify"`
	Scan struct {
		StartDate    string `yaml:"start_date"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"scan"`
	DataSource struct {
		Provider  string `yaml:"provider"` // yahoo, binance, alpaca
		BaseURL   string `yaml:"base_url"`
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
	} `yaml:"data_source"`
	Schedule struct {
		Cron       string `yaml:"cron"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Cache struct {
		RedisAddr string        `yaml:"redis_addr"`
		TTL       time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Database struct {
		SQLitePath    string `yaml:"sqlite_path"`
		MongoURI      string `yaml:"mongo_uri"`
		MongoDatabase string `yaml:"mongo_database"`
		DynamoTable   string `yaml:"dynamodb_table"`
		AWSRegion     string `yaml:"aws_region"`
	} `yaml:"database"`
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Proxy   string   `yaml:"proxy"`
	Tickers []string `yaml:"tickers"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}
	setString(&c.Telegram.BotToken, "TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")
	setString(&c.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	setString(&c.DataSource.Provider, "DATA_PROVIDER")
	setString(&c.DataSource.APIKey, "ALPACA_API_KEY")
	setString(&c.DataSource.APISecret, "ALPACA_SECRET_KEY")
	setString(&c.Proxy, "HTTPS_PROXY")
	setString(&c.Schedule.Cron, "CRON_SCAN")
	setString(&c.Cache.RedisAddr, "REDIS_ADDR")
	setString(&c.Database.SQLitePath, "SQLITE_PATH")
	setString(&c.Database.MongoURI, "MONGO_URI")
	setString(&c.Database.DynamoTable, "DYNAMODB_TABLE")
	setString(&c.Database.AWSRegion, "AWS_REGION")
	setString(&c.Server.ListenAddr, "LISTEN_ADDR")

	if v := os.Getenv("RUN_ON_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Schedule.RunOnStart = b
		} else {
			log.Printf("[WARN] ignoring RUN_ON_START=%q: %v", v, err)
		}
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Scan.LookbackDays = n
		} else {
			log.Printf("[WARN] ignoring LOOKBACK_DAYS=%q: %v", v, err)
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Notify.Link == "" {
		c.Notify.Link = "https://cryptochart.streamlit.app/"
	}
	if c.Notify.Greeting == "" {
		c.Notify.Greeting = "Hi!"
	}
	if c.Notify.MaxAttempts == 0 {
		c.Notify.MaxAttempts = 3
	}
	if c.Notify.Backoff == 0 {
		c.Notify.Backoff = 5 * time.Second
	}
	if c.Scan.StartDate == "" {
		c.Scan.StartDate = "2020-01-01"
	}
	if c.Scan.LookbackDays == 0 {
		c.Scan.LookbackDays = 30
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 0 8 * * *"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 6 * time.Hour
	}
	if c.Database.MongoDatabase == "" {
		c.Database.MongoDatabase = "crosssentinel"
	}
	if len(c.Tickers) == 0 {
		c.Tickers = DefaultTickers
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return c.ValidateScan()
}

// ValidateScan checks everything a scan needs except Telegram credentials.
// Dry runs never send, so they validate with this alone.
func (c *Config) ValidateScan() error {
	if _, err := c.ScanStart(); err != nil {
		return fmt.Errorf("scan.start_date: %w", err)
	}
	if c.Scan.LookbackDays <= 0 {
		return fmt.Errorf("scan.lookback_days must be positive")
	}
	if c.Notify.MaxAttempts <= 0 {
		return fmt.Errorf("notify.max_attempts must be positive")
	}
	switch c.DataSource.Provider {
	case "yahoo", "binance":
	case "alpaca":
		if c.DataSource.APIKey == "" || c.DataSource.APISecret == "" {
			return fmt.Errorf("data_source.api_key and api_secret are required for alpaca")
		}
	default:
		return fmt.Errorf("unknown data_source.provider %q", c.DataSource.Provider)
	}
	if len(c.TickerSet()) == 0 {
		return fmt.Errorf("tickers must not be empty")
	}
	return nil
}

// ScanStart parses scan.start_date as a UTC date.
func (c *Config) ScanStart() (time.Time, error) {
	return time.ParseInLocation(DateLayout, c.Scan.StartDate, time.UTC)
}

// TickerSet returns the configured tickers deduplicated and sorted.
func (c *Config) TickerSet() model.TickerSet {
	return model.NewTickerSet(c.Tickers)
}
