package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	OpenAI struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`
	Quotes struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"quotes"`
	News struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"news"`
	Watchlist struct {
		File string `yaml:"file"`
	} `yaml:"watchlist"`
	Schedule struct {
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. Secrets normally arrive via the environment.
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

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("WATCHLIST_PATH"); v != "" {
		cfg.Watchlist.File = v
	}
	if v := os.Getenv("CRON_WEEKLY"); v != "" {
		cfg.Schedule.WeeklyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Watchlist.File == "" {
		cfg.Watchlist.File = "data/holdings.json"
	}
	if cfg.Schedule.WeeklyCron == "" {
		// Monday 08:00
		cfg.Schedule.WeeklyCron = "0 0 8 * * 1"
	}

	return cfg, nil
}

// Validate checks the delivery credentials, the one configuration the
// pipeline cannot degrade around.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
