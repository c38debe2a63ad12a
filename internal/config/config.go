// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fgo_bot/internal/model"
)

// Banner lookup strategies. Which one applies depends on what the catalog
// source exposes, so it is fixed at startup rather than chosen per call.
const (
	LookupList   = "list"
	LookupDirect = "direct"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken string
	CatalogBaseURLs  map[model.Region]string
	BannerLookup     string
	FeedURL          string
	NotifyChatID     int64
	PollInterval     time.Duration
	MetricsAddr      string
	LogLevel         string
	AllowedUsers     []int64
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	naURL := os.Getenv("NA_API_URL")
	jpURL := os.Getenv("JP_API_URL")
	if naURL == "" || jpURL == "" {
		return nil, fmt.Errorf("NA_API_URL and JP_API_URL are required")
	}

	lookup := os.Getenv("BANNER_LOOKUP")
	if lookup == "" {
		lookup = LookupList
	}
	if lookup != LookupList && lookup != LookupDirect {
		return nil, fmt.Errorf("BANNER_LOOKUP must be %q or %q, got %q", LookupList, LookupDirect, lookup)
	}

	var notifyChatID int64
	if raw := os.Getenv("NOTIFY_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFY_CHAT_ID %q: %w", raw, err)
		}
		notifyChatID = id
	}

	pollMinutes := 10
	if raw := os.Getenv("POLL_INTERVAL_MINUTES"); raw != "" {
		mins, err := strconv.Atoi(raw)
		if err != nil || mins < 1 || mins > 1440 {
			return nil, fmt.Errorf("POLL_INTERVAL_MINUTES must be between 1 and 1440, got %q", raw)
		}
		pollMinutes = mins
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	var allowedUsers []int64
	if raw := os.Getenv("ALLOWED_USERS"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			uid, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid user ID %q in ALLOWED_USERS: %w", s, err)
			}
			allowedUsers = append(allowedUsers, uid)
		}
	}

	return &Config{
		TelegramBotToken: token,
		CatalogBaseURLs: map[model.Region]string{
			model.RegionNA: strings.TrimRight(naURL, "/"),
			model.RegionJP: strings.TrimRight(jpURL, "/"),
		},
		BannerLookup: lookup,
		FeedURL:      os.Getenv("FEED_URL"),
		NotifyChatID: notifyChatID,
		PollInterval: time.Duration(pollMinutes) * time.Minute,
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
		LogLevel:     logLevel,
		AllowedUsers: allowedUsers,
	}, nil
}

// NotifierEnabled reports whether the feed poll notifier has everything it
// needs to run.
func (c *Config) NotifierEnabled() bool {
	return c.FeedURL != "" && c.NotifyChatID != 0
}

// IsUserAllowed checks whether a user ID is in the allow list.
// Returns true if the allow list is empty (all users permitted).
func (c *Config) IsUserAllowed(userID int64) bool {
	if len(c.AllowedUsers) == 0 {
		return true
	}
	for _, id := range c.AllowedUsers {
		if id == userID {
			return true
		}
	}
	return false
}
