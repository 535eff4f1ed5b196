package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultCSVPath      = "rockland_incidents.csv"
	defaultJSONPath     = "incidents.json"
	defaultTimezone     = "America/New_York"
	defaultFetchTimeout = "10s"
	defaultOwnerDelay   = "1s"
	defaultPort         = "8080"
	defaultPageSize     = 25
	maxPageSize         = 500
)

// Config holds all tracker settings, populated from environment variables.
type Config struct {
	FeedURL      string
	CSVPath      string
	JSONPath     string
	Timezone     string
	Location     *time.Location
	FetchTimeout time.Duration
	Port         string
	SitePassword string // empty disables the password gate
	PageSize     int
	LogLevel     string
	LogFormat    string
	OwnerDelay   time.Duration
}

// Load reads configuration from environment variables (optionally a .env
// file), applying defaults where unset.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	feedURL := strings.TrimSpace(os.Getenv("FEED_URL"))
	if feedURL == "" {
		return nil, errors.New("FEED_URL is required")
	}

	timezone := envOrDefault("TIMEZONE", defaultTimezone)
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", timezone, err)
	}

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", defaultFetchTimeout)
	if err != nil {
		return nil, err
	}

	ownerDelay, err := parseDuration("OWNER_DELAY", defaultOwnerDelay)
	if err != nil {
		return nil, err
	}

	pageSize, err := parsePageSize()
	if err != nil {
		return nil, err
	}

	return &Config{
		FeedURL:      feedURL,
		CSVPath:      envOrDefault("CSV_PATH", defaultCSVPath),
		JSONPath:     envOrDefault("JSON_PATH", defaultJSONPath),
		Timezone:     timezone,
		Location:     location,
		FetchTimeout: fetchTimeout,
		Port:         envOrDefault("PORT", defaultPort),
		SitePassword: os.Getenv("SITE_PASSWORD"),
		PageSize:     pageSize,
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		LogFormat:    envOrDefault("LOG_FORMAT", "json"),
		OwnerDelay:   ownerDelay,
	}, nil
}

// envOrDefault returns the trimmed value of key, or fallback when unset or blank.
func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}

func parsePageSize() (int, error) {
	s := strings.TrimSpace(os.Getenv("PAGE_SIZE"))
	if s == "" {
		return defaultPageSize, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxPageSize {
		return 0, fmt.Errorf("invalid PAGE_SIZE %q: must be between 1 and %d", s, maxPageSize)
	}
	return n, nil
}
