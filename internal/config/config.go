package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const trendingURL = "https://forums.redflagdeals.com/hot-deals-f9/trending"

// Config is the static configuration surface. Everything comes from the
// environment; a .env file is loaded by the CLI before Load runs.
type Config struct {
	DBPath          string
	LogPath         string
	TrendingURL     string
	ExcludeKeywords []string
	RatioThreshold  float64
	RetentionCap    int
	EvictBatch      int
	HTTPTimeout     time.Duration
}

func Load() (*Config, error) {
	dataDir, err := defaultDataDir()
	if err != nil {
		return nil, err
	}

	dbPath := os.Getenv("RFD_RADAR_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "deals.db")
	}

	logPath := os.Getenv("RFD_RADAR_LOG_PATH")
	if logPath == "" {
		logPath = filepath.Join(dataDir, "rfd-radar.log")
	}

	url := os.Getenv("RFD_RADAR_TRENDING_URL")
	if url == "" {
		url = trendingURL
	}

	// Recurring low-value sources that spam the trending listing.
	keywords := []string{"Dollarama", "Costco West", "PC Optimum"}
	if v := os.Getenv("RFD_RADAR_EXCLUDE_KEYWORDS"); v != "" {
		keywords = splitKeywords(v)
	}

	ratioThreshold := 2.0
	if v := os.Getenv("RFD_RADAR_RATIO_THRESHOLD"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RFD_RADAR_RATIO_THRESHOLD %q: %w", v, err)
		}
		ratioThreshold = parsed
	}

	retentionCap := 300
	if v := os.Getenv("RFD_RADAR_RETENTION_CAP"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RFD_RADAR_RETENTION_CAP %q: %w", v, err)
		}
		retentionCap = parsed
	}

	evictBatch := 50
	if v := os.Getenv("RFD_RADAR_EVICT_BATCH"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RFD_RADAR_EVICT_BATCH %q: %w", v, err)
		}
		evictBatch = parsed
	}

	httpTimeout := 30 * time.Second
	if v := os.Getenv("RFD_RADAR_HTTP_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RFD_RADAR_HTTP_TIMEOUT %q: %w", v, err)
		}
		httpTimeout = parsed
	}

	cfg := &Config{
		DBPath:          dbPath,
		LogPath:         logPath,
		TrendingURL:     url,
		ExcludeKeywords: keywords,
		RatioThreshold:  ratioThreshold,
		RetentionCap:    retentionCap,
		EvictBatch:      evictBatch,
		HTTPTimeout:     httpTimeout,
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.RatioThreshold < 0 {
		return fmt.Errorf("ratio threshold must be non-negative, got %v", c.RatioThreshold)
	}
	if c.RetentionCap <= 0 {
		return fmt.Errorf("retention cap must be positive, got %d", c.RetentionCap)
	}
	if c.EvictBatch <= 0 || c.EvictBatch > c.RetentionCap {
		return fmt.Errorf("evict batch must be in 1..%d, got %d", c.RetentionCap, c.EvictBatch)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %v", c.HTTPTimeout)
	}
	return nil
}

func splitKeywords(v string) []string {
	var keywords []string
	for _, k := range strings.Split(v, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".rfd-radar"), nil
}
