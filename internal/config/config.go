// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Defaults — single source of truth for the configuration surface
// --------------------------------------------------------------------------

const (
	// PlayerStatsTable is the default destination table for per-game stats.
	PlayerStatsTable = "player_stats"

	// DefaultSeason selects which per-game page is scraped when SOURCE_URL
	// is not set.
	DefaultSeason = 2024

	DefaultDBUser = "postgres"
	DefaultDBHost = "localhost"
	DefaultDBName = "nba_stats"
	DefaultDBPort = 5432
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Scrape source
	Season        int
	SourceURL     string // overrides the season-derived URL when set
	ScrapeTimeout time.Duration
	UserAgent     string
	StatsTable    string

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled bool
	RateLimitRPS     int
	RateLimitBurst   int

	// Cache
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
//
// Database connection: DB_USER (postgres), DB_PASSWORD (empty), DB_HOST
// (localhost), DB_NAME (nba_stats), DB_PORT (5432), DB_SSLMODE (disable).
// Setting DATABASE_URL overrides all of them with a full connection string.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", "")
	if dbURL == "" {
		dbURL = buildDatabaseURL(
			envOr("DB_USER", DefaultDBUser),
			envOr("DB_PASSWORD", ""),
			envOr("DB_HOST", DefaultDBHost),
			envOr("DB_NAME", DefaultDBName),
			envInt("DB_PORT", DefaultDBPort),
			envOr("DB_SSLMODE", "disable"),
		)
	}

	table := envOr("PLAYER_STATS_TABLE", PlayerStatsTable)
	if !validIdentifier(table) {
		return nil, fmt.Errorf("PLAYER_STATS_TABLE %q is not a valid table name", table)
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		Season:        envInt("SEASON", DefaultSeason),
		SourceURL:     envOr("SOURCE_URL", ""),
		ScrapeTimeout: time.Duration(envInt("SCRAPE_TIMEOUT_SECONDS", 30)) * time.Second,
		UserAgent:     envOr("SCRAPE_USER_AGENT", "courtside-data/1.0 (+https://github.com/courtside/courtside-data)"),
		StatsTable:    table,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8080)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		RateLimitEnabled: envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRPS:     envInt("RATE_LIMIT_RPS", 10),
		RateLimitBurst:   envInt("RATE_LIMIT_BURST", 20),

		CacheEnabled: envBool("CACHE_ENABLED", true),
		CacheTTL:     time.Duration(envInt("CACHE_TTL_SECONDS", 60)) * time.Second,
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// buildDatabaseURL assembles a postgres:// connection string from parts,
// URL-escaping the credentials.
func buildDatabaseURL(user, password, host, name string, port int, sslmode string) string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     fmt.Sprintf("%s:%d", host, port),
		Path:     "/" + name,
		RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
	}
	if password != "" {
		u.User = url.UserPassword(user, password)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}

// validIdentifier reports whether s is safe to use as an unquoted SQL
// identifier: letters, digits and underscores, not starting with a digit.
func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
