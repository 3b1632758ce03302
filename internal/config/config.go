// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Store selects and locates the trip repository. It is shared by the API
// server and the tripctl CLI.
type Store struct {
	// Driver is "postgres" (default) or "mongo".
	Driver string

	// DatabaseURL is the Postgres connection string. Required for postgres.
	DatabaseURL string

	// MongoURI and MongoDatabase locate the Mongo database. MongoURI is
	// required for mongo; MongoDatabase defaults to "trip_planner".
	MongoURI      string
	MongoDatabase string
}

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	Store Store

	// SessionSecret signs session tokens. Required.
	SessionSecret string

	// SessionTTL is how long a session token stays valid. Defaults to 0:
	// tokens never expire and a session lasts until logout.
	SessionTTL time.Duration

	// Shared secrets for the three roles. Default to admin123, team2026 and
	// viewonly.
	AdminSecret       string
	ParticipantSecret string
	ViewerSecret      string

	// RedisURL enables the Redis-backed logout list. When empty, revoked
	// tokens are kept in memory and forgotten on restart.
	RedisURL string

	// UploadDir is where uploaded files are written. Defaults to "uploads".
	UploadDir string

	// PublicBaseURL is the origin used to build upload URLs.
	// Defaults to http://localhost:<Port>.
	PublicBaseURL string

	// MaxBodyBytes caps request bodies. Defaults to 10 MiB.
	MaxBodyBytes int64

	// AdviceDelay is the simulated latency of the rain-plan generator.
	AdviceDelay time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AdminSecret:       getEnv("ADMIN_SECRET", "admin123"),
		ParticipantSecret: getEnv("PARTICIPANT_SECRET", "team2026"),
		ViewerSecret:      getEnv("VIEWER_SECRET", "viewonly"),
		RedisURL:          os.Getenv("REDIS_URL"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
	}
	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:"+cfg.Port)

	var missing, invalid []string

	store, storeMissing, storeInvalid := loadStore()
	cfg.Store = store
	missing = append(missing, storeMissing...)
	invalid = append(invalid, storeInvalid...)

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 0); err != nil {
		invalid = append(invalid, err.Error())
	}
	if cfg.AdviceDelay, err = getDuration("ADVICE_DELAY", 1500*time.Millisecond); err != nil {
		invalid = append(invalid, err.Error())
	}
	if cfg.MaxBodyBytes, err = getInt64("MAX_BODY_BYTES", 10<<20); err != nil {
		invalid = append(invalid, err.Error())
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, "; "))
	}

	return cfg, nil
}

// LoadStore reads only the repository settings. tripctl uses it so the CLI
// does not need session or upload configuration.
func LoadStore() (Store, error) {
	store, missing, invalid := loadStore()
	if len(missing) > 0 {
		return Store{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Store{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, "; "))
	}
	return store, nil
}

func loadStore() (s Store, missing, invalid []string) {
	s = Store{
		Driver:        strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnv("MONGO_DATABASE", "trip_planner"),
	}
	switch s.Driver {
	case DriverPostgres:
		if s.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case DriverMongo:
		if s.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
	default:
		invalid = append(invalid, fmt.Sprintf("STORE_DRIVER=%q (want postgres or mongo)", s.Driver))
	}
	return s, missing, invalid
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s=%q is not a duration", key, v)
	}
	return d, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s=%q is not a positive integer", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
