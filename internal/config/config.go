package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/workers"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	Port string

	// StorageDriver picks the backing store; DBDriver picks the database/sql
	// driver used when StorageDriver is postgres.
	StorageDriver string
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	SQLitePath    string
	AutoMigrate   bool

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	RateLimit      int
	AllowedOrigins []string
	StreakCron     string
	CatalogFile    string
}

// Load reads an optional .env file and the environment. Variables already
// set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	var errs []error

	getEnv := func(key, defaultValue string) string {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
		return defaultValue
	}
	getInt := func(key string, defaultValue int) int {
		raw := getEnv(key, "")
		if raw == "" {
			return defaultValue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not an integer", key, raw))
			return defaultValue
		}
		return n
	}
	getBool := func(key string, defaultValue bool) bool {
		raw := getEnv(key, "")
		if raw == "" {
			return defaultValue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a boolean", key, raw))
			return defaultValue
		}
		return b
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "pgx")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "kanso"),
		SQLitePath:    getEnv("SQLITE_PATH", "kanso.db"),
		AutoMigrate:   getBool("AUTO_MIGRATE", true),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "kanso-routine-engine"),

		RateLimit:   getInt("RATE_LIMIT", 100),
		StreakCron:  getEnv("STREAK_CRON", workers.DefaultStreakSchedule),
		CatalogFile: getEnv("CATALOG_FILE", ""),
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "72h"))
	if err != nil || ttl <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL: invalid duration"))
		ttl = 72 * time.Hour
	}
	cfg.JWTTTL = ttl

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	switch cfg.StorageDriver {
	case StorageMemory, StoragePostgres, StorageSQLite:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", cfg.StorageDriver))
	}
	switch cfg.DBDriver {
	case "pgx", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unknown driver %q", cfg.DBDriver))
	}
	if cfg.RateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT must not be negative"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ValidateServer checks the settings only the HTTP server needs.
func (c *Config) ValidateServer() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	return nil
}

// RedisEnabled is false when no REDIS_HOST is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// DatabaseDriver returns the database/sql driver name and DSN for the
// configured storage, or empty strings for the in-memory store.
func (c *Config) DatabaseDriver() (driver, dsn string) {
	switch c.StorageDriver {
	case StorageSQLite:
		return StorageSQLite, c.SQLitePath
	case StoragePostgres:
		return c.DBDriver, fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	}
	return "", ""
}
