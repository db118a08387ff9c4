package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DB        DBConfig
	Donations DonationsConfig
	Advisor   AdvisorConfig
	JWT       JWTConfig
	Server    ServerConfig
}

type DBConfig struct {
	// Driver selects the GORM backend: "postgres" or "sqlite".
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// Path is the sqlite database file, used when Driver is "sqlite".
	Path string
}

type DonationsConfig struct {
	// Backend selects the repository implementation wired at startup:
	// "local" (durable GORM store) or "remote" (upstream ledger API).
	Backend string
	// RemoteURL is the upstream CRUD API base, used when Backend is "remote".
	RemoteURL string
	// SeedDemoData inserts three demonstration records into an empty local
	// store on first use. Demo convenience only, not for production data.
	SeedDemoData bool
}

type AdvisorConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

type ServerConfig struct {
	Port        string
	FrontendURL string
}

func Load() *Config {
	return &Config{
		DB: DBConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "relieflink"),
			Password: getEnv("DB_PASSWORD", "relieflink_secret"),
			Name:     getEnv("DB_NAME", "relieflink"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "relieflink.db"),
		},
		Donations: DonationsConfig{
			Backend:      getEnv("DONATIONS_BACKEND", "local"),
			RemoteURL:    getEnv("DONATIONS_REMOTE_URL", ""),
			SeedDemoData: getEnvAsBool("DONATIONS_SEED_DEMO", true),
		},
		Advisor: AdvisorConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout: getEnvAsDuration("ADVISOR_TIMEOUT", 10*time.Second),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "change-me-in-production"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "5000"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
