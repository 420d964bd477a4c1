package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// DefaultSessionSecret is only acceptable outside release mode.
const DefaultSessionSecret = "default-secret-key-change-me"

type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret     string
	JWTExpiration time.Duration
	BcryptCost    int

	SessionSecret string
	SessionStore  string
	RedisHost     string
	RedisPort     string

	AdminUsername string
	AdminPassword string

	OpenAIAPIKey string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "todouser"),
		DBPassword:    getEnv("DB_PASSWORD", "todopassword"),
		DBName:        getEnv("DB_NAME", "todosimple"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiration: time.Duration(getEnvInt("JWT_EXPIRATION", 86400000)) * time.Millisecond,
		BcryptCost:    getEnvInt("BCRYPT_COST", 10),
		SessionSecret: getEnv("SESSION_SECRET", DefaultSessionSecret),
		SessionStore:  getEnv("SESSION_STORE", "cookie"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
	}
}

// Validate reports settings that cannot work. The signing secret itself is
// checked by the token service.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres":
	default:
		return errors.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.SessionStore {
	case "cookie", "redis":
	default:
		return errors.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}
	if c.JWTExpiration <= 0 {
		return errors.Errorf("JWT_EXPIRATION must be positive, got %s", c.JWTExpiration)
	}
	if c.IsProduction() && (c.SessionSecret == "" || c.SessionSecret == DefaultSessionSecret) {
		return errors.New("SESSION_SECRET must be set in release mode")
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.GinMode, "release")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}
