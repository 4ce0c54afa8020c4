package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	DatabaseURL     string        `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret       string        `envconfig:"JWT_SECRET" required:"true"`
	FrontendURL     string        `envconfig:"FRONTEND_URL"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	SeedCommand     string        `envconfig:"SEED_COMMAND"`
	SeedTimeout     time.Duration `envconfig:"SEED_TIMEOUT" default:"2m"`
	GuestOrderLimit int           `envconfig:"GUEST_ORDER_LIMIT" default:"10"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"false"`
}

func LoadEnv() error {
	// Try to load .env file if it exists (for local development)
	// In production, environment variables are set directly
	err := godotenv.Load()
	if err != nil {
		// .env file not found is not an error
		return nil
	}
	return nil
}

// Load reads Config from the environment. Missing required variables are
// reported together.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	return cfg, nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string

	// Critical variables - application cannot function without these
	if os.Getenv("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return errors.Errorf("critical environment variables not set: %v", missing)
	}

	// Non-critical variables - log warnings but don't fail
	if os.Getenv("FRONTEND_URL") == "" {
		log.Warn("FRONTEND_URL not set - CORS will only allow http://localhost:3000")
	}
	if os.Getenv("SEED_COMMAND") == "" {
		log.Warn("SEED_COMMAND not set - /utils/seed will run this binary's seed command")
	}

	return nil
}

// ConfigureLogger applies LOG_LEVEL and LOG_FORMAT to the standard logrus logger.
func (c Config) ConfigureLogger() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return errors.Wrap(err, "parse LOG_LEVEL")
	}
	log.SetLevel(level)

	switch strings.ToLower(c.LogFormat) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return errors.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

// CORSOrigins lists the allowed origins, falling back to the local frontend.
func (c Config) CORSOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return origins
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
