package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	// Database
	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"taskcatalog"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/taskcatalog.db"`

	// JWT
	JWTSecret    string        `env:"JWT_SECRET_KEY"`
	JWTAlgorithm string        `env:"JWT_ALGORITHM" envDefault:"HS256"`
	JWTExpiry    time.Duration `env:"JWT_EXPIRY" envDefault:"168h"`

	// Identity provider
	IdentityProvider string        `env:"IDENTITY_PROVIDER" envDefault:"identitytoolkit"`
	IdentityAPIKey   string        `env:"IDENTITY_API_KEY"`
	IdentityBaseURL  string        `env:"IDENTITY_BASE_URL" envDefault:"https://identitytoolkit.googleapis.com/v1"`
	IdentityTimeout  time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel     slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogRetention time.Duration `env:"LOG_RETENTION" envDefault:"720h"`

	// Error tracking
	SentryDSN string `env:"SENTRY_DSN"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`

	// Server
	Port        string `env:"PORT" envDefault:"5000"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`

	// Static frontend
	StaticDir   string `env:"STATIC_DIR" envDefault:"frontend/dist"`
	WebPort     string `env:"WEB_PORT" envDefault:"3000"`
	APIUpstream string `env:"API_UPSTREAM" envDefault:"http://localhost:5000"`
}

// Load reads an optional .env file and parses the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &cfg, nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}
