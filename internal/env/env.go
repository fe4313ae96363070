package env

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Datenquellen für DATA_SOURCE.
const (
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Config enthält alle konfigurierbaren Werte der Anwendung, die über Umgebungsvariablen gesetzt werden können.
type Config struct {
	ServerAddr  string   `env:"SERVER_ADDR" envDefault:":8001"`
	DataSource  string   `env:"DATA_SOURCE" envDefault:"sqlite"`
	SQLiteDSN   string   `env:"SQLITE_DSN" envDefault:"overol.db"`
	PostgresDSN string   `env:"POSTGRES_DSN"`
	RateLimit   float64  `env:"RATE_LIMIT" envDefault:"100"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// Farbverwaltung: bcrypt-Hash oder Klartext, der beim Start gehasht wird.
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	AdminPassword     string        `env:"ADMIN_PASSWORD"`
	JWTSecret         string        `env:"JWT_SECRET"`
	AdminTokenTTL     time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"8h"`

	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	MaxSessions   int           `env:"MAX_SESSIONS" envDefault:"10000"`
	ColorsCSVPath string        `env:"COLORS_CSV_PATH"`
}

// Load liest die Konfiguration aus Umgebungsvariablen und prüft sie.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("konfiguration lesen: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DataSource {
	case SourceSQLite:
	case SourcePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN fehlt für DATA_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unbekannte DATA_SOURCE %q", c.DataSource)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT muss positiv sein: %v", c.RateLimit)
	}
	if c.SessionTTL <= 0 || c.AdminTokenTTL <= 0 {
		return fmt.Errorf("SESSION_TTL und ADMIN_TOKEN_TTL müssen positiv sein")
	}
	return nil
}
