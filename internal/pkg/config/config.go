package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.)
// - default: Values common across all environments (rule caps, timeouts, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	DB     DBConfig
	CORS   CORSConfig
	Log    LogConfig
	Floor  FloorConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
}

// Store driver names.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// StoreConfig selects the persistence driver. The memory driver reproduces
// the seeded demo floor and needs no database.
type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"memory"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"tablero"`
	Password string `envconfig:"DB_PASSWORD" default:""`
	DBName   string `envconfig:"DB_NAME" default:"tablero"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PATCH,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// FloorConfig carries the reservation rule knobs. Defaults match the
// reference floor: two simultaneous VIP functional units, 10 minute
// idempotency window, 90 minute availability search window.
type FloorConfig struct {
	VipUnitCap            int           `envconfig:"FLOOR_VIP_UNIT_CAP" default:"2"`
	VipPairCapacity       int           `envconfig:"FLOOR_VIP_PAIR_CAPACITY" default:"6"`
	IdempotencyTTL        time.Duration `envconfig:"FLOOR_IDEMPOTENCY_TTL" default:"10m"`
	DefaultDurationMin    int           `envconfig:"FLOOR_DEFAULT_DURATION_MIN" default:"90"`
	CanvasWidthPxDefault  int           `envconfig:"FLOOR_CANVAS_WIDTH_PX" default:"1280"`
	CanvasHeightPxDefault int           `envconfig:"FLOOR_CANVAS_HEIGHT_PX" default:"800"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{Port: "8889"},
		Store:  StoreConfig{Driver: StoreMemory},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:5173"},
			AllowMethods:  []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Idempotency-Key"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Floor: FloorConfig{
			VipUnitCap:            2,
			VipPairCapacity:       6,
			IdempotencyTTL:        10 * time.Minute,
			DefaultDurationMin:    90,
			CanvasWidthPxDefault:  1280,
			CanvasHeightPxDefault: 800,
		},
	}
}
