package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	sslModeDisable = "disable"
	sslModeRequire = "require"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type (
	Config struct {
		Host     string `mapstructure:"HOST"`
		Port     string `mapstructure:"PORT"`
		GRPCPort string `mapstructure:"GRPC_PORT"`

		DBDriver   string `mapstructure:"DB_DRIVER"`
		DBHost     string `mapstructure:"DB_HOST"`
		DBPort     string `mapstructure:"DB_PORT"`
		DBUser     string `mapstructure:"DB_USER"`
		DBPassword string `mapstructure:"DB_PASSWORD"`
		DBName     string `mapstructure:"DB_NAME"`
		DBSSLMode  string `mapstructure:"DB_SSL_MODE"`
		DBPath     string `mapstructure:"DB_PATH"`

		JWTSecret string        `mapstructure:"JWT_SECRET"`
		JWTIssuer string        `mapstructure:"JWT_ISSUER"`
		JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

		RedisAddr     string `mapstructure:"REDIS_ADDR"`
		RedisPassword string `mapstructure:"REDIS_PASSWORD"`
		RedisDB       int    `mapstructure:"REDIS_DB"`

		LogLevel  string `mapstructure:"LOG_LEVEL"`
		LogPretty bool   `mapstructure:"LOG_PRETTY"`
	}
)

var defaults = map[string]interface{}{
	"HOST":           "0.0.0.0",
	"PORT":           "1323",
	"GRPC_PORT":      "9000",
	"DB_DRIVER":      DriverPostgres,
	"DB_HOST":        "0.0.0.0",
	"DB_PORT":        "5432",
	"DB_USER":        "user",
	"DB_PASSWORD":    "password",
	"DB_NAME":        "db",
	"DB_SSL_MODE":    sslModeDisable,
	"DB_PATH":        "bookmarker.db",
	"JWT_SECRET":     "",
	"JWT_ISSUER":     "bookmarker",
	"JWT_TTL":        "15m",
	"REDIS_ADDR":     "",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,
	"LOG_LEVEL":      "info",
	"LOG_PRETTY":     false,
}

func NewConfig() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("BOOKMARKER")

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

func (c *Config) HTTPAddr() string {
	return c.Host + ":" + c.Port
}

func (c *Config) GRPCAddr() string {
	return c.Host + ":" + c.GRPCPort
}

func validate(cfg *Config) error {
	if err := oneOf("DB SSL mode", cfg.DBSSLMode, sslModeDisable, sslModeRequire); err != nil {
		return err
	}
	if err := oneOf("DB driver", cfg.DBDriver, DriverPostgres, DriverSQLite); err != nil {
		return err
	}
	if cfg.DBDriver == DriverSQLite && cfg.DBPath == "" {
		return errors.New("DB path is required for the sqlite driver")
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT secret is not set")
	}
	if cfg.JWTTTL <= 0 {
		return errors.Errorf("JWT TTL must be positive: %s", cfg.JWTTTL)
	}
	return nil
}

func oneOf(name, value string, valid ...string) error {
	for _, validValue := range valid {
		if value == validValue {
			return nil
		}
	}
	return errors.Errorf("%s is invalid: %s", name, value)
}

// loadDotEnv exports the file's variables without overriding ones already set.
// A missing file is the normal case outside local development.
func loadDotEnv(filename string) error {
	err := godotenv.Load(filename)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return errors.Wrapf(err, "load %s", filename)
}
