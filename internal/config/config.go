package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	pkgconfig "github.com/slobodan-ilic/ggrc-core/pkg/config"
	"github.com/slobodan-ilic/ggrc-core/pkg/logger"
	"github.com/slobodan-ilic/ggrc-core/pkg/messaging"
)

// ServiceName selects configs/{env}/ggrc.yaml and the GGRC_ env prefix
const ServiceName = "ggrc"

type Config struct {
	Service  ServiceConfig         `mapstructure:"service"`
	Database DatabaseConfig        `mapstructure:"database"`
	Server   ServerConfig          `mapstructure:"server"`
	Log      logger.Config         `mapstructure:"log"`
	Redis    messaging.RedisConfig `mapstructure:"redis"`
}

var defaults = map[string]interface{}{
	"service.name":                "ggrc",
	"service.environment":         "dev",
	"service.metrics_namespace":   "ggrc",
	"database.driver":             "postgres",
	"database.port":               5432,
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  "30m",
	"database.conn_max_idle_time": "5m",
	"database.slow_threshold":     "200ms",
	"database.auto_migrate":       false,
	"server.http.host":            "0.0.0.0",
	"server.http.port":            8080,
	"server.grpc.host":            "0.0.0.0",
	"server.grpc.port":            9090,
	"log.level":                   "info",
	"log.format":                  "json",
	"log.output":                  "stdout",
	"redis.enabled":               false,
	"redis.addr":                  "localhost:6379",
	"redis.channel":               "ggrc.custom_attribute_values",
}

// LoadConfig reads an optional .env file, then the yaml config with env overrides
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	src, err := pkgconfig.Load(ServiceName, defaults)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := src.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Log.Service = cfg.Service.Name

	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
