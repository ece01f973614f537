package config

type ServiceConfig struct {
	Name             string `mapstructure:"name"`
	Environment      string `mapstructure:"environment"`
	Version          string `mapstructure:"version"`
	MetricsNamespace string `mapstructure:"metrics_namespace"`
}
