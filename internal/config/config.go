package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the service configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	CORS    CORSConfig    `yaml:"cors"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type ServerConfig struct {
	ListenAddr       string `yaml:"listen_addr"`
	ShutdownTimeout  int    `yaml:"shutdown_timeout"`   // seconds
	CompressMinBytes int    `yaml:"compress_min_bytes"` // brotli kicks in above this body size
}

type CORSConfig struct {
	// Origins allowed to call the API. "*" allows any origin.
	Origins []string `yaml:"origins"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:       ":8080",
			ShutdownTimeout:  10,
			CompressMinBytes: 1024,
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "strictenc",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
