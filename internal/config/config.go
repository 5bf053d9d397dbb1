package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Data struct {
		KnowledgeBase string `yaml:"knowledge_base"`
	} `yaml:"data"`
	Auth struct {
		JWTSecret     string `yaml:"jwt_secret"`
		TokenTTLHours int64  `yaml:"token_ttl_hours"`
	} `yaml:"auth"`
	Moderation struct {
		ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	} `yaml:"moderation"`
	Romantic struct {
		MatchThreshold float64 `yaml:"match_threshold"`
	} `yaml:"romantic"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	applyDefaults(config)
	return config, nil
}

func applyDefaults(c *Config) {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/moderation.db"
	}
	if c.Data.KnowledgeBase == "" {
		c.Data.KnowledgeBase = "./data/knowledge-base.json"
	}
	if c.Auth.TokenTTLHours == 0 {
		c.Auth.TokenTTLHours = 24
	}
	if c.Moderation.ConfidenceThreshold == 0 {
		c.Moderation.ConfidenceThreshold = 0.7
	}
	if c.Romantic.MatchThreshold == 0 {
		c.Romantic.MatchThreshold = 0.6
	}
}
