package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ModelSettings struct {
		Temperature float64 `yaml:"temperature"`
		TopP        float64 `yaml:"top_p"`
	} `yaml:"model_settings"`
	Classifier struct {
		Provider       string  `yaml:"provider"`
		Model          string  `yaml:"model"`
		TimeoutSeconds float64 `yaml:"timeout_seconds"`
		MinSimilarity  float64 `yaml:"min_similarity"`
		CacheSize      int     `yaml:"cache_size"`
		CacheTTLHours  float64 `yaml:"cache_ttl_hours"`
	} `yaml:"classifier"`
	Embedding struct {
		URL       string `yaml:"url"`
		CacheSize int    `yaml:"cache_size"`
	} `yaml:"embedding"`
	Catalog struct {
		Path   string `yaml:"path"`
		Source string `yaml:"source"`
	} `yaml:"catalog"`
	Games struct {
		Count int `yaml:"count"`
	} `yaml:"games"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func defaults() *Config {
	config := &Config{}
	config.ModelSettings.Temperature = 0.1
	config.ModelSettings.TopP = 1
	config.Classifier.Provider = "cerebras"
	config.Classifier.TimeoutSeconds = 8
	config.Classifier.MinSimilarity = 0.35
	config.Classifier.CacheSize = 1000
	config.Classifier.CacheTTLHours = 168
	config.Embedding.CacheSize = 500
	config.Catalog.Path = "prompts.yml"
	config.Catalog.Source = "file"
	config.Games.Count = 3
	config.Logging.Level = "info"
	return config
}

// LoadConfig reads path over the defaults. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := defaults()

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// ClassifierTimeout returns the per-call classification bound.
func (c *Config) ClassifierTimeout() time.Duration {
	return time.Duration(c.Classifier.TimeoutSeconds * float64(time.Second))
}

// CacheTTL returns how long a classification stays cached.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Classifier.CacheTTLHours * float64(time.Hour))
}
