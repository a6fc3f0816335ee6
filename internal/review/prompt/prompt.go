package prompt

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Config holds the review instruction set. The system prompt is a fixed
// external configuration value describing the expected JSON schema and the
// review domain; it is never derived at runtime.
type Config struct {
	SystemPrompt string `yaml:"system_prompt"`
}

// Load reads the embedded review prompt configuration.
func Load() (*Config, error) {
	data, err := configFiles.ReadFile("config/review.yaml")
	if err != nil {
		return nil, fmt.Errorf("read review prompt config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal review prompt config: %w", err)
	}

	if cfg.SystemPrompt == "" {
		return nil, fmt.Errorf("review prompt config: system_prompt is empty")
	}

	return &cfg, nil
}
