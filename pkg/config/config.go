/*
Package config manages TOML config for spellserve services.
*/
package config

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/searchkit/spellserve/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Spell  SpellConfig  `toml:"spell"`
	Index  IndexConfig  `toml:"index"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxTerms   int `toml:"max_terms"`
	MaxTermLen int `toml:"max_term_len"`
}

// SpellConfig holds spell-check defaults applied when a request leaves them
// unset.
type SpellConfig struct {
	MaxDistance   int    `toml:"max_distance"`
	FullScoreInfo bool   `toml:"full_score_info"`
	DictDir       string `toml:"dict_dir"`
}

// IndexConfig describes the indexed document schema.
type IndexConfig struct {
	Fields []string `toml:"fields"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxTerms:   64,
			MaxTermLen: 128,
		},
		Spell: SpellConfig{
			MaxDistance:   1,
			FullScoreInfo: false,
			DictDir:       "dicts/",
		},
		Index: IndexConfig{
			Fields: []string{"title", "body"},
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return cfg, nil
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadConfig loads from a TOML file. Unset keys keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}

func (c *Config) validate() error {
	if c.Server.MaxTerms < 1 {
		return fmt.Errorf("server.max_terms must be positive, got %d", c.Server.MaxTerms)
	}
	if c.Spell.MaxDistance < 1 || c.Spell.MaxDistance > 4 {
		return fmt.Errorf("spell.max_distance must be in [1,4], got %d", c.Spell.MaxDistance)
	}
	if len(c.Index.Fields) == 0 {
		return fmt.Errorf("index.fields must name at least one field")
	}
	return nil
}
