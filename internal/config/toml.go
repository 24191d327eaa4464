// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/passw0rds/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Generate GenerateConfig `toml:"generate"`
	Source   SourceConfig   `toml:"source"`
}

// GenerateConfig maps generation settings. Nil fields are unset.
type GenerateConfig struct {
	Count     *int    `toml:"count"`
	MinLength *int    `toml:"min-length"`
	MaxLength *int    `toml:"max-length"`
	MinLeet   *int    `toml:"min-leet"`
	MaxLeet   *int    `toml:"max-leet"`
	Pattern   *string `toml:"pattern"`
	Mode      *string `toml:"mode"`
}

// SourceConfig selects where word lists come from.
type SourceConfig struct {
	Kind *string `toml:"kind"`
	Dir  *string `toml:"dir"`
	URL  *string `toml:"url"`
	DB   *string `toml:"db"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Apply overlays the set fields of g onto cfg.
func (g GenerateConfig) Apply(cfg model.Config) (model.Config, error) {
	if g.Count != nil {
		cfg.Count = *g.Count
	}
	if g.MinLength != nil {
		cfg.MinLength = *g.MinLength
	}
	if g.MaxLength != nil {
		cfg.MaxLength = *g.MaxLength
	}
	if g.MinLeet != nil {
		cfg.MinLeet = *g.MinLeet
	}
	if g.MaxLeet != nil {
		cfg.MaxLeet = *g.MaxLeet
	}
	if g.Pattern != nil {
		cfg.Pattern = model.ParsePattern(*g.Pattern)
	}
	if g.Mode != nil {
		mode, err := model.ParseMode(*g.Mode)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	return cfg, nil
}
