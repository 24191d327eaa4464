package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds settings read from the environment.
type EnvConfig struct {
	ConfigPath  string `env:"PASSW0RDS_CONFIG"`
	Source      string `env:"PASSW0RDS_SOURCE"`
	WordListDir string `env:"PASSW0RDS_WORDLIST_DIR"`
	WordListURL string `env:"PASSW0RDS_WORDLIST_URL"`
	DBPath      string `env:"PASSW0RDS_DB"`
	LogLevel    string `env:"PASSW0RDS_LOG_LEVEL" envDefault:"warn"`
	LogFormat   string `env:"PASSW0RDS_LOG_FORMAT" envDefault:"text"`
}

// LoadEnv parses the process environment.
func LoadEnv() (EnvConfig, error) {
	return parseEnv(env.Options{})
}

func parseEnv(opts env.Options) (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// ResolveConfigPath returns the config file path, honoring PASSW0RDS_CONFIG.
func (e EnvConfig) ResolveConfigPath() string {
	if e.ConfigPath != "" {
		return e.ConfigPath
	}
	return DefaultConfigPath()
}

// Source kinds.
const (
	SourceEmbedded = "embedded"
	SourceDir      = "dir"
	SourceHTTP     = "http"
	SourceSQLite   = "sqlite"
)

// SourceSettings is the resolved word source selection.
type SourceSettings struct {
	Kind string
	Dir  string
	URL  string
	DB   string
}

// ResolveSource merges defaults, the config file and the environment, in
// increasing order of precedence.
func ResolveSource(file SourceConfig, e EnvConfig) SourceSettings {
	s := SourceSettings{
		Kind: SourceEmbedded,
		Dir:  DefaultWordListDir(),
		DB:   DefaultDBPath(),
	}
	overlay := func(target *string, fileValue *string, envValue string) {
		if fileValue != nil && *fileValue != "" {
			*target = *fileValue
		}
		if envValue != "" {
			*target = envValue
		}
	}
	overlay(&s.Kind, file.Kind, e.Source)
	overlay(&s.Dir, file.Dir, e.WordListDir)
	overlay(&s.URL, file.URL, e.WordListURL)
	overlay(&s.DB, file.DB, e.DBPath)
	return s
}
