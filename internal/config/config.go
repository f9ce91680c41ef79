// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	SourcePaths []string  `toml:"source_paths"`
	Exclude     Exclude   `toml:"exclude"`
	Signature   Signature `toml:"signature"`
	Watch       Watch     `toml:"watch"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Signature struct {
	Field            string   `toml:"field"`
	LineLength       int      `toml:"line_length"`
	WrapIndent       int      `toml:"wrap_indent"`
	ExtraTypingNames []string `toml:"extra_typing_names"`
}

type Watch struct {
	Debounce          time.Duration `toml:"debounce"`
	RebuildsPerSecond float64       `toml:"rebuilds_per_second"`
	RebuildBurst      int           `toml:"rebuild_burst"`
}

func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.SourcePaths) == 0 {
		cfg.SourcePaths = []string{"."}
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{".git", "__pycache__", ".venv", "venv"}
	}
	if cfg.Signature.Field == "" {
		cfg.Signature.Field = "sig"
	}
	if cfg.Signature.LineLength == 0 {
		cfg.Signature.LineLength = 79
	}
	if cfg.Signature.WrapIndent == 0 {
		cfg.Signature.WrapIndent = 8
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.RebuildsPerSecond == 0 {
		cfg.Watch.RebuildsPerSecond = 4
	}
	if cfg.Watch.RebuildBurst == 0 {
		cfg.Watch.RebuildBurst = 8
	}
}
