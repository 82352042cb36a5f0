package config

import (
	"errors"
	"io/fs"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Engine is the engine-level configuration, merged from YAML and env.
type Engine struct {
	// WorkspaceRoot is where per-invocation output directories are
	// provisioned, keyed by cache key.
	WorkspaceRoot string `koanf:"workspace_root"`

	Registry    string `koanf:"registry"`
	MetricsPort int    `koanf:"metrics_port"`

	// Workers bounds concurrent transform invocations.
	Workers int `koanf:"workers"`

	Log struct {
		Level string `koanf:"level"`
		JSON  bool   `koanf:"json"`
	} `koanf:"log"`
}

// LoadEngineConfig merges YAML (if present) with env-vars
// (prefix `MORPH__`, delimiter `__`).
func LoadEngineConfig(path string) (Engine, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Engine{}, err
		}
	}
	_ = k.Load(env.Provider("MORPH__", "__", nil), nil)

	var cfg Engine
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(c *Engine) {
	if c.WorkspaceRoot == "" {
		c.WorkspaceRoot = ".morph"
	}
	if c.Registry == "" {
		c.Registry = "transforms.yml"
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 9100
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
}
