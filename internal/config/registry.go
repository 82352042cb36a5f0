package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"morph/internal/spec"
)

const SupportedSchema = "v1"

// LoadRegistrySpec parses a transform registry YAML, validates
// schema_version, and resolves input paths relative to the file.
func LoadRegistrySpec(path string) (spec.File, error) {
	var cfg spec.File
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = SupportedSchema
	}
	if cfg.SchemaVersion != SupportedSchema {
		return cfg, fmt.Errorf("registry schema_version %q not supported (want %q)", cfg.SchemaVersion, SupportedSchema)
	}
	base := filepath.Dir(path)
	for i, in := range cfg.Inputs {
		if in.Path != "" && !filepath.IsAbs(in.Path) {
			cfg.Inputs[i].Path = filepath.Join(base, in.Path)
		}
	}
	return cfg, nil
}
