// Package spec holds the YAML schema for transform registry files.
package spec

// TransformSpec declares one registered transform: which action runs,
// its configuration parameters and the artifact attributes it consumes.
type TransformSpec struct {
	Name   string `yaml:"name"`
	Action string `yaml:"action"`

	// Parameters configure the action; every key is a declared input
	// property unless listed under optional.
	Parameters map[string]any `yaml:"parameters"`
	Optional   []string       `yaml:"optional"`

	// From selects the input artifacts this transform accepts.
	From map[string]string `yaml:"from"`

	RequiresDependencies bool `yaml:"requires_dependencies"`
}

// InputSpec names one artifact to feed through the registered transforms.
type InputSpec struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`

	// Attributes describe the artifact; a transform applies when its
	// from-attributes are a subset of these.
	Attributes map[string]string `yaml:"attributes"`

	// Dependencies lists upstream artifact files, for transforms that
	// declared requires_dependencies.
	Dependencies []string `yaml:"dependencies"`
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`

	// Unit names the ownership unit (project) the transforms belong to.
	Unit string `yaml:"unit"`

	Transforms []TransformSpec `yaml:"transforms"`
	Inputs     []InputSpec     `yaml:"inputs"`
}
