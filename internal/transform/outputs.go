package transform

import (
	"os"
	"path/filepath"
	"strings"
)

// OutputKind is the declared kind of a registered output path.
type OutputKind int

const (
	KindFile OutputKind = iota
	KindDirectory
)

func (k OutputKind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// Outputs stages the outputs one transform invocation declares. It is
// owned by a single invocation and discarded after Finalize.
//
// A registered path must resolve inside the input artifact or the output
// directory; anywhere else is rejected at registration time before any
// filesystem check. Registering the same path as both file and directory
// is accepted here and fails at Finalize.
type Outputs struct {
	primaryInput string
	outputDir    string

	primaryInputPrefix string
	outputDirPrefix    string

	registered []string
	files      map[string]struct{}
	dirs       map[string]struct{}
}

func NewOutputs(primaryInput, outputDir string) *Outputs {
	primaryInput = filepath.Clean(primaryInput)
	outputDir = filepath.Clean(outputDir)
	return &Outputs{
		primaryInput:       primaryInput,
		outputDir:          outputDir,
		primaryInputPrefix: primaryInput + string(filepath.Separator),
		outputDirPrefix:    outputDir + string(filepath.Separator),
		files:              make(map[string]struct{}),
		dirs:               make(map[string]struct{}),
	}
}

// File registers path as a file-kind output and returns its resolved
// absolute form. Relative paths resolve against the output directory.
func (o *Outputs) File(path string) (string, error) {
	resolved, err := o.resolveAndRegister(path)
	if err != nil {
		return "", err
	}
	o.files[resolved] = struct{}{}
	return resolved, nil
}

// Dir registers path as a directory-kind output.
func (o *Outputs) Dir(path string) (string, error) {
	resolved, err := o.resolveAndRegister(path)
	if err != nil {
		return "", err
	}
	o.dirs[resolved] = struct{}{}
	return resolved, nil
}

func (o *Outputs) resolveAndRegister(path string) (string, error) {
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(o.outputDir, resolved)
	}
	resolved = filepath.Clean(resolved)

	if !o.contains(resolved) {
		return "", &LocationError{Path: resolved, PrimaryInput: o.primaryInput, OutputDir: o.outputDir}
	}
	o.registered = append(o.registered, resolved)
	return resolved, nil
}

// contains reports whether p equals or sits under either allowed root.
func (o *Outputs) contains(p string) bool {
	if p == o.primaryInput || p == o.outputDir {
		return true
	}
	return strings.HasPrefix(p, o.primaryInputPrefix) || strings.HasPrefix(p, o.outputDirPrefix)
}

// Finalize verifies every registered output exists with its declared kind
// and returns them in registration order. Downstream consumers rely on
// that order for deterministic output indexing.
func (o *Outputs) Finalize() ([]string, error) {
	for _, path := range o.registered {
		info, err := os.Stat(path)
		if err != nil {
			return nil, &MissingOutputError{Path: path}
		}
		if _, ok := o.files[path]; ok && !info.Mode().IsRegular() {
			return nil, &WrongKindError{Path: path, Kind: KindFile}
		}
		if _, ok := o.dirs[path]; ok && !info.IsDir() {
			return nil, &WrongKindError{Path: path, Kind: KindDirectory}
		}
	}
	out := make([]string, len(o.registered))
	copy(out, o.registered)
	return out, nil
}
