package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is the parsed contents of a project.yml: an entry script plus
// extra directories to search for sibling imports.
type Manifest struct {
	Dir         string   // directory project.yml was found in
	Name        string   `yaml:"name"`
	Entry       string   `yaml:"entry"`
	ModulePaths []string `yaml:"modulePaths"`
}

// ValidationError aggregates manifest validation failures, grounded on
// the teacher's manifest validation error shape.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	msg := "manifest validation failed:"
	for _, issue := range e.Issues {
		msg += "\n- " + issue
	}
	return msg
}

// LoadManifest parses project.yml from disk.
func LoadManifest(path string) (*Manifest, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var m Manifest
	if err := decoder.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}
	m.Dir = filepath.Dir(absPath)

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Entry == "" {
		errs.Issues = append(errs.Issues, "entry must be provided")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// EntryPath returns the entry script's path, resolved relative to the
// manifest's directory.
func (m *Manifest) EntryPath() string {
	return filepath.Join(m.Dir, m.Entry)
}

// SearchPaths returns the manifest's module paths resolved to absolute
// directories, ahead of the manifest directory itself.
func (m *Manifest) SearchPaths() []string {
	paths := make([]string, 0, len(m.ModulePaths)+1)
	for _, p := range m.ModulePaths {
		paths = append(paths, filepath.Join(m.Dir, p))
	}
	paths = append(paths, m.Dir)
	return paths
}

// FindManifest walks upward from dir looking for project.yml, mirroring
// the teacher's manifest lookup behavior. It returns "", nil (not an
// error) if none is found by the time it reaches the filesystem root.
func FindManifest(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "project.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
