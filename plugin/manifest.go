package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// ManifestFileName is the well-known manifest file a plugin directory may
// carry alongside its in-process registration.
const ManifestFileName = "plugin.jsonc"

// ClassInfo is one component class's descriptive metadata, the subset of
// the plugin ABI's "kind, name, description, help text" that a manifest
// (rather than the factory itself) supplies.
type ClassInfo struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Help        string `json:"help,omitempty"`
}

// Manifest is one plugin's descriptive metadata: name, description, author,
// license, version, and an iterable set of component classes.
type Manifest struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Author      string      `json:"author,omitempty"`
	License     string      `json:"license,omitempty"`
	Version     string      `json:"version,omitempty"`
	Classes     []ClassInfo `json:"classes"`
}

// LoadManifest parses a single plugin.jsonc file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %q: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %q: %w", path, err)
	}
	if m.Name == "" {
		return Manifest{}, fmt.Errorf("manifest %q has no plugin name", path)
	}
	return m, nil
}

// LoadManifestsFromDir scans a plugin search directory for immediate
// subdirectories containing a plugin.jsonc, mirroring the layout
// BABELTRACE_PLUGIN_PATH entries use: one subdirectory per plugin. A missing
// dir is not an error; it simply contributes no manifests, since a search
// path may legitimately list directories that don't exist yet.
func LoadManifestsFromDir(dir string) ([]Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan plugin dir %q: %w", dir, err)
	}

	var manifests []Manifest
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name(), ManifestFileName)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		m, err := LoadManifest(path)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}
