package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"micromachine.dev/dynamic-vendor/lib/vendor"
)

type PackageJSON struct {
	Name                 string            `json:"name,omitempty"`
	Version              string            `json:"version,omitempty"`
	Private              bool              `json:"private,omitempty"`
	Type                 string            `json:"type,omitempty"` // "module" or "commonjs"
	Dependencies         map[string]string `json:"dependencies,omitempty"`
	DevDependencies      map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies     map[string]string `json:"peerDependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
}

// RuntimeDependencies lists dependencies that can be loaded at runtime,
// sorted by name. Type-only packages are skipped.
func (p *PackageJSON) RuntimeDependencies() []string {
	names := make([]string, 0, len(p.Dependencies))
	for name := range p.Dependencies {
		if strings.HasPrefix(name, "@types/") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ReadPackageJSON(rootDir string) (*PackageJSON, error) {
	data, err := os.ReadFile(filepath.Join(rootDir, "package.json"))
	if err != nil {
		return nil, err
	}

	var packageJSON PackageJSON
	if err := json.Unmarshal(data, &packageJSON); err != nil {
		return nil, fmt.Errorf("invalid package.json: %w", err)
	}
	return &packageJSON, nil
}

var ErrVendorFileExists = errors.New("dynamic-vendor configuration file already exists")

// SeedVendorFile writes dynamic-vendor.json listing the runtime dependencies
// of package.json. An existing config is only replaced with force.
func SeedVendorFile(rootDir string, chunkName string, force bool) (string, []string, error) {
	if !force {
		for _, name := range VendorFileNames {
			if _, err := os.Stat(filepath.Join(rootDir, name)); err == nil {
				return "", nil, fmt.Errorf("%w: %s", ErrVendorFileExists, name)
			}
		}
	}

	packageJSON, err := ReadPackageJSON(rootDir)
	if err != nil {
		return "", nil, err
	}

	if chunkName == "" {
		chunkName = vendor.DefaultChunkName
	}

	vendors := packageJSON.RuntimeDependencies()
	data, err := json.MarshalIndent(struct {
		DefaultChunkName string   `json:"defaultChunkName"`
		Vendors          []string `json:"vendors"`
	}{chunkName, vendors}, "", "  ")
	if err != nil {
		return "", nil, err
	}

	path := filepath.Join(rootDir, "dynamic-vendor.json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", nil, fmt.Errorf("could not write %s: %w", path, err)
	}
	return path, vendors, nil
}
