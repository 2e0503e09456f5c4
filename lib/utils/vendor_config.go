package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"micromachine.dev/dynamic-vendor/lib/vendor"
)

var ErrNoVendorFile = errors.New("no dynamic-vendor configuration file found")

// VendorFileNames are looked up in order; the first one present wins.
var VendorFileNames = []string{
	"dynamic-vendor.toml",
	"dynamic-vendor.json",
	"dynamic-vendor.jsonc",
}

// DetectVendorFile finds and parses the vendor config in root. It returns the
// path it read.
func DetectVendorFile(root *string) (*vendor.Config, string, error) {
	rootDir := "."
	if root != nil && *root != "" {
		rootDir = *root
	}

	for _, name := range VendorFileNames {
		path := filepath.Join(rootDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", err
		}

		config, err := ParseVendorFile(path, data)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
		return config, path, nil
	}

	return nil, "", ErrNoVendorFile
}

// ParseVendorFile decodes data according to the extension of path.
func ParseVendorFile(path string, data []byte) (*vendor.Config, error) {
	switch filepath.Ext(path) {
	case ".json", ".jsonc":
		return vendor.ParseJSON(jsonc.ToJSON(data))
	case ".toml":
		return vendor.ParseTOML(data)
	}
	return nil, errors.New("invalid dynamic-vendor configuration file")
}
