package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSeedVendorFile(t *testing.T) {
	tests := []struct {
		name        string
		packageJSON string
		chunkName   string
		expected    []string
	}{
		{"Seed from dependencies", `{"name": "app", "dependencies": {"react": "^18", "lodash": "^4", "@types/react": "^18"}}`, "", []string{"lodash", "react"}},
		{"Seed ignores devDependencies", `{"name": "app", "dependencies": {"vue": "^3"}, "devDependencies": {"vite": "^5"}}`, "vendors", []string{"vue"}},
		{"Seed without dependencies", `{"name": "app"}`, "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(tt.packageJSON), 0644)
			if err != nil {
				t.Fatal(err)
			}

			path, vendors, err := SeedVendorFile(dir, tt.chunkName, false)
			if err != nil {
				t.Fatalf("expected seeded config, got error: %v", err)
			}

			if len(vendors) != len(tt.expected) {
				t.Fatalf("SeedVendorFile() vendors = %v, want %v", vendors, tt.expected)
			}
			for i := range vendors {
				if vendors[i] != tt.expected[i] {
					t.Errorf("SeedVendorFile() vendors = %v, want %v", vendors, tt.expected)
				}
			}

			config, got, err := DetectVendorFile(&dir)
			if err != nil {
				t.Fatalf("seeded config does not load: %v", err)
			}
			if got != path {
				t.Errorf("expected %s, got %s", path, got)
			}
			if len(config.Vendors) != len(tt.expected) {
				t.Errorf("expected %d vendors, got %d", len(tt.expected), len(config.Vendors))
			}

			want := tt.chunkName
			if want == "" {
				want = "dynamic-vendor"
			}
			if config.DefaultChunkName != want {
				t.Errorf("expected chunk name %s, got %s", want, config.DefaultChunkName)
			}
		})
	}
}

func TestSeedVendorFileKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"dependencies": {"react": "^18"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "dynamic-vendor.toml"), []byte(`vendors = []`), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := SeedVendorFile(dir, "", false)
	if !errors.Is(err, ErrVendorFileExists) {
		t.Errorf("Expected ErrVendorFileExists, got %v", err)
	}

	if _, _, err := SeedVendorFile(dir, "", true); err != nil {
		t.Errorf("Expected force to overwrite, got %v", err)
	}
}

func TestMissingPackageJSON(t *testing.T) {
	dir := t.TempDir()
	_, _, err := SeedVendorFile(dir, "", false)
	if err == nil {
		t.Error("Expected error when no package.json found")
	}
}
