package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"micromachine.dev/dynamic-vendor/lib/utils"
	"micromachine.dev/dynamic-vendor/lib/vendor"
)

// Version is set at link time by publish.
var Version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "dynamic-vendor",
	Short: "Lazy-load vendor modules through a generated dynamic importer",
	Long: `dynamic-vendor generates a virtual module, dynamic-vendor/dynamicImporter,
that exports one lazy import() per configured vendor, and serves it to esbuild
without writing it to disk.

Vendors are read from dynamic-vendor.toml, dynamic-vendor.json or
dynamic-vendor.jsonc in the project root.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			utils.Level.Set(slog.LevelDebug)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(fmt.Sprintf("✗ %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "--verbose")
}

// loadVendorConfig reads the project config and applies a chunk name
// override from the command line.
func loadVendorConfig(rootDir, chunkName string) (*vendor.Config, error) {
	config, path, err := utils.DetectVendorFile(&rootDir)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded vendor config", "path", path, "vendors", len(config.Vendors))

	if chunkName != "" {
		config.DefaultChunkName = chunkName
	}
	return config, nil
}
