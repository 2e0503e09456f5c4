package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"micromachine.dev/dynamic-vendor/lib/bundler"
	"micromachine.dev/dynamic-vendor/lib/utils"
)

var rootDir string
var entryPoints []string
var outDir string
var chunkName string
var buildEnv string
var external bool
var minify bool
var watch bool

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Bundles the entry points with the dynamic importer",
	Long: `The build command bundles your application with esbuild. It performs the
following steps:
1. Locates and parses the dynamic-vendor configuration file (toml, json, or jsonc).
2. Generates the dynamic importer for the configured vendors.
3. Serves it to esbuild as dynamic-vendor/dynamicImporter.
4. Bundles the entry points, splitting each vendor into its own chunk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadVendorConfig(rootDir, chunkName)
		if err != nil {
			return err
		}

		bundle := bundler.Bundle{
			RootDir:     rootDir,
			EntryPoints: append(entryPoints, args...),
			OutDir:      outDir,
			Environment: buildEnv,
			Config:      *config,
			External:    external,
			Minify:      minify,
		}

		if watch {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return bundle.Watch(ctx)
		}

		start := time.Now()
		utils.LogWithColor(utils.Cyan, "Running `dynamic-vendor build`...")
		if err := bundle.Pack(); err != nil {
			return err
		}

		elapsed := time.Since(start)
		utils.LogWithColor(utils.Success, fmt.Sprintf("✓ Completed `dynamic-vendor build` in %s", elapsed))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.PersistentFlags().StringVarP(&rootDir, "rootdir", "r", ".", "--rootdir ./apps/hello-world")
	buildCmd.PersistentFlags().StringArrayVarP(&entryPoints, "entry", "e", nil, "--entry src/index.js")
	buildCmd.PersistentFlags().StringVarP(&outDir, "outdir", "o", "dist", "--outdir dist")
	buildCmd.PersistentFlags().StringVarP(&chunkName, "chunk-name", "c", "", "--chunk-name vendors")
	buildCmd.PersistentFlags().StringVar(&buildEnv, "env", "production", "--env production")
	buildCmd.PersistentFlags().BoolVar(&external, "external", false, "keep vendors out of the bundle")
	buildCmd.PersistentFlags().BoolVar(&minify, "minify", false, "minify the output")
	buildCmd.PersistentFlags().BoolVarP(&watch, "watch", "w", false, "rebuild on change")
}
