package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"micromachine.dev/dynamic-vendor/lib/utils"
	"micromachine.dev/dynamic-vendor/lib/vendor"
)

var outFile string
var declaration bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Prints the generated dynamic importer",
	Long: `The generate command renders the dynamic importer module for the configured
vendors. It prints to stdout unless --out is given. With --dts the type
declaration is written next to the module.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadVendorConfig(rootDir, chunkName)
		if err != nil {
			return err
		}

		content, err := vendor.Generate(*config)
		if err != nil {
			return err
		}

		if err := vendor.Check(content, len(config.Vendors)); err != nil {
			return fmt.Errorf("generated module failed verification: %w", err)
		}

		if outFile == "" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		}

		if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
			return fmt.Errorf("could not create output directory: %w", err)
		}

		if err := os.WriteFile(outFile, []byte(content), 0644); err != nil {
			return fmt.Errorf("could not write %s: %w", outFile, err)
		}
		utils.LogWithColor(utils.Success, fmt.Sprintf("✓ Wrote %s (%d vendors)", outFile, len(config.Vendors)))

		if declaration {
			dts := strings.TrimSuffix(outFile, filepath.Ext(outFile)) + ".d.ts"
			if err := os.WriteFile(dts, []byte(vendor.Declaration()), 0644); err != nil {
				return fmt.Errorf("could not write %s: %w", dts, err)
			}
			utils.LogWithColor(utils.Success, fmt.Sprintf("✓ Wrote %s", dts))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&rootDir, "rootdir", "r", ".", "--rootdir ./apps/hello-world")
	generateCmd.Flags().StringVarP(&chunkName, "chunk-name", "c", "", "--chunk-name vendors")
	generateCmd.Flags().StringVarP(&outFile, "out", "o", "", "--out src/dynamicImporter.js")
	generateCmd.Flags().BoolVar(&declaration, "dts", false, "also write the .d.ts declaration")
}
