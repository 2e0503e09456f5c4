package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"micromachine.dev/dynamic-vendor/lib/utils"
)

var force bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Creates dynamic-vendor.json from package.json",
	Long: `The init command lists the runtime dependencies of package.json as vendors in a
new dynamic-vendor.json. Type-only @types packages are skipped. Existing
configuration is left alone unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, vendors, err := utils.SeedVendorFile(rootDir, chunkName, force)
		if err != nil {
			return err
		}

		utils.LogWithColor(utils.Success, fmt.Sprintf("✓ Wrote %s with %d vendors", path, len(vendors)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&rootDir, "rootdir", "r", ".", "--rootdir ./apps/hello-world")
	initCmd.Flags().StringVarP(&chunkName, "chunk-name", "c", "", "--chunk-name vendors")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration")
}
