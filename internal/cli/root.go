package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pkgsmith",
		Short: "Generate package manager manifests from shared package metadata",
		Long: `Pkgsmith keeps package metadata in a single spec file and generates
package-manager-specific manifests from it.

The spec file holds the metadata shared between package managers plus
per-manager override sections; anything an override section leaves out is
inherited from the shared metadata when a manifest is generated.

Supported package managers:
  - Chocolatey (nuspec manifests)`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewTidyCmd())

	return rootCmd
}
