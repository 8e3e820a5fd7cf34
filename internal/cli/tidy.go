package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pkgsmith/pkgsmith/internal/store"
)

// NewTidyCmd creates the tidy command
func NewTidyCmd() *cobra.Command {
	var specPath string

	cmd := &cobra.Command{
		Use:   "tidy",
		Short: "Rewrite a spec file in its minimal form",
		Long: `Strips every override field that matches what would be inherited from
the shared metadata anyway and rewrites the spec file. Genuine overrides
are kept as they are.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := store.Load(specPath)
			if err != nil {
				return err
			}

			if spec.HasChocolatey() {
				spec.Chocolatey.ResetSame(spec.Metadata)
			}

			if err := store.Save(specPath, spec); err != nil {
				return err
			}

			logrus.Infof("Tidied %s", specPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&specPath, "file", "f", "pkgsmith.yaml", "Spec file to rewrite")

	return cmd
}
