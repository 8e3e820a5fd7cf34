package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	chocogen "github.com/pkgsmith/pkgsmith/internal/generator/chocolatey"
	"github.com/pkgsmith/pkgsmith/internal/models"
	"github.com/pkgsmith/pkgsmith/internal/rules"
	"github.com/pkgsmith/pkgsmith/internal/store"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	var specPath string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate package manifests",
		Long: `Loads a spec file, fills the override sections in from the shared
metadata, validates the result against the core rules and writes the
package manifests to the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := store.Load(specPath)
			if err != nil {
				return err
			}

			logrus.Infof("Generating manifests for %s", spec.Metadata.ID())

			// Core rules are the structural requirements; packaging can not
			// succeed while any of them fail.
			msgs := rules.Validate(spec.Metadata, rules.Core)
			if rules.ContainsSeverity(msgs, rules.Requirement) {
				logMessages(msgs)
				return &models.PkgError{
					Type:    models.ErrInvalidConfig,
					Package: spec.Metadata.ID(),
					Err:     fmt.Errorf("metadata failed validation"),
				}
			}

			choco := spec.Choco()
			choco.UpdateFrom(spec.Metadata)

			gen := chocogen.NewGenerator(choco)
			if err := gen.Generate(cmd.Context(), outputDir); err != nil {
				return err
			}

			logrus.Info("Manifest generation completed successfully!")
			return nil
		},
	}

	cmd.Flags().StringVarP(&specPath, "file", "f", "pkgsmith.yaml", "Spec file to read")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./out", "Output directory")

	return cmd
}
