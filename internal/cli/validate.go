package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pkgsmith/pkgsmith/internal/models"
	"github.com/pkgsmith/pkgsmith/internal/rules"
	"github.com/pkgsmith/pkgsmith/internal/store"
)

// NewValidateCmd creates the validate command
func NewValidateCmd() *cobra.Command {
	var specPath string
	var ruleSet string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a spec file against the packaging rules",
		Long: `Runs the metadata in a spec file through the validation rules and
reports every finding grouped by severity.

The core rule set contains the structural requirements needed for
packaging to succeed at all; the community rule set adds the style and
best-practice rules expected by community repositories. The command only
fails when requirement-severity findings are present.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := rules.ParseStrictness(ruleSet)
			if err != nil {
				return &models.PkgError{Type: models.ErrInvalidConfig, Err: err}
			}

			spec, err := store.Load(specPath)
			if err != nil {
				return err
			}

			msgs := rules.Validate(spec.Metadata, level)
			if len(msgs) == 0 {
				logrus.Infof("%s passed %s validation", spec.Metadata.ID(), level)
				return nil
			}

			logMessages(msgs)

			if rules.ContainsSeverity(msgs, rules.Requirement) {
				return &models.PkgError{
					Type:    models.ErrInvalidConfig,
					Package: spec.Metadata.ID(),
					Err:     fmt.Errorf("metadata failed validation"),
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&specPath, "file", "f", "pkgsmith.yaml", "Spec file to read")
	cmd.Flags().StringVarP(&ruleSet, "rules", "r", "core", "Rule set to run (core or community)")

	return cmd
}

// logMessages reports diagnostics grouped by severity, requirements first.
func logMessages(msgs []rules.Message) {
	grouped := rules.BySeverity(msgs)
	for _, severity := range rules.SeverityOrder {
		for _, msg := range grouped[severity] {
			text := msg.Text
			if msg.PackageManager != "" {
				text = fmt.Sprintf("[%s] %s", msg.PackageManager, text)
			}

			switch severity {
			case rules.Requirement:
				logrus.Errorf("%s: %s", severity, text)
			case rules.Guideline:
				logrus.Warnf("%s: %s", severity, text)
			default:
				logrus.Infof("%s: %s", severity, text)
			}
		}
	}
}
