package rules

import (
	"strings"

	"github.com/github/go-spdx/v2/spdxexp"

	"github.com/pkgsmith/pkgsmith/internal/metadata"
)

// idNotEmpty requires a non-blank package identifier.
type idNotEmpty struct{}

func (idNotEmpty) Name() string { return "id-not-empty" }

func (idNotEmpty) Applies(Strictness) bool { return true }

func (idNotEmpty) Check(pkg *metadata.PackageMetadata) *Message {
	if strings.TrimSpace(pkg.ID()) == "" {
		return &Message{
			Severity: Requirement,
			Text:     "An identifier can not be empty!",
		}
	}
	return nil
}

// maintainersNotEmpty requires at least one non-empty maintainer.
type maintainersNotEmpty struct{}

func (maintainersNotEmpty) Name() string { return "maintainers-not-empty" }

func (maintainersNotEmpty) Applies(Strictness) bool { return true }

func (maintainersNotEmpty) Check(pkg *metadata.PackageMetadata) *Message {
	for _, m := range pkg.Maintainers() {
		if m != "" {
			return nil
		}
	}
	return &Message{
		Severity: Requirement,
		Text:     "At least 1 maintainer must be specified for the package!",
	}
}

// licenseExpressionSPDX flags license expressions that are not valid SPDX
// expressions. An explicit license url passes regardless of the expression.
type licenseExpressionSPDX struct{}

func (licenseExpressionSPDX) Name() string { return "license-expression-is-spdx" }

func (licenseExpressionSPDX) Applies(level Strictness) bool { return level == Community }

func (licenseExpressionSPDX) Check(pkg *metadata.PackageMetadata) *Message {
	expression := pkg.License().Expression()
	if expression == "" {
		return nil
	}
	if valid, _ := spdxexp.ValidateLicenses([]string{expression}); !valid {
		return &Message{
			Severity: Guideline,
			Text:     "The license expression is not a known SPDX license expression!",
		}
	}
	return nil
}

// projectURLNotLocalPath requires the project url to point at a remote host.
type projectURLNotLocalPath struct{}

func (projectURLNotLocalPath) Name() string { return "project-url-not-local-path" }

func (projectURLNotLocalPath) Applies(Strictness) bool { return true }

func (projectURLNotLocalPath) Check(pkg *metadata.PackageMetadata) *Message {
	u := pkg.ProjectURL()
	if u.Host == "" || strings.EqualFold(u.Scheme, "file") {
		return &Message{
			Severity: Requirement,
			Text:     "The project url can not be a local path!",
		}
	}
	return nil
}
