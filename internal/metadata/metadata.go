// Package metadata holds the package-manager-agnostic metadata record and
// its value types. Manager-specific override records live in subpackages and
// are reconciled against this record at packaging time.
package metadata

import (
	"errors"
	"net/url"

	"github.com/pkgsmith/pkgsmith/internal/models"
)

var errNotAbsolute = errors.New("url is not absolute")

// PackageMetadata stores the values that are shared between package
// managers. The identifier is set once at construction and never changes.
type PackageMetadata struct {
	id               string
	maintainers      []string
	summary          string
	projectURL       *url.URL
	projectSourceURL *url.URL
	packageSourceURL *url.URL
	iconURL          *url.URL
	license          License
}

// New creates a metadata record for the given identifier. Maintainers
// default to DefaultMaintainers and the project url to the placeholder,
// which must be changed before release.
func New(id string) *PackageMetadata {
	return &PackageMetadata{
		id:          id,
		maintainers: DefaultMaintainers(),
		projectURL:  DefaultURL(),
	}
}

// ID returns the main identifier for the package.
func (p *PackageMetadata) ID() string {
	return p.id
}

// Maintainers returns the people responsible for creating and updating the
// package. The returned slice is a copy; mutating it does not change the
// record.
func (p *PackageMetadata) Maintainers() []string {
	return append([]string(nil), p.maintainers...)
}

// Summary returns the short summary of the software.
func (p *PackageMetadata) Summary() string {
	return p.summary
}

// ProjectURL returns the url to the landing page of the software. It is
// never nil; unset records carry the placeholder url.
func (p *PackageMetadata) ProjectURL() *url.URL {
	return p.projectURL
}

// ProjectSourceURL returns the location where the source of the software is
// hosted. Returns the placeholder url when unset, never nil.
func (p *PackageMetadata) ProjectSourceURL() *url.URL {
	if p.projectSourceURL != nil {
		return p.projectSourceURL
	}
	return DefaultURL()
}

// HasProjectSourceURL reports whether a project source url was explicitly
// set.
func (p *PackageMetadata) HasProjectSourceURL() bool {
	return p.projectSourceURL != nil
}

// PackageSourceURL returns the remote location of the package sources
// (usually where the package data file lives). Returns the placeholder url
// when unset, never nil.
func (p *PackageMetadata) PackageSourceURL() *url.URL {
	if p.packageSourceURL != nil {
		return p.packageSourceURL
	}
	return DefaultURL()
}

// HasPackageSourceURL reports whether a package source url was explicitly
// set.
func (p *PackageMetadata) HasPackageSourceURL() bool {
	return p.packageSourceURL != nil
}

// IconURL returns the url to the software icon, or nil when unset.
func (p *PackageMetadata) IconURL() *url.URL {
	return p.iconURL
}

// License returns the license of the software.
func (p *PackageMetadata) License() License {
	return p.license
}

// SetMaintainers replaces the maintainer list.
func (p *PackageMetadata) SetMaintainers(maintainers []string) {
	p.maintainers = append([]string(nil), maintainers...)
}

// SetSummary sets the short summary of the software.
func (p *PackageMetadata) SetSummary(summary string) {
	p.summary = summary
}

// SetProjectURL sets the url to the project home page. A models.PkgError of
// type ErrURLParse is returned when raw is not a valid absolute url.
func (p *PackageMetadata) SetProjectURL(raw string) error {
	u, err := ParseURL(raw)
	if err != nil {
		return &models.PkgError{Type: models.ErrURLParse, Package: p.id, Err: err}
	}
	p.projectURL = u
	return nil
}

// SetProjectSourceURL sets the url to the project source (usually the
// repository hosting the source).
func (p *PackageMetadata) SetProjectSourceURL(raw string) error {
	u, err := ParseURL(raw)
	if err != nil {
		return &models.PkgError{Type: models.ErrURLParse, Package: p.id, Err: err}
	}
	p.projectSourceURL = u
	return nil
}

// SetPackageSourceURL sets the url to the package sources.
func (p *PackageMetadata) SetPackageSourceURL(raw string) error {
	u, err := ParseURL(raw)
	if err != nil {
		return &models.PkgError{Type: models.ErrURLParse, Package: p.id, Err: err}
	}
	p.packageSourceURL = u
	return nil
}

// SetIconURL sets the url to the software icon.
func (p *PackageMetadata) SetIconURL(raw string) error {
	u, err := ParseURL(raw)
	if err != nil {
		return &models.PkgError{Type: models.ErrURLParse, Package: p.id, Err: err}
	}
	p.iconURL = u
	return nil
}

// SetLicense sets the license of the software. Some package managers only
// accept either an expression or an url, so setting both is recommended.
func (p *PackageMetadata) SetLicense(license License) {
	p.license = license
}
