// Package chocolatey holds the metadata fields that are specific to creating
// Chocolatey packages. Fields shared between package managers live in the
// parent metadata package; every shared field here is an optional override of
// its generic counterpart and is filled in by UpdateFrom.
package chocolatey

import (
	"net/url"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/pkgsmith/pkgsmith/internal/metadata"
	"github.com/pkgsmith/pkgsmith/internal/version"
)

// Name is the package manager label used in diagnostics and manifests.
const Name = "choco"

// Default file mapping that is always part of a package, even when not
// explicitly configured.
const (
	DefaultFileSource = "tools/**"
	DefaultFileTarget = "tools"
)

// Metadata holds the information needed to create a Chocolatey package.
// Optional fields that mirror the generic record are nil until set
// explicitly or filled in by UpdateFrom. Create records through New, WithID
// or WithAuthors; the zero value carries no version.
type Metadata struct {
	lowercaseID  bool
	id           string
	maintainers  []string
	authors      []string
	tags         []string
	dependencies map[string]*semver.Version
	files        map[string]string

	// Summary overrides the generic summary when set.
	Summary *string

	// ProjectURL overrides the generic project url when set.
	ProjectURL *url.URL

	// ProjectSourceURL overrides the generic project source url when set.
	ProjectSourceURL *url.URL

	// PackageSourceURL overrides the generic package source url when set.
	PackageSourceURL *url.URL

	// IconURL overrides the generic icon url when set.
	IconURL *url.URL

	// LicenseURL is the public location of the software license. Filled in
	// from the generic license when it resolves to a url.
	LicenseURL *url.URL

	// Title of the software as displayed to users.
	Title *string

	// Copyright of the software.
	Copyright *string

	// ReleaseNotes for the version being packaged, or a link to them.
	ReleaseNotes *string

	// Version of the Chocolatey package. Never nil; defaults to 0.0.0.
	Version *semver.Version

	// Description of the software.
	Description metadata.Description

	// RequireLicenseAcceptance reports whether users must accept the
	// license during install. Only emitted when a license url is set.
	RequireLicenseAcceptance bool

	// DocumentationURL is the url to the software documentation.
	DocumentationURL *url.URL

	// IssuesURL is where bugs and feature requests should be reported.
	IssuesURL *url.URL

	// MailingListURL is the url to the software mailing list.
	MailingListURL *url.URL

	// Updater configures release discovery for the package, or nil when
	// the package is updated by hand.
	Updater *Updater
}

// New creates an empty Chocolatey metadata record. Lowercase identifiers and
// license acceptance are on by default, the version is 0.0.0, and everything
// else is unset.
func New() *Metadata {
	return &Metadata{
		lowercaseID:              true,
		RequireLicenseAcceptance: true,
		Version:                  version.Zero(),
		dependencies:             make(map[string]*semver.Version),
		files:                    make(map[string]string),
	}
}

// WithID creates a record with the identifier already canonicalized from id,
// and seeds the tag list with the lowercase canonical identifier.
func WithID(id string, lowercase bool) *Metadata {
	m := New()
	m.lowercaseID = lowercase
	m.id = GenerateID(id, lowercase)
	m.tags = []string{GenerateID(id, true)}
	return m
}

// WithAuthors creates a record with the authors/developers of the software
// set. Authors are required for a Chocolatey package; calling this with no
// authors is a usage error and panics.
func WithAuthors(authors ...string) *Metadata {
	if len(authors) == 0 {
		panic("invalid usage: authors can not be empty")
	}
	m := New()
	m.authors = append([]string(nil), authors...)
	return m
}

// GenerateID canonicalizes an identifier for Chocolatey: spaces are replaced
// with dashes, and the result is lowercased when lowercase is set.
func GenerateID(id string, lowercase bool) string {
	id = strings.ReplaceAll(id, " ", "-")
	if lowercase {
		id = strings.ToLower(id)
	}
	return id
}

// LowercaseID reports whether the identifier inherited from the generic
// record is forced to lower case. This should stay on for new packages
// pushed to the Chocolatey community repository.
func (m *Metadata) LowercaseID() bool {
	return m.lowercaseID
}

// SetLowercaseID controls the canonicalization of the inherited identifier.
func (m *Metadata) SetLowercaseID(lowercase bool) {
	m.lowercaseID = lowercase
}

// ID returns the package identifier. It is empty until set explicitly or
// inherited from the generic record by UpdateFrom.
func (m *Metadata) ID() string {
	return m.id
}

// SetID sets the identifier verbatim, without canonicalization. Used when
// loading a persisted record; new records should go through WithID.
func (m *Metadata) SetID(id string) {
	m.id = id
}

// Authors returns the authors/developers of the software.
func (m *Metadata) Authors() []string {
	return m.authors
}

// Maintainers returns the package maintainers (owners in the nuspec).
func (m *Metadata) Maintainers() []string {
	return m.maintainers
}

// SetMaintainers replaces the maintainer list.
func (m *Metadata) SetMaintainers(maintainers []string) {
	m.maintainers = append([]string(nil), maintainers...)
}

// Tags returns the package tags. After UpdateFrom the first tag is always
// the lowercase canonical identifier.
func (m *Metadata) Tags() []string {
	return m.tags
}

// Dependencies returns the packages that must be installed alongside this
// one, keyed by identifier. A nil version means no minimum version.
func (m *Metadata) Dependencies() map[string]*semver.Version {
	return m.dependencies
}

// Files returns the file mappings included in the package, keyed by source
// glob. The DefaultFileSource mapping is always part of the package even
// when missing here.
func (m *Metadata) Files() map[string]string {
	return m.files
}

// SetTitle sets the title displayed to users.
func (m *Metadata) SetTitle(title string) {
	m.Title = &title
}

// SetCopyright sets the copyright included in the package.
func (m *Metadata) SetCopyright(copyright string) {
	m.Copyright = &copyright
}

// SetReleaseNotes sets the release notes, or a link to them.
func (m *Metadata) SetReleaseNotes(notes string) {
	m.ReleaseNotes = &notes
}

// SetSummary sets the short summary override.
func (m *Metadata) SetSummary(summary string) {
	m.Summary = &summary
}

// SetDescription sets the description of the software.
func (m *Metadata) SetDescription(d metadata.Description) {
	m.Description = d
}

// SetDescriptionString sets an embedded text description.
func (m *Metadata) SetDescriptionString(text string) {
	m.Description = metadata.DescriptionText(text)
}

// AddDependency adds a dependency with a minimum version. An empty spec
// means any version is accepted. Returns the parser error when spec is not a
// valid version.
func (m *Metadata) AddDependency(id, spec string) error {
	if m.dependencies == nil {
		m.dependencies = make(map[string]*semver.Version)
	}
	if spec == "" {
		m.dependencies[id] = nil
		return nil
	}
	v, err := version.Parse(spec)
	if err != nil {
		return err
	}
	m.dependencies[id] = v
	return nil
}

// SetDependencies clears and replaces the dependency map.
func (m *Metadata) SetDependencies(deps map[string]string) error {
	m.dependencies = make(map[string]*semver.Version, len(deps))
	for id, spec := range deps {
		if err := m.AddDependency(id, spec); err != nil {
			return err
		}
	}
	return nil
}

// AddFile adds a file (or globbing pattern) with its target destination.
func (m *Metadata) AddFile(src, target string) {
	if m.files == nil {
		m.files = make(map[string]string)
	}
	m.files[src] = target
}

// SetFiles clears and replaces the file mappings.
func (m *Metadata) SetFiles(files map[string]string) {
	m.files = make(map[string]string, len(files))
	for src, target := range files {
		m.AddFile(src, target)
	}
}

// AddTag appends a tag.
func (m *Metadata) AddTag(tag string) {
	m.tags = append(m.tags, tag)
}

// SetTags clears and replaces the tag list.
func (m *Metadata) SetTags(tags []string) {
	m.tags = append([]string(nil), tags...)
}
