package chocolatey

import (
	"net/url"
	"strings"

	"github.com/pkgsmith/pkgsmith/internal/metadata"
)

// UpdateFrom fills every unset override field from the generic record. Set
// fields always win. The project, project source and package source urls
// copy whatever the generic accessors yield, placeholder included, so all
// three are set after this call; the icon and license urls are only copied
// when the generic record resolves them to a concrete url.
//
// UpdateFrom is idempotent: applying it twice with the same generic record
// equals applying it once.
func (m *Metadata) UpdateFrom(pkg *metadata.PackageMetadata) {
	if m.id == "" && pkg.ID() != "" {
		m.id = GenerateID(pkg.ID(), m.lowercaseID)
	}
	if len(m.maintainers) == 0 {
		m.maintainers = append([]string(nil), pkg.Maintainers()...)
	}
	if m.Summary == nil && pkg.Summary() != "" {
		summary := pkg.Summary()
		m.Summary = &summary
	}
	if m.ProjectURL == nil {
		m.ProjectURL = cloneURL(pkg.ProjectURL())
	}
	if m.ProjectSourceURL == nil {
		m.ProjectSourceURL = cloneURL(pkg.ProjectSourceURL())
	}
	if m.PackageSourceURL == nil {
		m.PackageSourceURL = cloneURL(pkg.PackageSourceURL())
	}
	if m.IconURL == nil {
		if u := pkg.IconURL(); u != nil {
			m.IconURL = cloneURL(u)
		}
	}
	if m.LicenseURL == nil {
		if u := pkg.License().URL(); u != nil {
			m.LicenseURL = cloneURL(u)
		}
	}

	if m.id != "" {
		tag := strings.ToLower(m.id)
		if !containsTag(m.tags, tag) {
			m.tags = append([]string{tag}, m.tags...)
		}
	}
}

// ResetSame clears every override field whose value equals what UpdateFrom
// would derive from the generic record, leaving only genuine overrides set.
// The canonical lowercase identifier tag is removed regardless of its
// position, matching the bootstrap insertion of UpdateFrom.
//
// Applied after UpdateFrom with the same generic record, ResetSame restores
// every field that was unset beforehand; fields that already held a
// different value are untouched by both operations.
func (m *Metadata) ResetSame(pkg *metadata.PackageMetadata) {
	derivedID := ""
	if pkg.ID() != "" {
		derivedID = GenerateID(pkg.ID(), m.lowercaseID)
	}

	// Resolve the tag before the identifier is cleared; it matches what the
	// bootstrap step inserted.
	tag := strings.ToLower(m.id)
	if tag == "" {
		tag = strings.ToLower(derivedID)
	}
	if tag != "" {
		m.tags = removeTag(m.tags, tag)
	}

	if m.id != "" && m.id == derivedID {
		m.id = ""
	}
	if stringsEqual(m.maintainers, pkg.Maintainers()) {
		m.maintainers = nil
	}
	if m.Summary != nil && pkg.Summary() != "" && *m.Summary == pkg.Summary() {
		m.Summary = nil
	}
	if urlEqual(m.ProjectURL, pkg.ProjectURL()) {
		m.ProjectURL = nil
	}
	if urlEqual(m.ProjectSourceURL, pkg.ProjectSourceURL()) {
		m.ProjectSourceURL = nil
	}
	if urlEqual(m.PackageSourceURL, pkg.PackageSourceURL()) {
		m.PackageSourceURL = nil
	}
	if pkg.IconURL() != nil && urlEqual(m.IconURL, pkg.IconURL()) {
		m.IconURL = nil
	}
	if u := pkg.License().URL(); u != nil && urlEqual(m.LicenseURL, u) {
		m.LicenseURL = nil
	}
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func urlEqual(a, b *url.URL) bool {
	return a != nil && b != nil && a.String() == b.String()
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return len(a) > 0
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func removeTag(tags []string, tag string) []string {
	kept := tags[:0]
	for _, t := range tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
