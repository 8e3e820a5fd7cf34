// Package store reads and writes package spec files: one yaml document
// holding a generic metadata record plus optional per-manager override
// sections. Loading goes through the record constructors and setters so the
// usual parse validation applies; saving writes only what is actually set,
// so a record run through ResetSame persists in its minimal form.
package store

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pkgsmith/pkgsmith/internal/metadata"
	"github.com/pkgsmith/pkgsmith/internal/metadata/chocolatey"
	"github.com/pkgsmith/pkgsmith/internal/models"
	"github.com/pkgsmith/pkgsmith/internal/utils"
	"github.com/pkgsmith/pkgsmith/internal/version"
)

// Spec pairs the package-manager-agnostic metadata with the per-manager
// override records of one spec file. Override records never reference the
// generic record back; they are reconciled against it at call time.
type Spec struct {
	Metadata   *metadata.PackageMetadata
	Chocolatey *chocolatey.Metadata
}

// HasChocolatey reports whether the spec carries a chocolatey section.
func (s *Spec) HasChocolatey() bool {
	return s.Chocolatey != nil
}

// Choco returns the chocolatey override record, or a fresh default record
// when the spec carries none. The fresh record is not attached to the spec.
func (s *Spec) Choco() *chocolatey.Metadata {
	if s.Chocolatey != nil {
		return s.Chocolatey
	}
	return chocolatey.New()
}

type specFile struct {
	ID               string          `yaml:"id"`
	Maintainers      []string        `yaml:"maintainers,omitempty"`
	Summary          string          `yaml:"summary,omitempty"`
	ProjectURL       string          `yaml:"project_url,omitempty"`
	ProjectSourceURL string          `yaml:"project_source_url,omitempty"`
	PackageSourceURL string          `yaml:"package_source_url,omitempty"`
	IconURL          string          `yaml:"icon_url,omitempty"`
	License          *licenseFile    `yaml:"license,omitempty"`
	Chocolatey       *chocolateyFile `yaml:"chocolatey,omitempty"`
}

type licenseFile struct {
	Expression string `yaml:"expression,omitempty"`
	Location   string `yaml:"location,omitempty"`
}

type chocolateyFile struct {
	LowercaseID              *bool             `yaml:"lowercase_id,omitempty"`
	ID                       string            `yaml:"id,omitempty"`
	Version                  string            `yaml:"version,omitempty"`
	Authors                  []string          `yaml:"authors,omitempty"`
	Maintainers              []string          `yaml:"maintainers,omitempty"`
	Summary                  *string           `yaml:"summary,omitempty"`
	ProjectURL               string            `yaml:"project_url,omitempty"`
	ProjectSourceURL         string            `yaml:"project_source_url,omitempty"`
	PackageSourceURL         string            `yaml:"package_source_url,omitempty"`
	IconURL                  string            `yaml:"icon_url,omitempty"`
	LicenseURL               string            `yaml:"license_url,omitempty"`
	Title                    *string           `yaml:"title,omitempty"`
	Copyright                *string           `yaml:"copyright,omitempty"`
	ReleaseNotes             *string           `yaml:"release_notes,omitempty"`
	RequireLicenseAcceptance *bool             `yaml:"require_license_acceptance,omitempty"`
	DocumentationURL         string            `yaml:"documentation_url,omitempty"`
	IssuesURL                string            `yaml:"issues_url,omitempty"`
	MailingListURL           string            `yaml:"mailing_list_url,omitempty"`
	Tags                     []string          `yaml:"tags,omitempty"`
	Description              string            `yaml:"description,omitempty"`
	DescriptionSource        *descriptionFile  `yaml:"description_source,omitempty"`
	Dependencies             map[string]string `yaml:"dependencies,omitempty"`
	Files                    map[string]string `yaml:"files,omitempty"`
	Updater                  *updaterFile      `yaml:"updater,omitempty"`
}

type updaterFile struct {
	Embedded bool              `yaml:"embedded,omitempty"`
	Type     string            `yaml:"type,omitempty"`
	ParseURL *parseURLFile     `yaml:"parse_url,omitempty"`
	Regexes  map[string]string `yaml:"regexes,omitempty"`
}

// parseURLFile is either a plain url scalar or a mapping with a url and a
// download page regex.
type parseURLFile struct {
	URL   string `yaml:"url"`
	Regex string `yaml:"regex,omitempty"`
}

func (p *parseURLFile) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&p.URL)
	}
	type plain parseURLFile
	return value.Decode((*plain)(p))
}

func (p parseURLFile) MarshalYAML() (interface{}, error) {
	if p.Regex == "" {
		return p.URL, nil
	}
	type plain parseURLFile
	return plain(p), nil
}

type descriptionFile struct {
	Path      string `yaml:"path"`
	SkipStart uint16 `yaml:"skip_start,omitempty"`
	SkipEnd   uint16 `yaml:"skip_end,omitempty"`
}

// Load reads a spec file from path.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.PkgError{Type: models.ErrMetadataLoad, Package: path, Err: err}
	}

	var f specFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &models.PkgError{Type: models.ErrMetadataLoad, Package: path, Err: err}
	}
	if f.ID == "" {
		return nil, &models.PkgError{
			Type:    models.ErrMetadataLoad,
			Package: path,
			Err:     fmt.Errorf("spec file is missing an id"),
		}
	}

	spec := &Spec{Metadata: metadata.New(f.ID)}
	if err := loadMetadata(spec.Metadata, &f); err != nil {
		return nil, err
	}

	if f.Chocolatey != nil {
		choco, err := loadChocolatey(f.Chocolatey)
		if err != nil {
			return nil, err
		}
		spec.Chocolatey = choco
	}

	return spec, nil
}

func loadMetadata(meta *metadata.PackageMetadata, f *specFile) error {
	if len(f.Maintainers) > 0 {
		meta.SetMaintainers(f.Maintainers)
	}
	meta.SetSummary(f.Summary)
	if f.ProjectURL != "" {
		if err := meta.SetProjectURL(f.ProjectURL); err != nil {
			return err
		}
	}
	if f.ProjectSourceURL != "" {
		if err := meta.SetProjectSourceURL(f.ProjectSourceURL); err != nil {
			return err
		}
	}
	if f.PackageSourceURL != "" {
		if err := meta.SetPackageSourceURL(f.PackageSourceURL); err != nil {
			return err
		}
	}
	if f.IconURL != "" {
		if err := meta.SetIconURL(f.IconURL); err != nil {
			return err
		}
	}

	if f.License != nil {
		license, err := loadLicense(f.License)
		if err != nil {
			return err
		}
		meta.SetLicense(license)
	}
	return nil
}

func loadLicense(f *licenseFile) (metadata.License, error) {
	switch {
	case f.Expression != "" && f.Location != "":
		return metadata.LicenseExpressionAndURL(f.Expression, f.Location)
	case f.Location != "":
		return metadata.LicenseURL(f.Location)
	default:
		return metadata.LicenseExpression(f.Expression), nil
	}
}

func loadChocolatey(f *chocolateyFile) (*chocolatey.Metadata, error) {
	var m *chocolatey.Metadata
	if len(f.Authors) > 0 {
		m = chocolatey.WithAuthors(f.Authors...)
	} else {
		m = chocolatey.New()
	}

	if f.LowercaseID != nil {
		m.SetLowercaseID(*f.LowercaseID)
	}
	m.SetID(f.ID)
	if len(f.Maintainers) > 0 {
		m.SetMaintainers(f.Maintainers)
	}
	if f.Version != "" {
		v, err := version.Parse(f.Version)
		if err != nil {
			return nil, err
		}
		m.Version = v
	}

	m.Summary = f.Summary
	m.Title = f.Title
	m.Copyright = f.Copyright
	m.ReleaseNotes = f.ReleaseNotes
	if f.RequireLicenseAcceptance != nil {
		m.RequireLicenseAcceptance = *f.RequireLicenseAcceptance
	}

	urls := []struct {
		raw  string
		dest **url.URL
	}{
		{f.ProjectURL, &m.ProjectURL},
		{f.ProjectSourceURL, &m.ProjectSourceURL},
		{f.PackageSourceURL, &m.PackageSourceURL},
		{f.IconURL, &m.IconURL},
		{f.LicenseURL, &m.LicenseURL},
		{f.DocumentationURL, &m.DocumentationURL},
		{f.IssuesURL, &m.IssuesURL},
		{f.MailingListURL, &m.MailingListURL},
	}
	for _, entry := range urls {
		if entry.raw == "" {
			continue
		}
		u, err := metadata.ParseURL(entry.raw)
		if err != nil {
			return nil, &models.PkgError{Type: models.ErrURLParse, Package: f.ID, Err: err}
		}
		*entry.dest = u
	}

	if len(f.Tags) > 0 {
		m.SetTags(f.Tags)
	}
	if f.Description != "" {
		m.SetDescriptionString(f.Description)
	} else if f.DescriptionSource != nil {
		m.SetDescription(metadata.DescriptionLocation(
			f.DescriptionSource.Path, f.DescriptionSource.SkipStart, f.DescriptionSource.SkipEnd))
	}
	if err := m.SetDependencies(f.Dependencies); err != nil {
		return nil, err
	}
	m.SetFiles(f.Files)

	if f.Updater != nil {
		updater, err := loadUpdater(f.Updater)
		if err != nil {
			return nil, err
		}
		m.Updater = updater
	}

	return m, nil
}

func loadUpdater(f *updaterFile) (*chocolatey.Updater, error) {
	u := chocolatey.NewUpdater()
	u.Embedded = f.Embedded

	t, err := chocolatey.ParseUpdaterType(f.Type)
	if err != nil {
		return nil, &models.PkgError{Type: models.ErrInvalidConfig, Err: err}
	}
	u.Type = t

	if f.ParseURL != nil {
		var p chocolatey.ParseURL
		if f.ParseURL.Regex != "" {
			p, err = chocolatey.NewParseURLWithRegex(f.ParseURL.URL, f.ParseURL.Regex)
		} else {
			p, err = chocolatey.NewParseURL(f.ParseURL.URL)
		}
		if err != nil {
			return nil, err
		}
		u.ParseURL = p
	}

	u.SetRegexes(f.Regexes)
	return u, nil
}

// Save writes the spec to path, persisting only fields that are set. Run
// ResetSame on the override records first to strip everything the generic
// record already provides.
func Save(path string, spec *Spec) error {
	f := specFile{
		ID:          spec.Metadata.ID(),
		Maintainers: spec.Metadata.Maintainers(),
		Summary:     spec.Metadata.Summary(),
		ProjectURL:  spec.Metadata.ProjectURL().String(),
	}
	if spec.Metadata.HasProjectSourceURL() {
		f.ProjectSourceURL = spec.Metadata.ProjectSourceURL().String()
	}
	if spec.Metadata.HasPackageSourceURL() {
		f.PackageSourceURL = spec.Metadata.PackageSourceURL().String()
	}
	if u := spec.Metadata.IconURL(); u != nil {
		f.IconURL = u.String()
	}
	if license := spec.Metadata.License(); !license.IsNone() {
		lf := &licenseFile{Expression: license.Expression()}
		if u := license.Location(); u != nil {
			lf.Location = u.String()
		}
		f.License = lf
	}

	if spec.HasChocolatey() {
		f.Chocolatey = saveChocolatey(spec.Chocolatey)
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return &models.PkgError{Type: models.ErrMetadataLoad, Package: path, Err: err}
	}
	if err := utils.WriteFile(path, data, 0644); err != nil {
		return &models.PkgError{Type: models.ErrMetadataLoad, Package: path, Err: err}
	}
	return nil
}

func saveChocolatey(m *chocolatey.Metadata) *chocolateyFile {
	f := &chocolateyFile{
		ID:           m.ID(),
		Authors:      m.Authors(),
		Maintainers:  m.Maintainers(),
		Summary:      m.Summary,
		Title:        m.Title,
		Copyright:    m.Copyright,
		ReleaseNotes: m.ReleaseNotes,
		Tags:         m.Tags(),
	}

	if !m.LowercaseID() {
		lowercase := false
		f.LowercaseID = &lowercase
	}
	if !m.RequireLicenseAcceptance {
		acceptance := false
		f.RequireLicenseAcceptance = &acceptance
	}
	if m.Version != nil && !m.Version.Equal(version.Zero()) {
		f.Version = m.Version.String()
	}

	f.ProjectURL = urlString(m.ProjectURL)
	f.ProjectSourceURL = urlString(m.ProjectSourceURL)
	f.PackageSourceURL = urlString(m.PackageSourceURL)
	f.IconURL = urlString(m.IconURL)
	f.LicenseURL = urlString(m.LicenseURL)
	f.DocumentationURL = urlString(m.DocumentationURL)
	f.IssuesURL = urlString(m.IssuesURL)
	f.MailingListURL = urlString(m.MailingListURL)

	if text, ok := m.Description.Text(); ok {
		f.Description = text
	} else if path, skipStart, skipEnd, ok := m.Description.Location(); ok {
		f.DescriptionSource = &descriptionFile{Path: path, SkipStart: skipStart, SkipEnd: skipEnd}
	}

	if deps := m.Dependencies(); len(deps) > 0 {
		f.Dependencies = make(map[string]string, len(deps))
		for id, v := range deps {
			if v != nil {
				f.Dependencies[id] = v.String()
			} else {
				f.Dependencies[id] = ""
			}
		}
	}
	if files := m.Files(); len(files) > 0 {
		f.Files = make(map[string]string, len(files))
		for src, target := range files {
			f.Files[src] = target
		}
	}

	if m.Updater != nil {
		f.Updater = saveUpdater(m.Updater)
	}

	return f
}

func saveUpdater(u *chocolatey.Updater) *updaterFile {
	f := &updaterFile{Embedded: u.Embedded}
	if u.Type != chocolatey.UpdaterNone {
		f.Type = u.Type.String()
	}
	if !u.ParseURL.IsNone() {
		pf := &parseURLFile{URL: u.ParseURL.URL().String()}
		if regex, ok := u.ParseURL.Regex(); ok {
			pf.Regex = regex
		}
		f.ParseURL = pf
	}
	if regexes := u.Regexes(); len(regexes) > 0 {
		f.Regexes = make(map[string]string, len(regexes))
		for name, value := range regexes {
			f.Regexes[name] = value
		}
	}
	return f
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}
