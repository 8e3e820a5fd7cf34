// Package chocolatey generates the nuspec manifest file for Chocolatey
// packages. The metadata handed to the generator is expected to be
// reconciled already; the generator only reads it.
package chocolatey

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pkgsmith/pkgsmith/internal/generator"
	"github.com/pkgsmith/pkgsmith/internal/metadata/chocolatey"
	"github.com/pkgsmith/pkgsmith/internal/models"
	"github.com/pkgsmith/pkgsmith/internal/utils"
	"github.com/pkgsmith/pkgsmith/internal/version"
)

const nuspecNamespace = "http://schemas.microsoft.com/packaging/2015/06/nuspec.xsd"

const utf8TestComment = ` Do not remove this test for UTF-8: If “Ω” doesn't appear as greek uppercase omega letter
enclosed in quotation marks, you should use an editor that supports UTF-8, not this one. `

// Generator implements the generator.Generator interface for Chocolatey
// nuspec manifests
type Generator struct {
	meta *chocolatey.Metadata
}

// NewGenerator creates a new Chocolatey generator for the given metadata
func NewGenerator(meta *chocolatey.Metadata) generator.Generator {
	return &Generator{meta: meta}
}

// Name returns the package manager this generator targets
func (g *Generator) Name() string {
	return chocolatey.Name
}

// Generate creates the package work directory under workDir and writes the
// nuspec file into it. An existing work directory is emptied first so the
// manifest is always regenerated from scratch.
func (g *Generator) Generate(ctx context.Context, workDir string) error {
	id := g.meta.ID()
	if strings.TrimSpace(id) == "" {
		return &models.PkgError{
			Type: models.ErrManifestGen,
			Err:  fmt.Errorf("package identifier is not set"),
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pkgDir := filepath.Join(workDir, id)
	if err := utils.CleanDir(pkgDir); err != nil {
		return &models.PkgError{Type: models.ErrManifestGen, Package: id, Err: err}
	}

	data, err := renderNuspec(g.meta)
	if err != nil {
		return &models.PkgError{Type: models.ErrManifestGen, Package: id, Err: err}
	}

	nuspecPath := filepath.Join(pkgDir, id+".nuspec")
	if err := utils.WriteFile(nuspecPath, data, 0644); err != nil {
		return &models.PkgError{Type: models.ErrManifestGen, Package: id, Err: err}
	}

	logrus.Infof("Generated nuspec: %s", nuspecPath)
	return nil
}

type nuspec struct {
	XMLName  xml.Name       `xml:"package"`
	Xmlns    string         `xml:"xmlns,attr"`
	Comment  string         `xml:",comment"`
	Metadata nuspecMetadata `xml:"metadata"`
	Files    nuspecFiles    `xml:"files"`
}

type nuspecMetadata struct {
	ID                       string              `xml:"id"`
	Version                  string              `xml:"version"`
	PackageSourceURL         string              `xml:"packageSourceUrl,omitempty"`
	Owners                   string              `xml:"owners"`
	Title                    string              `xml:"title,omitempty"`
	Authors                  string              `xml:"authors"`
	ProjectURL               string              `xml:"projectUrl,omitempty"`
	IconURL                  string              `xml:"iconUrl,omitempty"`
	Copyright                string              `xml:"copyright,omitempty"`
	LicenseURL               string              `xml:"licenseUrl,omitempty"`
	RequireLicenseAcceptance *bool               `xml:"requireLicenseAcceptance,omitempty"`
	ProjectSourceURL         string              `xml:"projectSourceUrl,omitempty"`
	DocsURL                  string              `xml:"docsUrl,omitempty"`
	MailingListURL           string              `xml:"mailingListUrl,omitempty"`
	BugTrackerURL            string              `xml:"bugTrackerUrl,omitempty"`
	Tags                     string              `xml:"tags"`
	Summary                  string              `xml:"summary,omitempty"`
	Description              *nuspecDescription  `xml:"description,omitempty"`
	ReleaseNotes             string              `xml:"releaseNotes,omitempty"`
	Dependencies             *nuspecDependencies `xml:"dependencies,omitempty"`
}

type nuspecDescription struct {
	Text string `xml:",cdata"`
}

type nuspecDependencies struct {
	Dependency []nuspecDependency `xml:"dependency"`
}

type nuspecDependency struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr,omitempty"`
}

type nuspecFiles struct {
	File []nuspecFile `xml:"file"`
}

type nuspecFile struct {
	Src    string `xml:"src,attr"`
	Target string `xml:"target,attr"`
}

// renderNuspec builds the nuspec document. Dependencies and files are
// emitted in sorted order so the manifest regenerates byte for byte from the
// same metadata.
func renderNuspec(meta *chocolatey.Metadata) ([]byte, error) {
	doc := nuspec{
		Xmlns:   nuspecNamespace,
		Comment: utf8TestComment,
		Metadata: nuspecMetadata{
			ID:               strings.TrimSpace(meta.ID()),
			Version:          version.ChocoString(meta.Version),
			PackageSourceURL: urlString(meta.PackageSourceURL),
			Owners:           strings.Join(meta.Maintainers(), ","),
			Authors:          strings.Join(meta.Authors(), ","),
			ProjectURL:       urlString(meta.ProjectURL),
			IconURL:          urlString(meta.IconURL),
			ProjectSourceURL: urlString(meta.ProjectSourceURL),
			DocsURL:          urlString(meta.DocumentationURL),
			MailingListURL:   urlString(meta.MailingListURL),
			BugTrackerURL:    urlString(meta.IssuesURL),
			Tags:             strings.Join(meta.Tags(), " "),
		},
	}

	if meta.Title != nil {
		doc.Metadata.Title = strings.TrimSpace(*meta.Title)
	}
	if meta.Copyright != nil {
		doc.Metadata.Copyright = strings.TrimSpace(*meta.Copyright)
	}
	if meta.Summary != nil {
		doc.Metadata.Summary = strings.TrimSpace(*meta.Summary)
	}
	if meta.ReleaseNotes != nil {
		doc.Metadata.ReleaseNotes = strings.TrimSpace(*meta.ReleaseNotes)
	}

	// The license block is only emitted when a license url is known; the
	// acceptance flag means nothing without one.
	if meta.LicenseURL != nil {
		doc.Metadata.LicenseURL = meta.LicenseURL.String()
		acceptance := meta.RequireLicenseAcceptance
		doc.Metadata.RequireLicenseAcceptance = &acceptance
	}

	// Only an embedded text description is emitted inline; a description
	// location is resolved upstream before generation.
	if text, ok := meta.Description.Text(); ok {
		doc.Metadata.Description = &nuspecDescription{Text: strings.TrimSpace(text)}
	}

	if deps := meta.Dependencies(); len(deps) > 0 {
		ids := make([]string, 0, len(deps))
		for id := range deps {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		list := &nuspecDependencies{}
		for _, id := range ids {
			dep := nuspecDependency{ID: id}
			if v := deps[id]; v != nil {
				dep.Version = v.String()
			}
			list.Dependency = append(list.Dependency, dep)
		}
		doc.Metadata.Dependencies = list
	}

	// The default tools mapping always comes first and is never duplicated,
	// even when explicitly re-specified.
	doc.Files.File = []nuspecFile{{Src: chocolatey.DefaultFileSource, Target: chocolatey.DefaultFileTarget}}
	files := meta.Files()
	srcs := make([]string, 0, len(files))
	for src := range files {
		srcs = append(srcs, src)
	}
	sort.Strings(srcs)
	for _, src := range srcs {
		normalized := strings.ReplaceAll(src, "\\", "/")
		if normalized == chocolatey.DefaultFileSource {
			continue
		}
		doc.Files.File = append(doc.Files.File, nuspecFile{Src: normalized, Target: files[src]})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), append(body, '\n')...), nil
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}
