package chocolatey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgsmith/pkgsmith/internal/metadata"
)

func newGeneric(t *testing.T) *metadata.PackageMetadata {
	t.Helper()
	t.Setenv(metadata.MaintainerEnvVar, "chell")

	pkg := metadata.New("Test Package")
	pkg.SetSummary("Some test software")
	require.NoError(t, pkg.SetProjectURL("https://example.org/test-package"))
	require.NoError(t, pkg.SetProjectSourceURL("https://github.com/codecat/test-package"))
	require.NoError(t, pkg.SetPackageSourceURL("https://github.com/codecat/packages"))
	require.NoError(t, pkg.SetIconURL("https://cdn.example.org/icon.png"))
	pkg.SetLicense(metadata.LicenseExpression("MIT"))
	return pkg
}

func TestUpdateFromFillsUnsetFields(t *testing.T) {
	pkg := newGeneric(t)
	m := New()

	m.UpdateFrom(pkg)

	assert.Equal(t, "test-package", m.ID())
	assert.Equal(t, []string{"chell"}, m.Maintainers())
	require.NotNil(t, m.Summary)
	assert.Equal(t, "Some test software", *m.Summary)
	require.NotNil(t, m.ProjectURL)
	assert.Equal(t, "https://example.org/test-package", m.ProjectURL.String())
	require.NotNil(t, m.ProjectSourceURL)
	assert.Equal(t, "https://github.com/codecat/test-package", m.ProjectSourceURL.String())
	require.NotNil(t, m.PackageSourceURL)
	assert.Equal(t, "https://github.com/codecat/packages", m.PackageSourceURL.String())
	require.NotNil(t, m.IconURL)
	assert.Equal(t, "https://cdn.example.org/icon.png", m.IconURL.String())
	require.NotNil(t, m.LicenseURL)
	assert.Equal(t, "https://opensource.org/licenses/MIT", m.LicenseURL.String())
	assert.Equal(t, []string{"test-package"}, m.Tags())
}

func TestUpdateFromKeepsSetFields(t *testing.T) {
	pkg := newGeneric(t)
	m := WithID("custom-id", true)
	m.SetMaintainers([]string{"wheatley"})
	m.SetSummary("A different summary")

	m.UpdateFrom(pkg)

	assert.Equal(t, "custom-id", m.ID())
	assert.Equal(t, []string{"wheatley"}, m.Maintainers())
	assert.Equal(t, "A different summary", *m.Summary)
}

func TestUpdateFromKeepsPresetLicenseURL(t *testing.T) {
	pkg := newGeneric(t)
	m := New()
	custom, err := metadata.ParseURL("https://custom.example/license")
	require.NoError(t, err)
	m.LicenseURL = custom

	m.UpdateFrom(pkg)

	assert.Equal(t, "https://custom.example/license", m.LicenseURL.String())
}

func TestUpdateFromCopiesPlaceholderURLs(t *testing.T) {
	t.Setenv(metadata.MaintainerEnvVar, "chell")
	pkg := metadata.New("test-package")
	m := New()

	m.UpdateFrom(pkg)

	placeholder := metadata.DefaultURL().String()
	require.NotNil(t, m.ProjectURL)
	assert.Equal(t, placeholder, m.ProjectURL.String())
	require.NotNil(t, m.ProjectSourceURL)
	assert.Equal(t, placeholder, m.ProjectSourceURL.String())
	require.NotNil(t, m.PackageSourceURL)
	assert.Equal(t, placeholder, m.PackageSourceURL.String())
}

func TestUpdateFromSkipsUnresolvedOptionalURLs(t *testing.T) {
	t.Setenv(metadata.MaintainerEnvVar, "chell")
	pkg := metadata.New("test-package")
	m := New()

	m.UpdateFrom(pkg)

	assert.Nil(t, m.IconURL)
	assert.Nil(t, m.LicenseURL)
	assert.Nil(t, m.Summary, "an empty generic summary is not copied")
}

func TestUpdateFromRespectsLowercaseFlag(t *testing.T) {
	pkg := newGeneric(t)
	m := New()
	m.SetLowercaseID(false)

	m.UpdateFrom(pkg)

	assert.Equal(t, "Test-Package", m.ID())
	assert.Equal(t, []string{"test-package"}, m.Tags())
}

func TestUpdateFromIsIdempotent(t *testing.T) {
	pkg := newGeneric(t)
	m := New()
	m.AddTag("cli")

	m.UpdateFrom(pkg)
	tags := append([]string(nil), m.Tags()...)
	maintainers := append([]string(nil), m.Maintainers()...)

	m.UpdateFrom(pkg)

	assert.Equal(t, tags, m.Tags())
	assert.Equal(t, maintainers, m.Maintainers())
	assert.Equal(t, []string{"test-package", "cli"}, m.Tags(), "the identifier tag is inserted once, at the front")
}

func TestUpdateFromCloneDoesNotAliasGenericURLs(t *testing.T) {
	pkg := newGeneric(t)
	m := New()

	m.UpdateFrom(pkg)
	m.ProjectURL.Path = "/changed"

	assert.Equal(t, "/test-package", pkg.ProjectURL().Path)
}

func TestResetSameInvertsUpdateFrom(t *testing.T) {
	pkg := newGeneric(t)
	m := New()

	m.UpdateFrom(pkg)
	m.ResetSame(pkg)

	assert.Empty(t, m.ID())
	assert.Empty(t, m.Maintainers())
	assert.Nil(t, m.Summary)
	assert.Nil(t, m.ProjectURL)
	assert.Nil(t, m.ProjectSourceURL)
	assert.Nil(t, m.PackageSourceURL)
	assert.Nil(t, m.IconURL)
	assert.Nil(t, m.LicenseURL)
	assert.Empty(t, m.Tags())
}

func TestResetSameKeepsGenuineOverrides(t *testing.T) {
	pkg := newGeneric(t)
	m := WithID("custom-id", true)
	m.SetMaintainers([]string{"wheatley"})
	m.SetSummary("A different summary")
	m.UpdateFrom(pkg)

	m.ResetSame(pkg)

	assert.Equal(t, "custom-id", m.ID())
	assert.Equal(t, []string{"wheatley"}, m.Maintainers())
	require.NotNil(t, m.Summary)
	assert.Equal(t, "A different summary", *m.Summary)
}

func TestResetSameRemovesEveryIdentifierTag(t *testing.T) {
	pkg := newGeneric(t)
	m := New()
	m.SetTags([]string{"test-package", "cli", "test-package"})
	m.UpdateFrom(pkg)

	m.ResetSame(pkg)

	assert.Equal(t, []string{"cli"}, m.Tags())
}

func TestResetSameLeavesDistinctValues(t *testing.T) {
	pkg := newGeneric(t)
	m := New()
	m.UpdateFrom(pkg)
	require.NoError(t, pkg.SetProjectURL("https://example.org/moved"))
	pkg.SetSummary("An updated summary")

	m.ResetSame(pkg)

	require.NotNil(t, m.ProjectURL)
	assert.Equal(t, "https://example.org/test-package", m.ProjectURL.String())
	require.NotNil(t, m.Summary)
	assert.Equal(t, "Some test software", *m.Summary)
}

func TestResetSameClearsDerivedIdentifier(t *testing.T) {
	pkg := newGeneric(t)
	m := WithID("Test Package", true)

	m.ResetSame(pkg)

	assert.Empty(t, m.ID())
	assert.Empty(t, m.Tags())
}

func TestResetSameOnFreshRecordIsNoop(t *testing.T) {
	pkg := newGeneric(t)
	m := New()

	m.ResetSame(pkg)

	assert.Empty(t, m.ID())
	assert.Empty(t, m.Maintainers())
	assert.Empty(t, m.Tags())
}
