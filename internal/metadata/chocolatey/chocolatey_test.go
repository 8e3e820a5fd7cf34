package chocolatey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgsmith/pkgsmith/internal/metadata"
)

func TestNewDefaults(t *testing.T) {
	m := New()

	assert.True(t, m.LowercaseID())
	assert.True(t, m.RequireLicenseAcceptance)
	require.NotNil(t, m.Version)
	assert.Equal(t, "0.0.0", m.Version.String())
	assert.Empty(t, m.ID())
	assert.Empty(t, m.Maintainers())
	assert.Empty(t, m.Authors())
	assert.Empty(t, m.Tags())
	assert.Empty(t, m.Dependencies())
	assert.Empty(t, m.Files())
	assert.True(t, m.Description.IsNone())
}

func TestWithID(t *testing.T) {
	m := WithID("Some Awesome Software", true)

	assert.Equal(t, "some-awesome-software", m.ID())
	assert.Equal(t, []string{"some-awesome-software"}, m.Tags())
}

func TestWithIDKeepsCase(t *testing.T) {
	m := WithID("Some Awesome Software", false)

	assert.Equal(t, "Some-Awesome-Software", m.ID())
	assert.Equal(t, []string{"some-awesome-software"}, m.Tags(), "the seeded tag is always lower case")
}

func TestWithAuthors(t *testing.T) {
	m := WithAuthors("codecat", "wormie")

	assert.Equal(t, []string{"codecat", "wormie"}, m.Authors())
}

func TestWithAuthorsPanicsWhenEmpty(t *testing.T) {
	assert.Panics(t, func() {
		WithAuthors()
	})
}

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		lowercase bool
		expected  string
	}{
		{"spaces become dashes", "test package", false, "test-package"},
		{"lowercased", "Test Package", true, "test-package"},
		{"case kept", "Test Package", false, "Test-Package"},
		{"already canonical", "test-package", true, "test-package"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateID(tt.id, tt.lowercase))
		})
	}
}

func TestAddDependency(t *testing.T) {
	m := New()

	require.NoError(t, m.AddDependency("chocolatey-core.extension", "1.3.3"))
	require.NoError(t, m.AddDependency("any-version", ""))

	deps := m.Dependencies()
	require.Len(t, deps, 2)
	require.NotNil(t, deps["chocolatey-core.extension"])
	assert.Equal(t, "1.3.3", deps["chocolatey-core.extension"].String())
	assert.Nil(t, deps["any-version"], "an empty spec means any version")
}

func TestAddDependencyInvalidVersion(t *testing.T) {
	m := New()

	err := m.AddDependency("broken", "not.a.version")

	assert.Error(t, err)
	assert.Empty(t, m.Dependencies())
}

func TestZeroValueCollections(t *testing.T) {
	var m Metadata

	require.NoError(t, m.AddDependency("chocolatey-core.extension", "1.3.3"))
	m.AddFile("bin/*.exe", "bin")

	require.Len(t, m.Dependencies(), 1)
	assert.Equal(t, map[string]string{"bin/*.exe": "bin"}, m.Files())
}

func TestSetDependenciesReplaces(t *testing.T) {
	m := New()
	require.NoError(t, m.AddDependency("old", "1.0.0"))

	require.NoError(t, m.SetDependencies(map[string]string{"new": "2.0.0"}))

	deps := m.Dependencies()
	require.Len(t, deps, 1)
	assert.Contains(t, deps, "new")
}

func TestFiles(t *testing.T) {
	m := New()

	m.AddFile("bin/*.exe", "bin")
	m.SetFiles(map[string]string{"docs/**": "docs"})

	files := m.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "docs", files["docs/**"])
}

func TestTags(t *testing.T) {
	m := New()

	m.AddTag("cli")
	m.AddTag("tools")
	assert.Equal(t, []string{"cli", "tools"}, m.Tags())

	m.SetTags([]string{"editor"})
	assert.Equal(t, []string{"editor"}, m.Tags())
}

func TestPointerSetters(t *testing.T) {
	m := New()

	m.SetTitle("Test Package")
	m.SetCopyright("2026 codecat")
	m.SetReleaseNotes("https://example.org/notes")
	m.SetSummary("Some software")
	m.SetDescriptionString("A longer text.")

	require.NotNil(t, m.Title)
	assert.Equal(t, "Test Package", *m.Title)
	require.NotNil(t, m.Copyright)
	assert.Equal(t, "2026 codecat", *m.Copyright)
	require.NotNil(t, m.ReleaseNotes)
	require.NotNil(t, m.Summary)
	text, ok := m.Description.Text()
	assert.True(t, ok)
	assert.Equal(t, "A longer text.", text)
}

func TestSetDescriptionLocation(t *testing.T) {
	m := New()

	m.SetDescription(metadata.DescriptionLocation("README.md", 1, 0))

	path, skipStart, skipEnd, ok := m.Description.Location()
	require.True(t, ok)
	assert.Equal(t, "README.md", path)
	assert.Equal(t, uint16(1), skipStart)
	assert.Equal(t, uint16(0), skipEnd)
}
