package chocolatey

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkgsmith/pkgsmith/internal/metadata"
	chocometa "github.com/pkgsmith/pkgsmith/internal/metadata/chocolatey"
	"github.com/pkgsmith/pkgsmith/internal/version"
)

func testMetadata(t *testing.T) *chocometa.Metadata {
	t.Helper()

	m := chocometa.WithAuthors("codecat")
	m.SetID("test-package")
	m.SetMaintainers([]string{"chell"})
	m.SetTags([]string{"test-package", "cli"})
	m.SetDescriptionString("Some test software.")

	v, err := version.Parse("5.2.1-alpha.66+99")
	if err != nil {
		t.Fatalf("Failed to parse version: %v", err)
	}
	m.Version = v
	return m
}

func TestGeneratorName(t *testing.T) {
	gen := NewGenerator(chocometa.New())

	if gen.Name() != "choco" {
		t.Errorf("Expected name 'choco', got '%s'", gen.Name())
	}
}

func TestGenerateCreatesNuspec(t *testing.T) {
	workDir := t.TempDir()
	gen := NewGenerator(testMetadata(t))

	if err := gen.Generate(context.Background(), workDir); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	nuspecPath := filepath.Join(workDir, "test-package", "test-package.nuspec")
	data, err := os.ReadFile(nuspecPath)
	if err != nil {
		t.Fatalf("Failed to read nuspec: %v", err)
	}
	content := string(data)

	checks := []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<package xmlns="http://schemas.microsoft.com/packaging/2015/06/nuspec.xsd">`,
		"<id>test-package</id>",
		"<version>5.2.1-alpha0066</version>",
		"<owners>chell</owners>",
		"<authors>codecat</authors>",
		"<tags>test-package cli</tags>",
		"<description><![CDATA[Some test software.]]></description>",
		`<file src="tools/**" target="tools"></file>`,
		"“Ω”",
	}
	for _, check := range checks {
		if !strings.Contains(content, check) {
			t.Errorf("Expected nuspec to contain %q", check)
		}
	}
}

func TestGenerateEmptiesExistingWorkDir(t *testing.T) {
	workDir := t.TempDir()
	pkgDir := filepath.Join(workDir, "test-package")
	if err := os.MkdirAll(pkgDir, 0755); err != nil {
		t.Fatalf("Failed to create package dir: %v", err)
	}
	stale := filepath.Join(pkgDir, "stale.nuspec")
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		t.Fatalf("Failed to write stale file: %v", err)
	}

	gen := NewGenerator(testMetadata(t))
	if err := gen.Generate(context.Background(), workDir); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("Expected stale file to be removed")
	}
	if _, err := os.Stat(filepath.Join(pkgDir, "test-package.nuspec")); err != nil {
		t.Errorf("Expected nuspec to exist: %v", err)
	}
}

func TestGenerateEmptyIDFails(t *testing.T) {
	gen := NewGenerator(chocometa.New())

	err := gen.Generate(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("Expected an error for an empty identifier")
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := NewGenerator(testMetadata(t))
	if err := gen.Generate(ctx, t.TempDir()); err == nil {
		t.Fatal("Expected an error for a cancelled context")
	}
}

func TestRenderNuspecOmitsUnsetElements(t *testing.T) {
	data, err := renderNuspec(testMetadata(t))
	if err != nil {
		t.Fatalf("renderNuspec failed: %v", err)
	}
	content := string(data)

	absent := []string{
		"<title>",
		"<projectUrl>",
		"<iconUrl>",
		"<licenseUrl>",
		"<requireLicenseAcceptance>",
		"<summary>",
		"<releaseNotes>",
		"<dependencies>",
		"<docsUrl>",
		"<bugTrackerUrl>",
		"<mailingListUrl>",
	}
	for _, check := range absent {
		if strings.Contains(content, check) {
			t.Errorf("Expected nuspec to not contain %q", check)
		}
	}
}

func TestRenderNuspecLicenseBlock(t *testing.T) {
	pkg := metadata.New("test-package")
	pkg.SetLicense(metadata.LicenseExpression("MIT"))

	m := testMetadata(t)
	m.UpdateFrom(pkg)

	data, err := renderNuspec(m)
	if err != nil {
		t.Fatalf("renderNuspec failed: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "<licenseUrl>https://opensource.org/licenses/MIT</licenseUrl>") {
		t.Error("Expected a licenseUrl element")
	}
	if !strings.Contains(content, "<requireLicenseAcceptance>true</requireLicenseAcceptance>") {
		t.Error("Expected the acceptance flag alongside the license url")
	}
}

func TestRenderNuspecDefaultFileNotDuplicated(t *testing.T) {
	m := testMetadata(t)
	m.AddFile(`tools\**`, "tools")
	m.AddFile("bin/*.exe", "bin")

	data, err := renderNuspec(m)
	if err != nil {
		t.Fatalf("renderNuspec failed: %v", err)
	}
	content := string(data)

	if got := strings.Count(content, `src="tools/**"`); got != 1 {
		t.Errorf("Expected exactly one default file mapping, got %d", got)
	}
	if !strings.Contains(content, `<file src="bin/*.exe" target="bin"></file>`) {
		t.Error("Expected the explicit file mapping")
	}
}

func TestRenderNuspecSortsDependencies(t *testing.T) {
	m := testMetadata(t)
	if err := m.SetDependencies(map[string]string{
		"zlib":                      "1.3.0",
		"chocolatey-core.extension": "",
	}); err != nil {
		t.Fatalf("SetDependencies failed: %v", err)
	}

	data, err := renderNuspec(m)
	if err != nil {
		t.Fatalf("renderNuspec failed: %v", err)
	}
	content := string(data)

	first := strings.Index(content, `<dependency id="chocolatey-core.extension"></dependency>`)
	second := strings.Index(content, `<dependency id="zlib" version="1.3.0"></dependency>`)
	if first == -1 {
		t.Fatal("Expected a version-less dependency element")
	}
	if second == -1 {
		t.Fatal("Expected a versioned dependency element")
	}
	if first > second {
		t.Error("Expected dependencies sorted by identifier")
	}
}

func TestRenderNuspecIsDeterministic(t *testing.T) {
	m := testMetadata(t)
	m.AddFile("bin/*.exe", "bin")
	m.AddFile("legal/**", "legal")
	if err := m.SetDependencies(map[string]string{"a": "1.0.0", "b": "2.0.0", "c": ""}); err != nil {
		t.Fatalf("SetDependencies failed: %v", err)
	}

	first, err := renderNuspec(m)
	if err != nil {
		t.Fatalf("renderNuspec failed: %v", err)
	}
	second, err := renderNuspec(m)
	if err != nil {
		t.Fatalf("renderNuspec failed: %v", err)
	}

	if string(first) != string(second) {
		t.Error("Expected identical output for identical metadata")
	}
}
