package generator

import "context"

// Generator interface for package manifest generators
type Generator interface {
	// Name returns the package manager this generator targets
	Name() string

	// Generate writes the manifest files for the package under workDir
	Generate(ctx context.Context, workDir string) error
}
