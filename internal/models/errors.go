package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrURLParse ErrorType = iota
	ErrVersionParse
	ErrMetadataLoad
	ErrManifestGen
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrURLParse:
		return "URLParse"
	case ErrVersionParse:
		return "VersionParse"
	case ErrMetadataLoad:
		return "MetadataLoad"
	case ErrManifestGen:
		return "ManifestGen"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// PkgError represents an error while handling package metadata
type PkgError struct {
	Type    ErrorType
	Package string
	Err     error
}

// Error implements the error interface
func (e *PkgError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Package, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *PkgError) Unwrap() error {
	return e.Err
}
