// Package rules validates package metadata against a set of named rules,
// each gated by a strictness level. Rules never mutate their input and never
// fail; they only produce diagnostics.
package rules

import (
	"fmt"
	"strings"

	"github.com/pkgsmith/pkgsmith/internal/metadata"
)

// Severity classifies a diagnostic.
type Severity int

const (
	Requirement Severity = iota
	Guideline
	Suggestion
	Note
)

// SeverityOrder is the order diagnostics are grouped in for display.
var SeverityOrder = []Severity{Requirement, Guideline, Suggestion, Note}

// String returns the string representation of Severity
func (s Severity) String() string {
	switch s {
	case Requirement:
		return "Requirement"
	case Guideline:
		return "Guideline"
	case Suggestion:
		return "Suggestion"
	case Note:
		return "Note"
	default:
		return "Unknown"
	}
}

// Strictness selects which rules run during validation. Core runs only the
// structural requirements needed for packaging to succeed; Community runs a
// superset including style and best-practice rules.
type Strictness int

const (
	Core Strictness = iota
	Community
)

// ParseStrictness parses a strictness level, case-insensitively.
func ParseStrictness(raw string) (Strictness, error) {
	switch strings.ToLower(raw) {
	case "core":
		return Core, nil
	case "community":
		return Community, nil
	default:
		return Core, fmt.Errorf("%s is not a valid rule set", raw)
	}
}

// String returns the string representation of Strictness
func (s Strictness) String() string {
	switch s {
	case Community:
		return "community"
	default:
		return "core"
	}
}

// Message is a single validation finding.
type Message struct {
	Severity Severity
	// PackageManager labels manager-specific findings; empty means
	// manager-agnostic.
	PackageManager string
	Text           string
}

// Rule is a named validation unit. Check returns nil when the record passes.
type Rule interface {
	Name() string
	Applies(level Strictness) bool
	Check(pkg *metadata.PackageMetadata) *Message
}

// Registered rules, in the order their diagnostics are reported:
// manager-agnostic rules first, then each manager's rules.
var (
	metadataRules = []Rule{
		idNotEmpty{},
		maintainersNotEmpty{},
		projectURLNotLocalPath{},
		licenseExpressionSPDX{},
	}

	chocolateyRules = []Rule{
		chocoIDLowercase{},
	}
)

// Validate runs every registered rule that applies at the given strictness
// level and returns the collected diagnostics. An empty result means the
// record passed validation.
func Validate(pkg *metadata.PackageMetadata, level Strictness) []Message {
	var msgs []Message
	for _, set := range [][]Rule{metadataRules, chocolateyRules} {
		for _, rule := range set {
			if !rule.Applies(level) {
				continue
			}
			if msg := rule.Check(pkg); msg != nil {
				msgs = append(msgs, *msg)
			}
		}
	}
	return msgs
}

// BySeverity groups diagnostics by severity, preserving their order within
// each group. Iterate with SeverityOrder for display.
func BySeverity(msgs []Message) map[Severity][]Message {
	grouped := make(map[Severity][]Message)
	for _, msg := range msgs {
		grouped[msg.Severity] = append(grouped[msg.Severity], msg)
	}
	return grouped
}

// ContainsSeverity reports whether any diagnostic carries the given
// severity.
func ContainsSeverity(msgs []Message, severity Severity) bool {
	for _, msg := range msgs {
		if msg.Severity == severity {
			return true
		}
	}
	return false
}
