package rules

import (
	"unicode"

	"github.com/pkgsmith/pkgsmith/internal/metadata"
	"github.com/pkgsmith/pkgsmith/internal/metadata/chocolatey"
)

// chocoIDLowercase notes identifiers with upper case characters; new
// packages pushed to the Chocolatey community repository should be all
// lower case.
type chocoIDLowercase struct{}

func (chocoIDLowercase) Name() string { return "choco-id-is-lowercase" }

func (chocoIDLowercase) Applies(level Strictness) bool { return level == Community }

func (chocoIDLowercase) Check(pkg *metadata.PackageMetadata) *Message {
	for _, ch := range pkg.ID() {
		if unicode.IsUpper(ch) {
			return &Message{
				Severity:       Note,
				PackageManager: chocolatey.Name,
				Text: "The identifier contains upper case characters. If this is a new " +
					"package, it should only contain characters in lower case!",
			}
		}
	}
	return nil
}
