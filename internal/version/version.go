// Package version wraps semantic version handling and the version string
// formats expected by individual package managers.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/pkgsmith/pkgsmith/internal/models"
)

// Zero returns the version equivalent to 0.0.0, used where an unset version
// is not allowed.
func Zero() *semver.Version {
	return semver.New(0, 0, 0, "", "")
}

// Parse parses a version string. A models.PkgError of type ErrVersionParse
// is returned when the string is not a valid semantic version.
func Parse(raw string) (*semver.Version, error) {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, &models.PkgError{Type: models.ErrVersionParse, Err: fmt.Errorf("%q: %w", raw, err)}
	}
	return v, nil
}

// ChocoString renders v in the format accepted by Chocolatey: prerelease
// separators are dropped, numeric prerelease segments are padded to four
// digits, and build metadata is not carried over. For example
// 5.2.1-alpha.66+99 renders as 5.2.1-alpha0066. A nil version renders as the
// zero version.
func ChocoString(v *semver.Version) string {
	if v == nil {
		v = Zero()
	}
	base := fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
	pre := v.Prerelease()
	if pre == "" {
		return base
	}

	var b strings.Builder
	for _, segment := range strings.Split(pre, ".") {
		if n, err := strconv.ParseUint(segment, 10, 64); err == nil {
			fmt.Fprintf(&b, "%04d", n)
		} else {
			b.WriteString(segment)
		}
	}
	return base + "-" + b.String()
}
