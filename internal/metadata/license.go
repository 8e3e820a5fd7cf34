package metadata

import (
	"net/url"

	"github.com/pkgsmith/pkgsmith/internal/models"
)

// License describes the license of the packaged software. It is either
// nothing, an SPDX-like expression, an explicit url to the license text, or
// both. The zero value means no license.
type License struct {
	expression string
	location   *url.URL
}

// licenseURLs maps recognized license expressions to a public location of the
// license text. Expressions missing from this table resolve to no url.
var licenseURLs = map[string]string{
	"Apache-2.0":    "https://www.apache.org/licenses/LICENSE-2.0",
	"BSD-2-Clause":  "https://opensource.org/licenses/BSD-2-Clause",
	"BSD-3-Clause":  "https://opensource.org/licenses/BSD-3-Clause",
	"GPL-2.0-only":  "https://www.gnu.org/licenses/old-licenses/gpl-2.0.html",
	"GPL-3.0-only":  "https://www.gnu.org/licenses/gpl-3.0.html",
	"ISC":           "https://opensource.org/licenses/ISC",
	"LGPL-3.0-only": "https://www.gnu.org/licenses/lgpl-3.0.html",
	"MIT":           "https://opensource.org/licenses/MIT",
	"MPL-2.0":       "https://www.mozilla.org/en-US/MPL/2.0/",
	"Unlicense":     "https://unlicense.org/",
}

// LicenseExpression creates a license holding only an SPDX-like expression.
func LicenseExpression(expression string) License {
	return License{expression: expression}
}

// LicenseURL creates a license holding only the url to the license text.
// A models.PkgError of type ErrURLParse is returned when raw is not a valid
// absolute url.
func LicenseURL(raw string) (License, error) {
	u, err := ParseURL(raw)
	if err != nil {
		return License{}, &models.PkgError{Type: models.ErrURLParse, Err: err}
	}
	return License{location: u}, nil
}

// LicenseExpressionAndURL creates a license holding both an expression and
// the url to the license text. Setting both is recommended when creating
// packages for multiple package managers.
func LicenseExpressionAndURL(expression, raw string) (License, error) {
	l, err := LicenseURL(raw)
	if err != nil {
		return License{}, err
	}
	l.expression = expression
	return l, nil
}

// IsNone reports whether no license information is set.
func (l License) IsNone() bool {
	return l.expression == "" && l.location == nil
}

// Expression returns the license expression, or an empty string when only a
// url (or nothing) is set.
func (l License) Expression() string {
	return l.expression
}

// Location returns the explicitly set license url, or nil.
func (l License) Location() *url.URL {
	return l.location
}

// URL resolves the license to a public url. An explicitly set location always
// wins; otherwise a recognized license expression is looked up in the
// expression table. Unknown or invalid expressions resolve to nil.
func (l License) URL() *url.URL {
	if l.location != nil {
		return l.location
	}
	if l.expression == "" {
		return nil
	}
	raw, ok := licenseURLs[l.expression]
	if !ok {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	return u
}
