package chocolatey

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkgsmith/pkgsmith/internal/metadata"
	"github.com/pkgsmith/pkgsmith/internal/models"
)

// UpdaterType defines what kind of package the updater builds. UpdaterNone
// means no template is used and a custom updater script is required.
type UpdaterType int

const (
	UpdaterNone UpdaterType = iota
	UpdaterInstaller
	UpdaterArchive
)

// ParseUpdaterType parses an updater type name, case-insensitively.
func ParseUpdaterType(raw string) (UpdaterType, error) {
	switch strings.ToLower(raw) {
	case "", "none":
		return UpdaterNone, nil
	case "installer":
		return UpdaterInstaller, nil
	case "archive":
		return UpdaterArchive, nil
	default:
		return UpdaterNone, fmt.Errorf("%s is not a valid updater type", raw)
	}
}

// String returns the string representation of UpdaterType
func (t UpdaterType) String() string {
	switch t {
	case UpdaterInstaller:
		return "installer"
	case UpdaterArchive:
		return "archive"
	default:
		return "none"
	}
}

// ParseURL points the updater at the web page binary files are discovered
// on. It is either nothing, a plain url, or a url with a regex selecting the
// actual download page. The zero value means no parse url.
type ParseURL struct {
	location *url.URL
	regex    string
}

// NewParseURL creates a parse url without a page regex. A models.PkgError of
// type ErrURLParse is returned when raw is not a valid absolute url.
func NewParseURL(raw string) (ParseURL, error) {
	u, err := metadata.ParseURL(raw)
	if err != nil {
		return ParseURL{}, &models.PkgError{Type: models.ErrURLParse, Err: err}
	}
	return ParseURL{location: u}, nil
}

// NewParseURLWithRegex creates a parse url with a regex used to get from the
// parsed page to the actual download page.
func NewParseURLWithRegex(raw, regex string) (ParseURL, error) {
	p, err := NewParseURL(raw)
	if err != nil {
		return ParseURL{}, err
	}
	p.regex = regex
	return p, nil
}

// IsNone reports whether no parse url is set.
func (p ParseURL) IsNone() bool {
	return p.location == nil
}

// URL returns the url to parse, or nil when unset.
func (p ParseURL) URL() *url.URL {
	return p.location
}

// Regex returns the download page regex, and whether one is set.
func (p ParseURL) Regex() (string, bool) {
	return p.regex, p.regex != ""
}

// Updater holds the data needed to discover new releases of the packaged
// software: where binary links are found and how they are matched.
type Updater struct {
	// Embedded reports whether binaries are carried inside the package
	// instead of downloaded at install time. Ignored when Type is
	// UpdaterNone.
	Embedded bool

	// Type of package the updater builds.
	Type UpdaterType

	// ParseURL is the page binary links are discovered on.
	ParseURL ParseURL

	regexes map[string]string
}

// NewUpdater creates an empty updater record.
func NewUpdater() *Updater {
	return &Updater{regexes: make(map[string]string)}
}

// Regexes returns the link regexes keyed by name. The names arch32 and
// arch64 select the binary files and at least one of them is required when
// Type is not UpdaterNone; any other name stores all matching links.
func (u *Updater) Regexes() map[string]string {
	return u.regexes
}

// AddRegex adds a link regex with the given name.
func (u *Updater) AddRegex(name, value string) {
	if u.regexes == nil {
		u.regexes = make(map[string]string)
	}
	u.regexes[name] = value
}

// SetRegexes clears and replaces the link regexes.
func (u *Updater) SetRegexes(values map[string]string) {
	u.regexes = make(map[string]string, len(values))
	for name, value := range values {
		u.AddRegex(name, value)
	}
}
