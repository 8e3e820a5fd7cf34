package metadata

import (
	"net/url"
	"os"
	"os/user"
)

// MaintainerEnvVar overrides the default maintainer when set. When unset the
// operating system user is used instead.
const MaintainerEnvVar = "PKGSMITH_MAINTAINER"

// placeholderURL marks a url field that must be changed before release.
const placeholderURL = "https://example.com/MUST_BE_CHANGED"

// DefaultURL returns the placeholder url used when a url is required but not
// yet configured.
func DefaultURL() *url.URL {
	u, err := url.Parse(placeholderURL)
	if err != nil {
		panic(err)
	}
	return u
}

// DefaultMaintainers returns the default maintainer list: the value of
// MaintainerEnvVar when set, otherwise the current operating system user.
func DefaultMaintainers() []string {
	if m, ok := os.LookupEnv(MaintainerEnvVar); ok && m != "" {
		return []string{m}
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return []string{u.Username}
	}
	return []string{os.Getenv("USER")}
}

// ParseURL parses raw as an absolute url.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, &url.Error{Op: "parse", URL: raw, Err: errNotAbsolute}
	}
	return u, nil
}
