package booking

import (
	"net/url"
	"strings"
)

// NormalizeRedirectBase reduces a caller-supplied redirect target to a clean
// scheme://host/path base. Query strings, fragments and trailing slashes are
// dropped so the session factory can append its own ride path and flags
// without colliding with whatever the caller's location bar carried.
// Relative URLs are rejected: a redirect base needs a scheme and a host.
func NormalizeRedirectBase(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidRedirectURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidRedirectURL
	}
	if u.Host == "" {
		return "", ErrInvalidRedirectURL
	}

	path := strings.TrimSuffix(u.EscapedPath(), "/")
	return u.Scheme + "://" + u.Host + path, nil
}
