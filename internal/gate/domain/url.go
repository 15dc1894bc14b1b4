package domain

import "strings"

// NormalizedURL is the case-folded identity of a page location.
// Hostname carries no leading "www."; both fields are lower-case.
// Derived fresh from the page location on every evaluation, never persisted.
type NormalizedURL struct {
	Hostname string
	Pathname string
}

// Normalize canonicalizes a raw hostname/pathname pair. It never fails:
// any string input, including empty strings, yields a usable value.
func Normalize(hostname, pathname string) NormalizedURL {
	return NormalizedURL{
		Hostname: NormalizeHost(hostname),
		Pathname: strings.ToLower(pathname),
	}
}

// NormalizeHost lower-cases a hostname, trims surrounding whitespace and
// trailing dots, and strips a single leading "www." label. A "www" appearing
// mid-string is left alone.
func NormalizeHost(hostname string) string {
	h := strings.ToLower(strings.TrimSpace(hostname))
	for strings.HasSuffix(h, ".") {
		h = strings.TrimSuffix(h, ".")
	}
	h = strings.TrimPrefix(h, "www.")
	return h
}

// Key returns a stable cache key for the URL.
func (u NormalizedURL) Key() string {
	return u.Hostname + "|" + u.Pathname
}
