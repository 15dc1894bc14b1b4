package domain

import (
	"fmt"
	"strings"
)

// Rule is a single block or whitelist entry. Two shapes are supported:
//
//	domain rule: "example.com"         - the domain and its subdomains
//	path rule:   "example.com/segment" - a domain plus a path prefix
//
// Rule strings never contain a scheme, port, query, or fragment; they are
// cleaned before storage by CleanRuleString.
type Rule struct {
	Raw    string // cleaned rule string as persisted
	Domain string // domain part, lower-case, no leading "www."
	Path   string // "/"-prefixed lower-case path part; empty for domain rules
}

// NewRule cleans a raw rule string and constructs a Rule.
func NewRule(raw string) (Rule, error) {
	cleaned := CleanRuleString(raw)
	if cleaned == "" {
		return Rule{}, fmt.Errorf("rule must not be empty: %q", raw)
	}
	r := Rule{Raw: cleaned}
	if i := strings.IndexByte(cleaned, '/'); i >= 0 {
		r.Domain = cleaned[:i]
		r.Path = cleaned[i:]
	} else {
		r.Domain = cleaned
	}
	if r.Domain == "" {
		return Rule{}, fmt.Errorf("rule domain must not be empty: %q", raw)
	}
	return r, nil
}

// IsPathRule reports whether the rule carries a path prefix.
func (r Rule) IsPathRule() bool { return r.Path != "" }

// Matches reports whether the rule matches the given normalized URL.
//
// Path rules require the exact host plus a path prefix. The prefix test is
// byte-wise, not segment-aware: rule "a.com/ab" matches pathname "/abc".
// That quirk is preserved for compatibility with existing stored rules.
//
// Domain rules match in this precedence order (first hit wins; the order
// only matters for diagnostics, the boolean outcome is the same):
//  1. exact hostname match
//  2. subdomain match (hostname ends with "." + domain)
//  3. substring match (hostname contains the domain anywhere)
func (r Rule) Matches(u NormalizedURL) bool {
	d := NormalizeHost(r.Domain)
	if d == "" || u.Hostname == "" {
		return false
	}
	if r.IsPathRule() {
		return u.Hostname == d && strings.HasPrefix(u.Pathname, r.Path)
	}
	switch {
	case u.Hostname == d:
		return true
	case strings.HasSuffix(u.Hostname, "."+d):
		return true
	case strings.Contains(u.Hostname, d):
		return true
	}
	return false
}

// CleanRuleString reduces arbitrary user input to the persisted rule shape:
// lower-case, no scheme, no port, no query or fragment, no leading "www.",
// no trailing slash. Returns "" when nothing usable remains.
func CleanRuleString(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	host, path := s, ""
	if i := strings.IndexByte(s, '/'); i >= 0 {
		host, path = s[:i], s[i:]
	}
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	host = NormalizeHost(host)
	if host == "" {
		return ""
	}
	path = strings.TrimRight(path, "/")
	return host + path
}
