package domain

import (
	"regexp"
	"strings"
)

// SiteProfile describes a known multi-tenant site whose paths carry
// independent blocking targets: subreddits, channels, profiles. Profiles are
// static data; adding a site is a table entry, not new branching logic.
type SiteProfile struct {
	// Domain is the registrable domain the profile applies to.
	Domain string
	// PathExtractors are tried in order against the normalized pathname.
	// Each pattern must capture the identity segments; the first match wins.
	PathExtractors []*regexp.Regexp
	// ProtectedSegments are first segments that look like identities but are
	// reserved app routes (e.g. "settings"). A capture whose first segment is
	// protected is rejected and extraction falls through to the next pattern.
	ProtectedSegments []string
}

func (p SiteProfile) isProtected(capture string) bool {
	first := capture
	if i := strings.IndexByte(first, '/'); i >= 0 {
		first = first[:i]
	}
	for _, s := range p.ProtectedSegments {
		if first == s {
			return true
		}
	}
	return false
}

// extract applies the profile's extractors to a pathname and returns the
// canonical "<domain>/<identity>" target on success.
func (p SiteProfile) extract(pathname string) (string, bool) {
	for _, re := range p.PathExtractors {
		m := re.FindStringSubmatch(pathname)
		if len(m) < 2 || m[1] == "" {
			continue
		}
		capture := strings.Join(m[1:], "/")
		if p.isProtected(capture) {
			continue
		}
		return p.Domain + "/" + capture, true
	}
	return "", false
}

// DefaultProfiles is the compiled-in table of multi-tenant sites.
func DefaultProfiles() []SiteProfile {
	return []SiteProfile{
		{
			Domain: "reddit.com",
			PathExtractors: []*regexp.Regexp{
				regexp.MustCompile(`^/(r/[^/]+)`),
				regexp.MustCompile(`^/(user/[^/]+)`),
			},
		},
		{
			Domain: "youtube.com",
			PathExtractors: []*regexp.Regexp{
				regexp.MustCompile(`^/(@[^/]+)`),
				regexp.MustCompile(`^/(c/[^/]+)`),
				regexp.MustCompile(`^/(channel/[^/]+)`),
				regexp.MustCompile(`^/(user/[^/]+)`),
			},
		},
		{
			Domain: "twitter.com",
			PathExtractors: []*regexp.Regexp{
				regexp.MustCompile(`^/([^/]+)`),
			},
			ProtectedSegments: []string{
				"home", "explore", "notifications", "messages", "search",
				"settings", "compose", "login", "signup", "i",
			},
		},
		{
			Domain: "x.com",
			PathExtractors: []*regexp.Regexp{
				regexp.MustCompile(`^/([^/]+)`),
			},
			ProtectedSegments: []string{
				"home", "explore", "notifications", "messages", "search",
				"settings", "compose", "login", "signup", "i",
			},
		},
		{
			Domain: "instagram.com",
			PathExtractors: []*regexp.Regexp{
				regexp.MustCompile(`^/([^/]+)`),
			},
			ProtectedSegments: []string{
				"explore", "reels", "direct", "stories", "accounts", "p",
			},
		},
		{
			Domain: "tiktok.com",
			PathExtractors: []*regexp.Regexp{
				regexp.MustCompile(`^/(@[^/]+)`),
			},
		},
		{
			Domain: "twitch.tv",
			PathExtractors: []*regexp.Regexp{
				regexp.MustCompile(`^/([^/]+)`),
			},
			ProtectedSegments: []string{
				"directory", "videos", "settings", "subscriptions", "wallet", "search",
			},
		},
	}
}
