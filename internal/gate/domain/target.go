package domain

import (
	"strings"

	"pagegate/internal/gate/common/urlutil"
)

// meaningfulSubdomains are leading labels that name a distinct service, so a
// subdomain keeps its own identity instead of degrading to the apex domain.
var meaningfulSubdomains = map[string]struct{}{
	"mail":      {},
	"drive":     {},
	"docs":      {},
	"calendar":  {},
	"maps":      {},
	"news":      {},
	"music":     {},
	"photos":    {},
	"translate": {},
	"meet":      {},
	"chat":      {},
	"play":      {},
	"groups":    {},
	"keep":      {},
}

// TargetExtractor maps a normalized URL to the canonical site identity used
// for rule matching. Lookup is three-tiered: profile path extraction, then
// meaningful-subdomain identity, then the registrable domain.
type TargetExtractor struct {
	profiles map[string]SiteProfile // keyed by profile domain
}

// NewTargetExtractor builds an extractor over the given profile table.
func NewTargetExtractor(profiles []SiteProfile) *TargetExtractor {
	m := make(map[string]SiteProfile, len(profiles))
	for _, p := range profiles {
		m[p.Domain] = p
	}
	return &TargetExtractor{profiles: m}
}

// Extract returns the canonical target for a URL. It never fails: a hostname
// the public suffix list cannot resolve degrades to the raw hostname with no
// path extraction.
func (e *TargetExtractor) Extract(u NormalizedURL) string {
	if u.Hostname == "" {
		return ""
	}
	apex := urlutil.ApexDomain(u.Hostname)
	if p, ok := e.profiles[apex]; ok {
		if target, ok := p.extract(u.Pathname); ok {
			return target
		}
	}
	if labels := strings.Split(u.Hostname, "."); len(labels) > 2 {
		if _, ok := meaningfulSubdomains[labels[0]]; ok {
			return u.Hostname
		}
	}
	return apex
}
