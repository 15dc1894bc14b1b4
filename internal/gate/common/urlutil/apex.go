package urlutil

import "golang.org/x/net/publicsuffix"

// ApexDomain returns the registrable (eTLD+1) domain for a hostname.
// Falls back to the input when the public suffix list cannot resolve it,
// which also covers synthetic test domains.
func ApexDomain(hostname string) string {
	apex, err := publicsuffix.EffectiveTLDPlusOne(hostname)
	if err != nil {
		return hostname
	}
	return apex
}
