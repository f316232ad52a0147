package extract

import (
	"net/url"
	"strings"

	"github.com/jonathan/profile-agent/internal/types"
)

// DefaultHostDomain is the profile site the name check applies to.
const DefaultHostDomain = "linkedin.com"

// RequireName is the caller-side usability check. It fails only when no name
// fragment was found and pageURL belongs to hostDomain; off-host pages (fixtures,
// previews) pass so they can still be inspected.
func RequireName(profile *types.CandidateProfile, pageURL, hostDomain string) error {
	if profile != nil && profile.HasName() {
		return nil
	}
	if hostDomain == "" {
		hostDomain = DefaultHostDomain
	}

	host := hostOf(pageURL)
	if !OnHost(host, hostDomain) {
		return nil
	}
	return &NameNotFoundError{URL: pageURL, Host: host}
}

// OnHost reports whether host is hostDomain or one of its subdomains.
func OnHost(host, hostDomain string) bool {
	host = strings.ToLower(host)
	hostDomain = strings.ToLower(strings.TrimPrefix(hostDomain, "."))
	if host == "" || hostDomain == "" {
		return false
	}
	return host == hostDomain || strings.HasSuffix(host, "."+hostDomain)
}

func hostOf(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
