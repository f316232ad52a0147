// Package fetch - platform.go provides platform detection for profile pages.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known profile site.
type Platform string

const (
	// PlatformLinkedIn is the LinkedIn professional network
	PlatformLinkedIn Platform = "linkedin"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the profile site from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com") {
		return PlatformLinkedIn
	}

	return PlatformUnknown
}

// IsProfileURL reports whether the URL points at a member profile page.
func IsProfileURL(urlStr string) bool {
	if DetectPlatform(urlStr) != PlatformLinkedIn {
		return false
	}
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return strings.HasPrefix(parsed.Path, "/in/")
}

// SessionCookieName returns the name of the session cookie for a platform.
func SessionCookieName(platform Platform) string {
	switch platform {
	case PlatformLinkedIn:
		return "li_at"
	default:
		return ""
	}
}

// CookieDomain returns the cookie domain used when injecting a session into a browser.
func CookieDomain(platform Platform) string {
	switch platform {
	case PlatformLinkedIn:
		return ".linkedin.com"
	default:
		return ""
	}
}
