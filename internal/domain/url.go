package domain

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a raw URL string, best effort.
// An already-absolute http(s) URL is returned unchanged. Anything else
// is retried with an https:// prefix. If that still does not parse, the
// original string is returned so the caller is never blocked on a
// malformed-but-recoverable URL.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if isAbsoluteHTTP(raw) {
		return raw
	}
	if candidate := "https://" + raw; isAbsoluteHTTP(candidate) {
		return candidate
	}
	return raw
}

// ValidURL is the strict companion to NormalizeURL, used by the RC line
// codec: the input must parse as an absolute http(s) URL, optionally
// after https:// prefixing. Callers skip (not fail) entries that do not
// pass.
func ValidURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if isAbsoluteHTTP(raw) {
		return true
	}
	return isAbsoluteHTTP("https://" + raw)
}

func isAbsoluteHTTP(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
