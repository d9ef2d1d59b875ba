package redisclicks

import "strings"

const (
	// KeyPrefixCount is the prefix for per-link click counters.
	KeyPrefixCount = "startpage:clicks:"
	// KeyPrefixLast is the prefix for per-link last-click timestamps.
	KeyPrefixLast = "startpage:lastclick:"
)

// Keys are derived from the lower-cased url rather than the link id:
// ids are regenerated on every file reload, urls are stable.

// CountKey returns the Redis key holding a link's click counter.
func CountKey(url string) string {
	return KeyPrefixCount + strings.ToLower(url)
}

// LastClickedKey returns the Redis key holding a link's last click
// time.
func LastClickedKey(url string) string {
	return KeyPrefixLast + strings.ToLower(url)
}
