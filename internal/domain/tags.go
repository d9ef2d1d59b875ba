package domain

import "strings"

// TagSeparator joins folder ancestry into hierarchical tags
// ("Dev > Frontend"). It is deliberately not the RC field delimiter.
const TagSeparator = " > "

// UnclassifiedTag is the sentinel tag given to links whose source
// supplied no usable folder path.
const UnclassifiedTag = "미분류"

// specialContainers lists well-known browser container folders
// (toolbar/other/mobile and their Korean equivalents). They are never
// emitted as tags and a leading one is stripped from hierarchical
// paths. Lookup is case-insensitive.
var specialContainers = map[string]struct{}{
	"bookmarks bar":     {},
	"bookmark bar":      {},
	"bookmarks toolbar": {},
	"bookmarks menu":    {},
	"other bookmarks":   {},
	"mobile bookmarks":  {},
	"북마크바":              {},
	"북마크 바":             {},
	"북마크 모음":            {},
	"기타 북마크":            {},
	"모바일 북마크":           {},
}

// IsSpecialFolder reports whether name is a special container folder.
func IsSpecialFolder(name string) bool {
	_, ok := specialContainers[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// BuildTags derives the tag set for a folder path (root first).
// Each non-special folder name becomes a flat tag; every position past
// the root additionally yields a hierarchical tag covering its ancestry,
// with a leading special container stripped. Duplicates are dropped
// preserving first-seen order. An empty result is replaced by the
// UnclassifiedTag sentinel.
func BuildTags(path []string) []string {
	trimmed := make([]string, len(path))
	for i, part := range path {
		trimmed[i] = strings.TrimSpace(part)
	}

	hierStart := 0
	if len(trimmed) > 0 && IsSpecialFolder(trimmed[0]) {
		hierStart = 1
	}

	var tags []string
	seen := make(map[string]struct{})
	add := func(tag string) {
		if tag == "" {
			return
		}
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for i, name := range trimmed {
		if name == "" || IsSpecialFolder(name) {
			continue
		}
		add(name)

		if i > 0 && hierStart < i {
			segments := make([]string, 0, i+1-hierStart)
			for _, seg := range trimmed[hierStart : i+1] {
				if seg != "" {
					segments = append(segments, seg)
				}
			}
			if len(segments) > 1 {
				add(strings.Join(segments, TagSeparator))
			}
		}
	}

	if len(tags) == 0 {
		return []string{UnclassifiedTag}
	}
	return tags
}
