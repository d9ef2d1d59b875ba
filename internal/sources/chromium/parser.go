// Package chromium parses the Chrome/Chromium "Bookmarks" JSON file:
// a roots map keyed by role (bookmark_bar, other, synced), each root a
// tree of folder/url nodes.
package chromium

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jwhur/startpage/internal/domain"
)

// ErrInvalidFormat marks a payload that is not a Chrome bookmarks file.
// Invalid JSON is a hard failure with no partial results.
var ErrInvalidFormat = errors.New("invalid chrome bookmarks format")

// Seconds between the Chrome epoch (1601-01-01) and the Unix epoch.
const chromeEpochDelta = 11644473600

// rootOrder fixes traversal order across roots; the JSON map itself is
// unordered.
var rootOrder = []string{"bookmark_bar", "other", "synced"}

type node struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	DateAdded string `json:"date_added"`
	Children  []node `json:"children"`
}

type bookmarksFile struct {
	Roots map[string]node `json:"roots"`
}

// Parse extracts all bookmarks from a Chrome bookmarks JSON export in
// tree pre-order.
func Parse(data []byte) ([]domain.RawBookmark, error) {
	var file bookmarksFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if file.Roots == nil {
		return nil, fmt.Errorf("%w: missing roots", ErrInvalidFormat)
	}

	var out []domain.RawBookmark
	for _, role := range sortedRoles(file.Roots) {
		root := file.Roots[role]
		// The root's own name becomes the first path segment only
		// when the export carries one.
		out = append(out, walk(root, nil)...)
	}
	return out, nil
}

func walk(n node, path []string) []domain.RawBookmark {
	switch n.Type {
	case "url":
		name := strings.TrimSpace(n.Name)
		if name == "" || n.URL == "" {
			return nil
		}
		return []domain.RawBookmark{{
			Name:       name,
			URL:        n.URL,
			FolderPath: append([]string(nil), path...),
			AddDate:    chromeTime(n.DateAdded),
		}}
	case "folder":
		childPath := path
		if name := strings.TrimSpace(n.Name); name != "" {
			childPath = append(append([]string(nil), path...), name)
		}
		var out []domain.RawBookmark
		for _, child := range n.Children {
			out = append(out, walk(child, childPath)...)
		}
		return out
	}
	return nil
}

// sortedRoles returns the known roles first, in fixed order, then any
// extras sorted by name so traversal stays deterministic.
func sortedRoles(roots map[string]node) []string {
	roles := make([]string, 0, len(roots))
	seen := make(map[string]bool, len(roots))
	for _, role := range rootOrder {
		if _, ok := roots[role]; ok {
			roles = append(roles, role)
			seen[role] = true
		}
	}
	var extra []string
	for role := range roots {
		if !seen[role] {
			extra = append(extra, role)
		}
	}
	sort.Strings(extra)
	return append(roles, extra...)
}

// chromeTime converts Chrome's microseconds-since-1601 timestamps.
func chromeTime(val string) time.Time {
	micros, err := strconv.ParseInt(val, 10, 64)
	if err != nil || micros <= 0 {
		return time.Time{}
	}
	secs := micros/1e6 - chromeEpochDelta
	if secs <= 0 {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}
