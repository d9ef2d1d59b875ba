// Package importer turns raw bookmark export files into deduplicated
// link candidates ready for the store: format detection, source parser
// dispatch, then normalization.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jwhur/startpage/internal/domain"
	"github.com/jwhur/startpage/internal/sources/chromium"
	"github.com/jwhur/startpage/internal/sources/netscape"
)

var (
	// ErrUnknownFormat marks a file that is neither a Netscape HTML
	// export nor a Chrome bookmarks JSON file.
	ErrUnknownFormat = errors.New("unrecognized bookmark file format")

	// ErrNoBookmarks marks a source file with zero extractable
	// bookmarks. The operation aborts and nothing is committed.
	ErrNoBookmarks = errors.New("no bookmarks found in file")
)

// Format identifies a supported bookmark export format.
type Format int

const (
	FormatUnknown Format = iota
	FormatNetscapeHTML
	FormatChromeJSON
)

func (f Format) String() string {
	switch f {
	case FormatNetscapeHTML:
		return "netscape-html"
	case FormatChromeJSON:
		return "chrome-json"
	default:
		return "unknown"
	}
}

// SourceImport is the Source value stamped on imported candidates.
const SourceImport = "import"

// Options forwards parser configuration.
type Options struct {
	KeepSpecialFolders bool
}

// Detect sniffs the payload head and decides which source parser
// applies.
func Detect(data []byte) Format {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n\ufeff")

	if bytes.Contains(head, []byte("NETSCAPE-Bookmark-file")) {
		return FormatNetscapeHTML
	}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatChromeJSON
	}
	if len(trimmed) > 0 && trimmed[0] == '<' {
		// Doctype-less HTML still gets a chance; the walk simply
		// finds nothing when it is not a bookmark list.
		return FormatNetscapeHTML
	}
	return FormatUnknown
}

// Parse detects the format and runs the matching source parser.
func Parse(data []byte, opts Options) ([]domain.RawBookmark, error) {
	switch Detect(data) {
	case FormatNetscapeHTML:
		return netscape.Parse(data, netscape.Options{KeepSpecialFolders: opts.KeepSpecialFolders})
	case FormatChromeJSON:
		return chromium.Parse(data)
	default:
		return nil, ErrUnknownFormat
	}
}

// Normalize converts raw bookmarks into link candidates: records
// missing a name or url are dropped, names are sanitized, urls
// normalized best-effort, tags derived from the folder path, and
// url-duplicates removed keeping the first occurrence in traversal
// order.
func Normalize(raw []domain.RawBookmark, now time.Time) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, bm := range raw {
		name := domain.SanitizeName(bm.Name)
		if name == "" || strings.TrimSpace(bm.URL) == "" {
			continue
		}

		url := domain.NormalizeURL(bm.URL)
		key := strings.ToLower(url)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		candidates = append(candidates, domain.Candidate{
			Name:        name,
			URL:         url,
			Tags:        domain.BuildTags(bm.FolderPath),
			Description: bm.Description,
			Source:      SourceImport,
			ImportedAt:  now,
		})
	}
	return candidates
}

// Import is the full pipeline: parse then normalize. A file from which
// nothing could be extracted is a single descriptive error.
func Import(data []byte, opts Options, now time.Time) ([]domain.Candidate, error) {
	raw, err := Parse(data, opts)
	if err != nil {
		return nil, err
	}
	candidates := Normalize(raw, now)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w (format: %s)", ErrNoBookmarks, Detect(data))
	}
	return candidates, nil
}
