// Package rc implements the line-oriented RC link file format:
// one link per line, comma-separated, "name,url,tag1,tag2,...".
// Blank lines and #-comments are ignored.
package rc

import (
	"strings"

	"github.com/jwhur/startpage/internal/domain"
)

// Record is one decoded RC data line.
type Record struct {
	Name string
	URL  string
	Tags []string

	// Line is the 1-based line number the record came from, for
	// diagnostics only.
	Line int
}

// ParseLine decodes a single RC line. ok is false for blank lines,
// comments, lines with fewer than two fields, and lines whose URL fails
// strict validation; such lines are skipped, never an error.
func ParseLine(line string) (Record, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Record{}, false
	}

	parts := strings.Split(trimmed, ",")
	if len(parts) < 2 {
		return Record{}, false
	}

	name := strings.TrimSpace(parts[0])
	url := strings.TrimSpace(parts[1])
	if name == "" || !domain.ValidURL(url) {
		return Record{}, false
	}

	var tags []string
	for _, part := range parts[2:] {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}

	return Record{Name: name, URL: url, Tags: tags}, true
}

// Parse decodes a full RC file, collecting every valid data line and
// skipping the rest.
func Parse(content string) []Record {
	var records []Record
	for i, line := range strings.Split(content, "\n") {
		rec, ok := ParseLine(line)
		if !ok {
			continue
		}
		rec.Line = i + 1
		records = append(records, rec)
	}
	return records
}

// EncodeLine serializes one link as an RC line. Only flat tags are
// written: hierarchical tags are a derived projection and are dropped
// so the field list stays unambiguous. Commas in the name are replaced
// with spaces to keep the delimiter safe; the projection is one-way and
// lossy by design.
func EncodeLine(name, url string, tags []string) string {
	fields := make([]string, 0, 2+len(tags))
	fields = append(fields, encodeName(name), url)
	for _, tag := range tags {
		if strings.Contains(tag, domain.TagSeparator) {
			continue
		}
		if tag = strings.TrimSpace(tag); tag != "" {
			fields = append(fields, tag)
		}
	}
	return strings.Join(fields, ",")
}

// Encode serializes a link collection to full RC file content. The
// result carries a single trailing newline when non-empty.
func Encode(links []*domain.Link) string {
	if len(links) == 0 {
		return ""
	}
	var b strings.Builder
	for _, link := range links {
		b.WriteString(EncodeLine(link.Name, link.URL, link.Tags))
		b.WriteByte('\n')
	}
	return b.String()
}

func encodeName(name string) string {
	name = domain.SanitizeName(name)
	if !strings.Contains(name, ",") {
		return name
	}
	return domain.SanitizeName(strings.ReplaceAll(name, ",", " "))
}
