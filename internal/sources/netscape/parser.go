// Package netscape parses the classic Netscape bookmark HTML export
// produced by Firefox, Chrome and friends: nested DL lists where each
// folder is an H3 heading followed by a sub-list and each link is an
// A[HREF] entry, optionally trailed by a DD description.
package netscape

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/jwhur/startpage/internal/domain"
)

// Options controls folder-path handling during the walk.
type Options struct {
	// KeepSpecialFolders includes special container folders (toolbar,
	// other, mobile) as visible folder-path segments. When false the
	// parser still descends into them but elides the segment.
	KeepSpecialFolders bool
}

// Parse extracts all bookmarks from a Netscape export in document
// order. Broken markup degrades gracefully: whatever the HTML parser
// could recover is walked, so partial documents yield partial results.
func Parse(data []byte, opts Options) ([]domain.RawBookmark, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks html: %w", err)
	}

	root := findElement(doc, "dl")
	if root == nil {
		return nil, nil
	}
	return walkList(root, nil, opts), nil
}

// walkList visits each DT entry of a DL, threading the folder path by
// value so sibling branches never see each other's segments.
func walkList(dl *html.Node, path []string, opts Options) []domain.RawBookmark {
	var out []domain.RawBookmark
	for c := dl.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, "dt") {
			out = append(out, walkEntry(c, path, opts)...)
		}
	}
	return out
}

// walkEntry handles a single DT: either a folder (H3 + nested DL) or a
// link (A) with an optional trailing DD description.
func walkEntry(dt *html.Node, path []string, opts Options) []domain.RawBookmark {
	for c := dt.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "h3":
			return walkFolder(dt, c, path, opts)
		case "a":
			if bm, ok := extractLink(dt, c, path); ok {
				return []domain.RawBookmark{bm}
			}
			return nil
		}
	}
	return nil
}

func walkFolder(dt, h3 *html.Node, path []string, opts Options) []domain.RawBookmark {
	childPath := path
	name := strings.TrimSpace(textContent(h3))
	if name != "" && (opts.KeepSpecialFolders || !domain.IsSpecialFolder(name)) {
		childPath = append(append([]string(nil), path...), name)
	}

	sub := folderList(dt, h3)
	if sub == nil {
		return nil
	}
	return walkList(sub, childPath, opts)
}

// folderList locates the DL holding a folder's children. Depending on
// how the exporter closed its tags the list ends up either inside the
// DT (after the H3) or as a following sibling of the DT.
func folderList(dt, h3 *html.Node) *html.Node {
	for c := h3.NextSibling; c != nil; c = c.NextSibling {
		if isElement(c, "dl") {
			return c
		}
	}
	for s := dt.NextSibling; s != nil; s = s.NextSibling {
		if isElement(s, "dt") {
			break
		}
		if isElement(s, "dl") {
			return s
		}
	}
	return nil
}

func extractLink(dt, a *html.Node, path []string) (domain.RawBookmark, bool) {
	bm := domain.RawBookmark{
		Name:       strings.TrimSpace(textContent(a)),
		FolderPath: append([]string(nil), path...),
	}

	for _, attr := range a.Attr {
		switch strings.ToLower(attr.Key) {
		case "href":
			bm.URL = attr.Val
		case "add_date":
			bm.AddDate = unixAttr(attr.Val)
		case "last_modified":
			bm.LastModified = unixAttr(attr.Val)
		case "icon":
			bm.Icon = attr.Val
		}
	}

	// Anchors without a usable title or href, or with a non-http
	// scheme (data:, file:, javascript:, ...), are silently skipped.
	if bm.Name == "" || bm.URL == "" || !httpScheme(bm.URL) {
		return domain.RawBookmark{}, false
	}

	bm.Description = description(dt)
	return bm, true
}

// description returns the text of the DD element immediately following
// the link's DT entry, if any.
func description(dt *html.Node) string {
	for s := dt.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.TextNode && strings.TrimSpace(s.Data) == "" {
			continue
		}
		if isElement(s, "dd") {
			return strings.TrimSpace(textContent(s))
		}
		break
	}
	return ""
}

func httpScheme(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func unixAttr(val string) time.Time {
	ts, err := strconv.ParseInt(val, 10, 64)
	if err != nil || ts <= 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func findElement(n *html.Node, tag string) *html.Node {
	if isElement(n, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}
