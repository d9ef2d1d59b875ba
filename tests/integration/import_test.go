package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jwhur/startpage/internal/importer"
	"github.com/jwhur/startpage/internal/store"
)

const browserExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3>Bookmarks Bar</H3>
    <DL><p>
        <DT><A HREF="https://github.com">GitHub</A>
        <DT><H3>Dev</H3>
        <DL><p>
            <DT><A HREF="https://go.dev">The Go Programming Language</A>
            <DT><A HREF="https://pkg.go.dev">Go Packages</A>
        </DL><p>
    </DL><p>
    <DT><H3>기타 북마크</H3>
    <DL><p>
        <DT><A HREF="https://news.ycombinator.com">Hacker News</A>
    </DL><p>
</DL><p>
`

// TestImportPipeline runs a browser export through the whole chain:
// parse, normalize, append to the store, persist as an RC file, reload
// from that file, and re-import the same export.
func TestImportPipeline(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	candidates, err := importer.Import([]byte(browserExport), importer.Options{}, now)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(candidates) != 4 {
		t.Fatalf("expected 4 candidates, got %d", len(candidates))
	}

	links := store.NewLinkStore()
	added, skipped := links.Append(candidates)
	if len(added) != 4 || skipped != 0 {
		t.Fatalf("expected 4 added / 0 skipped, got %d / %d", len(added), skipped)
	}

	// Toolbar links get the unclassified sentinel, nested folders
	// become flat tags.
	byURL := make(map[string][]string)
	for _, link := range links.All() {
		byURL[link.URL] = link.Tags
	}
	if got := byURL["https://github.com"]; len(got) != 1 || got[0] != "미분류" {
		t.Errorf("toolbar link tags = %v, want [미분류]", got)
	}
	if got := byURL["https://go.dev"]; len(got) != 1 || got[0] != "Dev" {
		t.Errorf("nested link tags = %v, want [Dev]", got)
	}

	// Persist and reload through the RC file.
	dir := t.TempDir()
	file := store.NewRCFile(filepath.Join(dir, "links.rc"))
	if err := file.Save(links.All()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, err := file.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records after reload, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Name == "" || rec.URL == "" {
			t.Errorf("round-tripped record lost fields: %+v", rec)
		}
	}

	// Importing the same export again must be a no-op.
	candidates, err = importer.Import([]byte(browserExport), importer.Options{}, now)
	if err != nil {
		t.Fatalf("second Import failed: %v", err)
	}
	added, skipped = links.Append(candidates)
	if len(added) != 0 || skipped != 4 {
		t.Errorf("re-import: expected 0 added / 4 skipped, got %d / %d", len(added), skipped)
	}
	if got := links.Count(); got != 4 {
		t.Errorf("store grew on re-import: %d links", got)
	}
}

// TestImportPipelineChrome covers the JSON path end to end.
func TestImportPipelineChrome(t *testing.T) {
	chromeExport := `{
  "roots": {
    "bookmark_bar": {
      "type": "folder",
      "name": "Bookmarks bar",
      "children": [
        {"type": "url", "name": "GitHub", "url": "https://github.com"},
        {
          "type": "folder",
          "name": "Reading",
          "children": [
            {"type": "url", "name": "Go Blog", "url": "https://go.dev/blog"}
          ]
        }
      ]
    },
    "other": {"type": "folder", "name": "Other bookmarks", "children": []}
  },
  "version": 1
}`

	now := time.Now()
	candidates, err := importer.Import([]byte(chromeExport), importer.Options{}, now)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	links := store.NewLinkStore()
	added, _ := links.Append(candidates)

	dir := t.TempDir()
	file := store.NewRCFile(filepath.Join(dir, "links.rc"))
	if err := file.Append(added); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	data, err := os.ReadFile(file.Path())
	if err != nil {
		t.Fatalf("read rc file: %v", err)
	}
	records, err := file.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d (file: %q)", len(records), string(data))
	}

	byURL := make(map[string][]string)
	for _, rec := range records {
		byURL[rec.URL] = rec.Tags
	}
	if got := byURL["https://go.dev/blog"]; len(got) != 1 || got[0] != "Reading" {
		t.Errorf("nested chrome link tags = %v, want [Reading]", got)
	}
}
