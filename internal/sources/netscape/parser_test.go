package netscape

import (
	"reflect"
	"testing"
)

const sampleExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file. -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3 ADD_DATE="1700000000" PERSONAL_TOOLBAR_FOLDER="true">Bookmarks Bar</H3>
    <DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1700000001" ICON="data:image/png;base64,AAAA">GitHub</A>
        <DT><H3 ADD_DATE="1700000002">Dev</H3>
        <DL><p>
            <DT><A HREF="https://go.dev" ADD_DATE="1700000003">Go</A>
            <DD>The Go programming language
            <DT><H3>Frontend</H3>
            <DL><p>
                <DT><A HREF="https://react.dev">React</A>
            </DL><p>
        </DL><p>
        <DT><A HREF="data:text/plain;base64,AAAA">Data URL</A>
        <DT><A HREF="javascript:void(0)">Bookmarklet</A>
    </DL><p>
    <DT><A HREF="https://naver.com">Naver</A>
</DL><p>
`

func TestParse(t *testing.T) {
	bookmarks, err := Parse([]byte(sampleExport), Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(bookmarks) != 4 {
		t.Fatalf("Parse() returned %d bookmarks, want 4: %+v", len(bookmarks), bookmarks)
	}

	// Document order is preserved.
	names := make([]string, len(bookmarks))
	for i, bm := range bookmarks {
		names[i] = bm.Name
	}
	wantNames := []string{"GitHub", "Go", "React", "Naver"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("bookmark order = %v, want %v", names, wantNames)
	}

	// Special container elided from paths by default.
	if len(bookmarks[0].FolderPath) != 0 {
		t.Errorf("GitHub path = %v, want empty (Bookmarks Bar elided)", bookmarks[0].FolderPath)
	}
	if !reflect.DeepEqual(bookmarks[1].FolderPath, []string{"Dev"}) {
		t.Errorf("Go path = %v, want [Dev]", bookmarks[1].FolderPath)
	}
	if !reflect.DeepEqual(bookmarks[2].FolderPath, []string{"Dev", "Frontend"}) {
		t.Errorf("React path = %v, want [Dev Frontend]", bookmarks[2].FolderPath)
	}
}

func TestParseCapturesMetadata(t *testing.T) {
	bookmarks, err := Parse([]byte(sampleExport), Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	github := bookmarks[0]
	if github.AddDate.IsZero() {
		t.Error("GitHub ADD_DATE not captured")
	}
	if github.Icon == "" {
		t.Error("GitHub ICON not captured")
	}

	goBm := bookmarks[1]
	if goBm.Description != "The Go programming language" {
		t.Errorf("Go description = %q, want DD text", goBm.Description)
	}
}

func TestParseSkipsNonHTTPSchemes(t *testing.T) {
	bookmarks, err := Parse([]byte(sampleExport), Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	for _, bm := range bookmarks {
		if bm.Name == "Data URL" || bm.Name == "Bookmarklet" {
			t.Errorf("non-http bookmark %q should have been skipped", bm.Name)
		}
	}
}

func TestParseKeepSpecialFolders(t *testing.T) {
	bookmarks, err := Parse([]byte(sampleExport), Options{KeepSpecialFolders: true})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(bookmarks) == 0 {
		t.Fatal("Parse() returned no bookmarks")
	}
	if !reflect.DeepEqual(bookmarks[0].FolderPath, []string{"Bookmarks Bar"}) {
		t.Errorf("GitHub path = %v, want [Bookmarks Bar]", bookmarks[0].FolderPath)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	bookmarks, err := Parse([]byte("<html><body><p>not a bookmark file</p></body></html>"), Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(bookmarks) != 0 {
		t.Errorf("Parse() returned %d bookmarks from non-bookmark html, want 0", len(bookmarks))
	}
}

func TestParseTruncatedDocument(t *testing.T) {
	// Cut the export mid-entry: everything before the cut still parses.
	truncated := sampleExport[:len(sampleExport)/2]
	bookmarks, err := Parse([]byte(truncated), Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(bookmarks) == 0 {
		t.Error("Parse() should recover bookmarks from a truncated document")
	}
}

func TestParseAnchorsMissingPieces(t *testing.T) {
	doc := `<DL><p>
	<DT><A HREF="https://ok.com">OK</A>
	<DT><A>No Href</A>
	<DT><A HREF="https://untitled.com"></A>
</DL><p>`

	bookmarks, err := Parse([]byte(doc), Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(bookmarks) != 1 || bookmarks[0].Name != "OK" {
		t.Errorf("Parse() = %+v, want only the complete anchor", bookmarks)
	}
}
