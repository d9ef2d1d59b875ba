package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jwhur/startpage/internal/domain"
)

func tempRCFile(t *testing.T) *RCFile {
	t.Helper()
	return NewRCFile(filepath.Join(t.TempDir(), "links.rc"))
}

func TestRCFileLoadMissing(t *testing.T) {
	f := tempRCFile(t)
	records, err := f.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if records != nil {
		t.Errorf("Load() of missing file = %v, want nil", records)
	}
}

func TestRCFileSaveLoadRoundTrip(t *testing.T) {
	f := tempRCFile(t)
	links := []*domain.Link{
		{Name: "GitHub", URL: "https://github.com", Tags: []string{"Dev"}},
		{Name: "Naver", URL: "https://naver.com", Tags: []string{"Search"}},
	}

	if err := f.Save(links); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	records, err := f.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Load() returned %d records, want 2", len(records))
	}
	if records[0].Name != "GitHub" || records[1].URL != "https://naver.com" {
		t.Errorf("round trip records = %+v", records)
	}
}

func TestRCFileSaveTakesBackup(t *testing.T) {
	f := tempRCFile(t)

	if err := os.WriteFile(f.Path(), []byte("Old,https://old.com\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if err := f.Save([]*domain.Link{{Name: "New", URL: "https://new.com"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	backups := listBackups(t, f)
	if len(backups) != 1 {
		t.Fatalf("found %d backups, want 1", len(backups))
	}
	data, err := os.ReadFile(backups[0])
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(data) != "Old,https://old.com\n" {
		t.Errorf("backup content = %q, want previous file content", data)
	}
}

func TestRCFileSaveWithoutOriginalSkipsBackup(t *testing.T) {
	f := tempRCFile(t)
	if err := f.Save([]*domain.Link{{Name: "New", URL: "https://new.com"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if backups := listBackups(t, f); len(backups) != 0 {
		t.Errorf("found %d backups for a fresh file, want 0", len(backups))
	}
}

func TestRCFileAppend(t *testing.T) {
	f := tempRCFile(t)
	if err := f.Save([]*domain.Link{{Name: "A", URL: "https://a.com"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := f.Append([]*domain.Link{{Name: "B", URL: "https://b.com"}}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	records, err := f.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 2 || records[1].Name != "B" {
		t.Errorf("records after append = %+v", records)
	}

	// Appending nothing is a no-op, not an error.
	if err := f.Append(nil); err != nil {
		t.Errorf("Append(nil) error = %v", err)
	}
}

func TestRCFileAppendAfterMissingTrailingNewline(t *testing.T) {
	f := tempRCFile(t)

	// A hand-edited file may end without a newline.
	if err := os.WriteFile(f.Path(), []byte("A,https://a.com"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if err := f.Append([]*domain.Link{{Name: "B", URL: "https://b.com"}}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	records, err := f.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records after append = %+v, want 2", records)
	}
	if records[0].URL != "https://a.com" || records[1].Name != "B" {
		t.Errorf("appended line merged into the last line: %+v", records)
	}
}

func TestPruneBackups(t *testing.T) {
	f := tempRCFile(t)
	dir := filepath.Dir(f.Path())

	old := filepath.Join(dir, "links.rc.20200101-000000.bak")
	fresh := filepath.Join(dir, "links.rc.20990101-000000.bak")
	for _, p := range []string{old, fresh} {
		if err := os.WriteFile(p, []byte("x\n"), 0o644); err != nil {
			t.Fatalf("seed backup: %v", err)
		}
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	removed, err := f.PruneBackups(24 * time.Hour)
	if err != nil {
		t.Fatalf("PruneBackups() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("PruneBackups() removed %d, want 1", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old backup should be gone")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh backup should survive")
	}
}

func listBackups(t *testing.T, f *RCFile) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Dir(f.Path()))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var out []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), backupSuffix) {
			out = append(out, filepath.Join(filepath.Dir(f.Path()), e.Name()))
		}
	}
	return out
}
