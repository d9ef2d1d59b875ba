package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadLaterStoreCRUD(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readlater.json")

	s, err := OpenReadLaterStore(path)
	if err != nil {
		t.Fatalf("OpenReadLaterStore() error = %v", err)
	}

	item, err := s.Add("Interesting article", "example.com/post")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if item.URL != "https://example.com/post" {
		t.Errorf("Add() url = %q, want normalized", item.URL)
	}
	if item.Read {
		t.Error("new item should start unread")
	}

	// Empty title falls back to the url.
	untitled, err := s.Add("", "https://untitled.com")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if untitled.Title != "https://untitled.com" {
		t.Errorf("untitled Title = %q", untitled.Title)
	}

	if _, err := s.Add("No URL", "   "); err == nil {
		t.Error("Add() without a url should fail")
	}

	marked, err := s.MarkRead(item.ID, true)
	if err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if !marked.Read {
		t.Error("MarkRead() did not set the flag")
	}
	if _, err := s.MarkRead("missing", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkRead(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.Delete(untitled.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}

	reopened, err := OpenReadLaterStore(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	list := reopened.List()
	if len(list) != 1 || list[0].ID != item.ID || !list[0].Read {
		t.Errorf("reopened List() = %+v", list)
	}
}

func TestReadLaterStoreRollsBackOnSaveFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "readlater.json")

	s, err := OpenReadLaterStore(path)
	if err != nil {
		t.Fatalf("OpenReadLaterStore() error = %v", err)
	}
	if _, err := s.Add("keeper", "https://keeper.com"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Removing the directory makes the save's temp file fail, so the
	// in-memory list must be rolled back to its persisted state.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove dir: %v", err)
	}
	if _, err := s.Add("doomed", "https://doomed.com"); err == nil {
		t.Fatal("Add() should fail when the file cannot be written")
	}

	list := s.List()
	if len(list) != 1 || list[0].Title != "keeper" {
		t.Errorf("failed Add left the list inconsistent: %+v", list)
	}
}
