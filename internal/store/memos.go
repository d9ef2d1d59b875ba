package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memo is one entry of the note-taking panel.
type Memo struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MemoStore persists memos to a single JSON file.
type MemoStore struct {
	mu    sync.RWMutex
	path  string
	memos []*Memo
}

// OpenMemoStore loads the memo file at path, creating an empty store
// when the file does not exist yet.
func OpenMemoStore(path string) (*MemoStore, error) {
	s := &MemoStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read memo file: %w", err)
	}
	if err := json.Unmarshal(data, &s.memos); err != nil {
		return nil, fmt.Errorf("failed to parse memo file: %w", err)
	}
	return s, nil
}

// List returns all memos, newest first.
func (s *MemoStore) List() []*Memo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Memo, len(s.memos))
	for i, m := range s.memos {
		copied := *m
		out[len(s.memos)-1-i] = &copied
	}
	return out
}

// Create appends a new memo and persists the file.
func (s *MemoStore) Create(content string) (*Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	memo := &Memo{
		ID:        uuid.NewString(),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.memos = append(s.memos, memo)

	if err := s.saveLocked(); err != nil {
		s.memos = s.memos[:len(s.memos)-1]
		return nil, err
	}
	copied := *memo
	return &copied, nil
}

// Update replaces a memo's content.
func (s *MemoStore) Update(id, content string) (*Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, memo := range s.memos {
		if memo.ID == id {
			previous := memo.Content
			memo.Content = content
			memo.UpdatedAt = time.Now()
			if err := s.saveLocked(); err != nil {
				memo.Content = previous
				return nil, err
			}
			copied := *memo
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes a memo by id.
func (s *MemoStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, memo := range s.memos {
		if memo.ID == id {
			s.memos = append(s.memos[:i], s.memos[i+1:]...)
			return s.saveLocked()
		}
	}
	return ErrNotFound
}

func (s *MemoStore) saveLocked() error {
	return saveJSON(s.path, s.memos)
}

// saveJSON writes v as indented JSON through a temp file + rename.
func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".json-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
