package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwhur/startpage/internal/domain"
)

// ReadLaterItem is one entry of the "read later" list.
type ReadLaterItem struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	Read    bool      `json:"read"`
	AddedAt time.Time `json:"addedAt"`
}

// ReadLaterStore persists read-later items to a single JSON file.
type ReadLaterStore struct {
	mu    sync.RWMutex
	path  string
	items []*ReadLaterItem
}

// OpenReadLaterStore loads the read-later file at path, starting empty
// when the file does not exist yet.
func OpenReadLaterStore(path string) (*ReadLaterStore, error) {
	s := &ReadLaterStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read read-later file: %w", err)
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		return nil, fmt.Errorf("failed to parse read-later file: %w", err)
	}
	return s, nil
}

// List returns all items, newest first.
func (s *ReadLaterStore) List() []*ReadLaterItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*ReadLaterItem, len(s.items))
	for i, item := range s.items {
		copied := *item
		out[len(s.items)-1-i] = &copied
	}
	return out
}

// Add appends a new item. The URL is normalized best-effort and the
// title sanitized; a URL-less entry is rejected.
func (s *ReadLaterStore) Add(title, rawURL string) (*ReadLaterItem, error) {
	url := domain.NormalizeURL(rawURL)
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("read-later item needs a url")
	}

	title = domain.SanitizeName(title)
	if title == "" {
		title = url
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := &ReadLaterItem{
		ID:      uuid.NewString(),
		Title:   title,
		URL:     url,
		AddedAt: time.Now(),
	}
	s.items = append(s.items, item)

	if err := saveJSON(s.path, s.items); err != nil {
		s.items = s.items[:len(s.items)-1]
		return nil, err
	}
	copied := *item
	return &copied, nil
}

// MarkRead flips an item's read flag.
func (s *ReadLaterStore) MarkRead(id string, read bool) (*ReadLaterItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == id {
			previous := item.Read
			item.Read = read
			if err := saveJSON(s.path, s.items); err != nil {
				item.Read = previous
				return nil, err
			}
			copied := *item
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes one item by id.
func (s *ReadLaterStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return saveJSON(s.path, s.items)
		}
	}
	return ErrNotFound
}
