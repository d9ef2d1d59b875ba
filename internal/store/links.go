// Package store owns the persisted start-page state: the link
// collection backed by the RC file, and the memo / read-later panels
// backed by JSON files.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwhur/startpage/internal/domain"
)

var (
	// ErrDuplicateURL is returned by Add when the URL is already in
	// the collection (case-insensitively).
	ErrDuplicateURL = errors.New("url already exists")

	// ErrNotFound is returned when a link id does not exist.
	ErrNotFound = errors.New("link not found")
)

// LinkStore is the in-memory link collection. It is the sole owner of
// the collection; all mutations go through its lock.
type LinkStore struct {
	mu         sync.RWMutex
	links      []*domain.Link
	lastReload time.Time
}

// NewLinkStore creates an empty link store.
func NewLinkStore() *LinkStore {
	return &LinkStore{}
}

// urlKey is the dedupe key: trimmed, lower-cased, literal. Trailing
// slashes and path case are deliberately significant.
func urlKey(url string) string {
	return strings.ToLower(strings.TrimSpace(url))
}

// usable reports whether a candidate may enter the collection at all.
func usable(c domain.Candidate) bool {
	return c.Name != "" && strings.HasPrefix(urlKey(c.URL), "http")
}

// newLink materializes a candidate with store-assigned fields.
func newLink(c domain.Candidate, order int, now time.Time) *domain.Link {
	link := &domain.Link{
		ID:          uuid.NewString(),
		Name:        c.Name,
		URL:         c.URL,
		Tags:        append([]string(nil), c.Tags...),
		Description: c.Description,
		Order:       order,
		CreatedAt:   now,
		Source:      c.Source,
	}
	if !c.ImportedAt.IsZero() {
		t := c.ImportedAt
		link.ImportedAt = &t
	}
	return link
}

// Sift builds the link set Replace would produce from the batch,
// without touching any store: unusable candidates dropped,
// url-duplicates within the batch lose to the first occurrence,
// survivors get fresh ids, sequential order from 0, and zeroed click
// counters.
func Sift(batch []domain.Candidate) []*domain.Link {
	now := time.Now()
	rebuilt := make([]*domain.Link, 0, len(batch))
	seen := make(map[string]struct{}, len(batch))

	for _, c := range batch {
		if !usable(c) {
			continue
		}
		key := urlKey(c.URL)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rebuilt = append(rebuilt, newLink(c, len(rebuilt), now))
	}
	return rebuilt
}

// Replace discards the whole collection and rebuilds it from the
// batch via Sift. Returns the resulting count. Used on full RC file
// reload; intentionally not additive.
func (s *LinkStore) Replace(batch []domain.Candidate) int {
	rebuilt := Sift(batch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = rebuilt
	s.lastReload = time.Now()
	return len(rebuilt)
}

// Append adds candidates whose url is not yet present, never touching
// existing entries. The dedupe set starts from the current collection
// and grows as candidates are accepted, so replaying the same batch is
// a no-op. Returns the accepted links (for incremental persistence)
// and the skip count.
func (s *LinkStore) Append(batch []domain.Candidate) (added []*domain.Link, skipped int) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.links)+len(batch))
	for _, link := range s.links {
		seen[urlKey(link.URL)] = struct{}{}
	}

	for _, c := range batch {
		if !usable(c) {
			skipped++
			continue
		}
		key := urlKey(c.URL)
		if _, dup := seen[key]; dup {
			skipped++
			continue
		}
		seen[key] = struct{}{}
		link := newLink(c, len(s.links), now)
		s.links = append(s.links, link)
		added = append(added, link)
	}
	return added, skipped
}

// Add inserts a single manually-created link.
func (s *LinkStore) Add(c domain.Candidate) (*domain.Link, error) {
	if !usable(c) {
		return nil, fmt.Errorf("link needs a name and an http(s) url")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := urlKey(c.URL)
	for _, link := range s.links {
		if urlKey(link.URL) == key {
			return nil, ErrDuplicateURL
		}
	}

	link := newLink(c, len(s.links), time.Now())
	s.links = append(s.links, link)
	return link, nil
}

// LinkUpdate carries the editable fields of a link; nil means keep.
type LinkUpdate struct {
	Name        *string
	URL         *string
	Tags        []string
	Description *string
}

// Update edits a link in place. A URL change colliding with another
// entry fails with ErrDuplicateURL.
func (s *LinkStore) Update(id string, upd LinkUpdate) (*domain.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.findLocked(id)
	if target == nil {
		return nil, ErrNotFound
	}

	if upd.URL != nil {
		key := urlKey(*upd.URL)
		if !strings.HasPrefix(key, "http") {
			return nil, fmt.Errorf("url must be absolute http(s)")
		}
		for _, link := range s.links {
			if link.ID != id && urlKey(link.URL) == key {
				return nil, ErrDuplicateURL
			}
		}
		target.URL = strings.TrimSpace(*upd.URL)
	}
	if upd.Name != nil {
		if name := domain.SanitizeName(*upd.Name); name != "" {
			target.Name = name
		}
	}
	if upd.Tags != nil {
		target.Tags = append([]string(nil), upd.Tags...)
	}
	if upd.Description != nil {
		target.Description = *upd.Description
	}

	copied := *target
	return &copied, nil
}

// Delete removes one link and compacts order positions.
func (s *LinkStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, link := range s.links {
		if link.ID == id {
			s.links = append(s.links[:i], s.links[i+1:]...)
			for j := i; j < len(s.links); j++ {
				s.links[j].Order = j
			}
			return true
		}
	}
	return false
}

// DeleteAll empties the collection.
func (s *LinkStore) DeleteAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.links)
	s.links = nil
	return n
}

// RecordClick bumps the usage counters of one link.
func (s *LinkStore) RecordClick(id string) (*domain.Link, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.findLocked(id)
	if target == nil {
		return nil, false
	}
	now := time.Now()
	target.ClickCount++
	target.LastClicked = &now

	copied := *target
	return &copied, true
}

// All returns a snapshot of the collection in order.
func (s *LinkStore) All() []*domain.Link {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Link, len(s.links))
	for i, link := range s.links {
		copied := *link
		out[i] = &copied
	}
	return out
}

// Get returns a copy of one link.
func (s *LinkStore) Get(id string) (*domain.Link, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if link := s.findLocked(id); link != nil {
		copied := *link
		return &copied, true
	}
	return nil, false
}

// HydrateClicks restores click counters from a url-keyed map,
// typically read back from Redis after a restart. Links without an
// entry keep their current counter.
func (s *LinkStore) HydrateClicks(counts map[string]int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, link := range s.links {
		if n, ok := counts[urlKey(link.URL)]; ok && n > link.ClickCount {
			link.ClickCount = n
		}
	}
}

// Count returns the collection size.
func (s *LinkStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links)
}

// LastReload returns when Replace last ran; zero before the first
// load.
func (s *LinkStore) LastReload() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReload
}

func (s *LinkStore) findLocked(id string) *domain.Link {
	for _, link := range s.links {
		if link.ID == id {
			return link
		}
	}
	return nil
}
