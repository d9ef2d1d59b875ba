package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jwhur/startpage/internal/domain"
	"github.com/jwhur/startpage/internal/rc"
	"github.com/jwhur/startpage/internal/utils"
)

const backupSuffix = ".bak"

// RCFile handles reading and writing the on-disk RC link file.
type RCFile struct {
	path string
}

// NewRCFile wraps the RC file at path. The file does not need to exist
// yet.
func NewRCFile(path string) *RCFile {
	return &RCFile{path: path}
}

// Path returns the configured file location.
func (f *RCFile) Path() string {
	return f.path
}

// Load reads and decodes the whole file. A missing file is an empty
// collection, not an error.
func (f *RCFile) Load() ([]rc.Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read rc file: %w", err)
	}
	return rc.Parse(string(data)), nil
}

// Save overwrites the file with the full collection. A timestamped
// backup copy is taken first, then the content goes through a temp
// file and rename so readers never see a half-written file.
func (f *RCFile) Save(links []*domain.Link) error {
	if err := f.backup(); err != nil {
		return err
	}

	content := rc.Encode(links)

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".rc-*")
	if err != nil {
		return fmt.Errorf("failed to create temp rc file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		utils.Close(tmp)
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write rc file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close rc file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace rc file: %w", err)
	}
	return nil
}

// Append writes the given links to the end of the file without
// touching existing lines. Used by incremental import. A hand-edited
// file may lack a final newline; one is inserted first so the appended
// content never merges into the last line.
func (f *RCFile) Append(links []*domain.Link) error {
	if len(links) == 0 {
		return nil
	}

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open rc file for append: %w", err)
	}
	defer utils.Close(file)

	content := rc.Encode(links)
	if info, err := file.Stat(); err == nil && info.Size() > 0 {
		last := make([]byte, 1)
		if _, err := file.ReadAt(last, info.Size()-1); err == nil && last[0] != '\n' {
			content = "\n" + content
		}
	}

	if _, err := file.WriteString(content); err != nil {
		return fmt.Errorf("failed to append to rc file: %w", err)
	}
	return nil
}

// backup copies the current file to <path>.<timestamp>.bak before a
// destructive overwrite. A simple copy, not a transactional log; a
// missing original means nothing to back up.
func (f *RCFile) backup() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read rc file for backup: %w", err)
	}

	name := fmt.Sprintf("%s.%s%s", f.path, time.Now().Format("20060102-150405"), backupSuffix)
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// PruneBackups deletes backup copies older than retention, returning
// how many were removed.
func (f *RCFile) PruneBackups(retention time.Duration) (int, error) {
	dir := filepath.Dir(f.path)
	base := filepath.Base(f.path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list backup dir: %w", err)
	}

	cutoff := time.Now().Add(-retention)
	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, base+".") || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err == nil {
			removed++
		}
	}
	return removed, nil
}
