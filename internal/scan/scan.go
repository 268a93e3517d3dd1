// Package scan enumerates the regular files a run will consider.
//
// Hidden entries (names starting with a dot) are always excluded; recursive
// mode flattens the tree so files at any depth become peers of one another.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// File is one enumerated candidate: a path plus lazily captured attributes.
// Attributes are cached after the first read and never mutated afterwards.
type File struct {
	Path string

	mu      sync.Mutex
	statted bool
	info    fs.FileInfo
	statErr error
}

// NewFile builds a File for path without touching the filesystem.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Stat returns the file's attributes, reading them on first use.
func (f *File) Stat() (fs.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.statted {
		f.info, f.statErr = os.Stat(f.Path)
		f.statted = true
	}
	return f.info, f.statErr
}

// Size returns the file size; ok is false when the size cannot be determined.
func (f *File) Size() (int64, bool) {
	info, err := f.Stat()
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

// ModTime returns the modification time; ok is false when it cannot be read.
// Callers treat an unreadable timestamp as the zero time, which sorts oldest.
func (f *File) ModTime() (time.Time, bool) {
	info, err := f.Stat()
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Base returns the file's base name.
func (f *File) Base() string {
	return filepath.Base(f.Path)
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Files enumerates the candidates under root. Without recursion only the
// directory's own regular entries are returned; with recursion every regular
// file at any depth is returned as a flat list. Hidden files are skipped, and
// the walk does not descend into hidden directories. Per-entry access errors
// skip the entry rather than failing the enumeration.
func Files(root string, recursive bool) ([]*File, error) {
	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		files := make([]*File, 0, len(entries))
		for _, entry := range entries {
			if hidden(entry.Name()) || !entry.Type().IsRegular() {
				continue
			}
			files = append(files, seeded(filepath.Join(root, entry.Name()), entry))
		}
		return files, nil
	}

	var files []*File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != root && hidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden(d.Name()) || !d.Type().IsRegular() {
			return nil
		}
		files = append(files, seeded(path, d))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// seeded builds a File, pre-filling the attribute cache from the directory
// entry when it is readable. An unreadable entry stays lazy so Stat can retry.
func seeded(path string, entry fs.DirEntry) *File {
	f := NewFile(path)
	if info, err := entry.Info(); err == nil {
		f.statted = true
		f.info = info
	}
	return f
}
