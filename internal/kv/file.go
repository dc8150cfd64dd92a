package kv

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store backed by a single JSON file on disk. Writes go through a
// temp file and rename so a crash mid-write never corrupts the previous
// snapshot. An optional quota bounds the encoded file size in bytes.
type File struct {
	mu    sync.Mutex
	path  string
	quota int
	data  map[string]string
}

// NewFile opens (or creates) a file-backed store at path. A malformed or
// unreadable file is treated as empty rather than an error, matching the
// hydration contract of the state core.
func NewFile(path string, quota int) (*File, error) {
	f := &File{path: path, quota: quota, data: make(map[string]string)}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// first run
	case err != nil:
		return nil, err
	default:
		if jsonErr := json.Unmarshal(raw, &f.data); jsonErr != nil {
			f.data = make(map[string]string)
		}
	}
	return f, nil
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, hadPrev := f.data[key]
	f.data[key] = value
	if err := f.flushLocked(); err != nil {
		if hadPrev {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

func (f *File) flushLocked() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return err
	}
	if f.quota > 0 && len(raw) > f.quota {
		return ErrQuotaExceeded
	}
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
