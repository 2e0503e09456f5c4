package vfs

import (
	"io/fs"
	"sync"
)

// Provider is the read side a bundler plugin calls into.
type Provider interface {
	Has(path string) bool
	ReadFile(path string) (string, error)
	Stat(path string) (*Stats, error)
}

// FileSystem owns a read cache and a stat cache and serializes injection
// into them. Use New; the zero value has no caches.
type FileSystem struct {
	mu    sync.Mutex
	reads *Storage[string]
	stats *Storage[*Stats]
}

var (
	_ Provider = (*FileSystem)(nil)
	_ Host     = (*FileSystem)(nil)
)

func New() *FileSystem {
	return &FileSystem{
		reads: NewStorage[string](),
		stats: NewStorage[*Stats](),
	}
}

func (f *FileSystem) ReadCache() Cache[string] {
	if f == nil || f.reads == nil {
		return nil
	}
	return f.reads
}

func (f *FileSystem) StatCache() Cache[*Stats] {
	if f == nil || f.stats == nil {
		return nil
	}
	return f.stats
}

// Inject is Inject over f's own caches.
func (f *FileSystem) Inject(path, content string) (bool, error) {
	reads, stats, err := Probe(f)
	if err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return Inject(reads, stats, path, content)
}

func (f *FileSystem) Has(path string) bool {
	_, ok := f.reads.Load(path)
	return ok
}

func (f *FileSystem) ReadFile(path string) (string, error) {
	entry, ok := f.reads.Load(path)
	if !ok {
		return "", &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist}
	}
	if entry.Err != nil {
		return "", &fs.PathError{Op: "read", Path: path, Err: entry.Err}
	}
	return entry.Value, nil
}

func (f *FileSystem) Stat(path string) (*Stats, error) {
	entry, ok := f.stats.Load(path)
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	if entry.Err != nil {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: entry.Err}
	}
	return entry.Value, nil
}

// Purge forgets every injected file.
func (f *FileSystem) Purge() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads.Purge()
	f.stats.Purge()
}
