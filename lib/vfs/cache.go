package vfs

import "sync"

// Entry is a cached result: Err set means the read or stat failed.
type Entry[T any] struct {
	Err   error
	Value T
}

// Cache is a path-keyed result cache as a host exposes it.
type Cache[T any] interface {
	Load(path string) (Entry[T], bool)
	Store(path string, entry Entry[T])
}

// Storage is the in-memory Cache used for the virtual module.
type Storage[T any] struct {
	mu   sync.RWMutex
	data map[string]Entry[T]
}

var _ Cache[string] = (*Storage[string])(nil)

func NewStorage[T any]() *Storage[T] {
	return &Storage[T]{data: make(map[string]Entry[T])}
}

func (s *Storage[T]) Load(path string) (Entry[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.data[path]
	return entry, ok
}

func (s *Storage[T]) Store(path string, entry Entry[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = make(map[string]Entry[T])
	}
	s.data[path] = entry
}

func (s *Storage[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Purge drops every entry, or only the given paths.
func (s *Storage[T]) Purge(paths ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(paths) == 0 {
		s.data = make(map[string]Entry[T])
		return
	}
	for _, p := range paths {
		delete(s.data, p)
	}
}
