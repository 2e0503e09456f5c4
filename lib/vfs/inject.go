// Package vfs fabricates the one virtual file the dynamic importer lives in
// and keeps it in read and stat caches the bundler consults.
package vfs

import (
	"errors"
	"fmt"
)

var ErrUnsupportedHost = errors.New("host cache API not found; unsupported host version")

// Host is what a build host must expose for Inject to reach its caches.
type Host interface {
	ReadCache() Cache[string]
	StatCache() Cache[*Stats]
}

// Probe checks that host exposes both caches.
func Probe(host any) (Cache[string], Cache[*Stats], error) {
	h, ok := host.(Host)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %T", ErrUnsupportedHost, host)
	}
	reads, stats := h.ReadCache(), h.StatCache()
	if reads == nil || stats == nil {
		return nil, nil, fmt.Errorf("%w: %T returned a nil cache", ErrUnsupportedHost, host)
	}
	return reads, stats, nil
}

// Inject registers content at path in both caches unless reads already holds
// path. It reports whether anything was written. Calls sharing caches must be
// serialized by the caller.
func Inject(reads Cache[string], stats Cache[*Stats], path, content string) (bool, error) {
	if reads == nil || stats == nil {
		return false, ErrUnsupportedHost
	}
	if _, ok := reads.Load(path); ok {
		return false, nil
	}
	stats.Store(path, Entry[*Stats]{Value: FabricateStats(content)})
	reads.Store(path, Entry[string]{Value: content})
	return true, nil
}
