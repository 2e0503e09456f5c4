package vfs

import (
	"errors"
	"io/fs"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPath    = "/project/node_modules/dynamic-vendor/dynamicImporter"
	testContent = "export const dynamicImporter = [];\n"
)

func TestInject(t *testing.T) {
	reads, stats := NewStorage[string](), NewStorage[*Stats]()

	wrote, err := Inject(reads, stats, testPath, testContent)
	require.NoError(t, err)
	assert.True(t, wrote)

	read, ok := reads.Load(testPath)
	require.True(t, ok)
	assert.NoError(t, read.Err)
	assert.Equal(t, testContent, read.Value)

	stat, ok := stats.Load(testPath)
	require.True(t, ok)
	assert.NoError(t, stat.Err)
	assert.True(t, stat.Value.IsFile())
	assert.Equal(t, int64(len(testContent)), stat.Value.Size)
}

func TestInjectIsIdempotent(t *testing.T) {
	freezeClock(t, time.Unix(100, 0))
	reads, stats := NewStorage[string](), NewStorage[*Stats]()

	_, err := Inject(reads, stats, testPath, testContent)
	require.NoError(t, err)
	firstRead, _ := reads.Load(testPath)
	firstStat, _ := stats.Load(testPath)

	freezeClock(t, time.Unix(200, 0))
	wrote, err := Inject(reads, stats, testPath, "export const dynamicImporter = [() => import(\"x\")];\n")
	require.NoError(t, err)
	assert.False(t, wrote)

	secondRead, _ := reads.Load(testPath)
	secondStat, _ := stats.Load(testPath)
	assert.Equal(t, firstRead, secondRead)
	assert.Same(t, firstStat.Value, secondStat.Value)
	assert.Equal(t, 1, reads.Len())
	assert.Equal(t, 1, stats.Len())
}

func TestInjectUnsupportedHost(t *testing.T) {
	_, err := Inject(nil, NewStorage[*Stats](), testPath, testContent)
	assert.ErrorIs(t, err, ErrUnsupportedHost)

	_, err = Inject(NewStorage[string](), nil, testPath, testContent)
	assert.ErrorIs(t, err, ErrUnsupportedHost)
}

type legacyHost struct{}

func TestProbe(t *testing.T) {
	reads, stats, err := Probe(New())
	require.NoError(t, err)
	assert.NotNil(t, reads)
	assert.NotNil(t, stats)

	_, _, err = Probe(legacyHost{})
	assert.ErrorIs(t, err, ErrUnsupportedHost)

	_, _, err = Probe(&FileSystem{})
	assert.ErrorIs(t, err, ErrUnsupportedHost)

	var missing *FileSystem
	_, err = missing.Inject(testPath, testContent)
	assert.ErrorIs(t, err, ErrUnsupportedHost)
}

func TestFileSystem(t *testing.T) {
	fsys := New()
	assert.False(t, fsys.Has(testPath))

	_, err := fsys.ReadFile(testPath)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = fsys.Stat(testPath)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	wrote, err := fsys.Inject(testPath, testContent)
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.True(t, fsys.Has(testPath))

	content, err := fsys.ReadFile(testPath)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	stat, err := fsys.Stat(testPath)
	require.NoError(t, err)
	assert.True(t, stat.IsFile())

	fsys.Purge()
	assert.False(t, fsys.Has(testPath))
	_, err = fsys.Stat(testPath)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileSystemCachedError(t *testing.T) {
	fsys := New()
	broken := errors.New("broken")
	fsys.reads.Store(testPath, Entry[string]{Err: broken})
	fsys.stats.Store(testPath, Entry[*Stats]{Err: broken})

	_, err := fsys.ReadFile(testPath)
	assert.ErrorIs(t, err, broken)
	_, err = fsys.Stat(testPath)
	assert.ErrorIs(t, err, broken)

	wrote, err := fsys.Inject(testPath, testContent)
	require.NoError(t, err)
	assert.False(t, wrote)
}

func TestFileSystemConcurrentInject(t *testing.T) {
	fsys := New()
	var writes atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wrote, err := fsys.Inject(testPath, testContent)
			assert.NoError(t, err)
			if wrote {
				writes.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), writes.Load())
}

func TestStoragePurgePaths(t *testing.T) {
	s := NewStorage[string]()
	s.Store("a", Entry[string]{Value: "1"})
	s.Store("b", Entry[string]{Value: "2"})
	s.Purge("a")
	_, ok := s.Load("a")
	assert.False(t, ok)
	_, ok = s.Load("b")
	assert.True(t, ok)

	var zero Storage[string]
	zero.Store("c", Entry[string]{Value: "3"})
	assert.Equal(t, 1, zero.Len())
}
