package vfs

import (
	"io/fs"
	"time"
)

// File type bits, POSIX values. Defined here so the record reads the same on
// every GOOS.
const (
	S_IFMT   = 0o170000
	S_IFSOCK = 0o140000
	S_IFLNK  = 0o120000
	S_IFREG  = 0o100000
	S_IFBLK  = 0o060000
	S_IFDIR  = 0o040000
	S_IFCHR  = 0o020000
	S_IFIFO  = 0o010000
)

// Stats is a stat(2)-shaped record for a file that only exists in memory.
type Stats struct {
	Dev       uint64
	Ino       uint64
	RawMode   uint32
	Nlink     uint64
	Uid       uint32
	Gid       uint32
	Rdev      uint64
	Size      int64
	Blksize   int64
	Blocks    int64
	Atime     time.Time
	Mtime     time.Time
	Ctime     time.Time
	Birthtime time.Time
}

// now is swapped in tests.
var now = time.Now

// FabricateStats describes content as a regular 0644 file, stamped with the
// current instant.
func FabricateStats(content string) *Stats {
	t := now()
	size := int64(len(content))
	return &Stats{
		Dev:       8675309,
		Ino:       44700000,
		RawMode:   S_IFREG | 0o644,
		Nlink:     1,
		Uid:       501,
		Gid:       20,
		Rdev:      0,
		Size:      size,
		Blksize:   4096,
		Blocks:    (size + 511) / 512,
		Atime:     t,
		Mtime:     t,
		Ctime:     t,
		Birthtime: t,
	}
}

func (s *Stats) is(typ uint32) bool {
	return s.RawMode&S_IFMT == typ
}

func (s *Stats) IsFile() bool            { return s.is(S_IFREG) }
func (s *Stats) IsDirectory() bool       { return s.is(S_IFDIR) }
func (s *Stats) IsBlockDevice() bool     { return s.is(S_IFBLK) }
func (s *Stats) IsCharacterDevice() bool { return s.is(S_IFCHR) }
func (s *Stats) IsSymbolicLink() bool    { return s.is(S_IFLNK) }
func (s *Stats) IsFIFO() bool            { return s.is(S_IFIFO) }
func (s *Stats) IsSocket() bool          { return s.is(S_IFSOCK) }

// Mode maps the raw bits onto fs.FileMode.
func (s *Stats) Mode() fs.FileMode {
	mode := fs.FileMode(s.RawMode & 0o777)
	switch s.RawMode & S_IFMT {
	case S_IFDIR:
		mode |= fs.ModeDir
	case S_IFLNK:
		mode |= fs.ModeSymlink
	case S_IFBLK:
		mode |= fs.ModeDevice
	case S_IFCHR:
		mode |= fs.ModeDevice | fs.ModeCharDevice
	case S_IFIFO:
		mode |= fs.ModeNamedPipe
	case S_IFSOCK:
		mode |= fs.ModeSocket
	}
	return mode
}

// FileInfo presents the record as an fs.FileInfo for name.
func (s *Stats) FileInfo(name string) fs.FileInfo {
	return fileInfo{name, s}
}

type fileInfo struct {
	name  string
	stats *Stats
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.stats.Size }
func (fi fileInfo) Mode() fs.FileMode  { return fi.stats.Mode() }
func (fi fileInfo) ModTime() time.Time { return fi.stats.Mtime }
func (fi fileInfo) IsDir() bool        { return fi.stats.IsDirectory() }
func (fi fileInfo) Sys() any           { return fi.stats }
