package testutil

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arthur-debert/dotup/pkg/host"
)

// MemoryFS implements host.FS with in-memory storage
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	perms map[string]fs.FileMode
	dirs  map[string]bool

	// Error injection, keyed by path
	errorPaths map[string]error
}

var _ host.FS = (*MemoryFS)(nil)

// NewMemoryFS creates an empty in-memory filesystem
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files:      make(map[string][]byte),
		perms:      make(map[string]fs.FileMode),
		dirs:       make(map[string]bool),
		errorPaths: make(map[string]error),
	}
}

// InjectError makes any operation on path fail with err
func (m *MemoryFS) InjectError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[path] = err
}

// Stat implements host.FS
func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.errorPaths[name]; err != nil {
		return nil, err
	}
	if content, ok := m.files[name]; ok {
		return &memFileInfo{name: filepath.Base(name), size: int64(len(content)), mode: m.perms[name]}, nil
	}
	if m.dirs[name] {
		return &memFileInfo{name: filepath.Base(name), mode: fs.ModeDir | 0755, dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

// ReadFile implements host.FS
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.errorPaths[name]; err != nil {
		return nil, err
	}
	content, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return bytes.Clone(content), nil
}

// WriteFile implements host.FS
func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.errorPaths[name]; err != nil {
		return err
	}
	m.files[name] = bytes.Clone(data)
	m.perms[name] = perm
	return nil
}

// MkdirAll implements host.FS
func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.errorPaths[path]; err != nil {
		return err
	}
	for p := path; p != "/" && p != "." && p != ""; p = filepath.Dir(p) {
		m.dirs[p] = true
	}
	return nil
}

// Remove implements host.FS
func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.errorPaths[name]; err != nil {
		return err
	}
	if _, ok := m.files[name]; ok {
		delete(m.files, name)
		delete(m.perms, name)
		return nil
	}
	if m.dirs[name] {
		delete(m.dirs, name)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
}

// MkDir records a directory without creating parents, for seeding test
// fixtures
func (m *MemoryFS) MkDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
}

type memFileInfo struct {
	name string
	size int64
	mode fs.FileMode
	dir  bool
}

func (i *memFileInfo) Name() string       { return i.name }
func (i *memFileInfo) Size() int64        { return i.size }
func (i *memFileInfo) Mode() fs.FileMode  { return i.mode }
func (i *memFileInfo) ModTime() time.Time { return time.Time{} }
func (i *memFileInfo) IsDir() bool        { return i.dir }
func (i *memFileInfo) Sys() interface{}   { return nil }

var _ os.FileInfo = (*memFileInfo)(nil)
