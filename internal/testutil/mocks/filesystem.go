package mocks

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"sync"
	"time"

	"github.com/pireader/provision/internal/ports"
)

type fileEntry struct {
	data []byte
	mode os.FileMode
}

// FileSystem is an in-memory test double for ports.FileSystem.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string]fileEntry
	dirs  map[string]bool

	// FailWrites, when set, makes WriteFile return this error.
	FailWrites error
}

// NewFileSystem creates an empty in-memory FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string]fileEntry),
		dirs:  make(map[string]bool),
	}
}

// AddFile seeds a file with contents.
func (m *FileSystem) AddFile(p string, data []byte, mode os.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path.Clean(p)] = fileEntry{data: data, mode: mode}
}

// AddDir seeds a directory.
func (m *FileSystem) AddDir(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path.Clean(p)] = true
}

// ReadFile returns a seeded file's contents.
func (m *FileSystem) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.files[path.Clean(p)]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", p, os.ErrNotExist)
	}
	return entry.data, nil
}

// WriteFile stores a file.
func (m *FileSystem) WriteFile(p string, data []byte, perm os.FileMode) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path.Clean(p)] = fileEntry{data: data, mode: perm}
	return nil
}

// Exists reports whether a file or directory was seeded or written.
func (m *FileSystem) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	clean := path.Clean(p)
	if _, ok := m.files[clean]; ok {
		return true
	}
	return m.dirs[clean]
}

// IsDir reports whether a path is a directory.
func (m *FileSystem) IsDir(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirs[path.Clean(p)]
}

// MkdirAll records a directory and its parents.
func (m *FileSystem) MkdirAll(p string, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clean := path.Clean(p)
	for clean != "/" && clean != "." {
		m.dirs[clean] = true
		clean = path.Dir(clean)
	}
	return nil
}

// Remove deletes a file or directory.
func (m *FileSystem) Remove(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clean := path.Clean(p)
	if _, ok := m.files[clean]; ok {
		delete(m.files, clean)
		return nil
	}
	if m.dirs[clean] {
		delete(m.dirs, clean)
		return nil
	}
	return fmt.Errorf("remove %s: %w", p, os.ErrNotExist)
}

// Chmod updates a file's mode bits.
func (m *FileSystem) Chmod(p string, mode os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clean := path.Clean(p)
	entry, ok := m.files[clean]
	if !ok {
		return fmt.Errorf("chmod %s: %w", p, os.ErrNotExist)
	}
	entry.mode = mode
	m.files[clean] = entry
	return nil
}

// FileHash returns the SHA256 of a file's contents.
func (m *FileSystem) FileHash(p string) (string, error) {
	data, err := m.ReadFile(p)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// Stat returns metadata about a file or directory.
func (m *FileSystem) Stat(p string) (ports.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	clean := path.Clean(p)
	if entry, ok := m.files[clean]; ok {
		return ports.FileInfo{
			Size:    int64(len(entry.data)),
			Mode:    entry.mode,
			ModTime: time.Now(),
		}, nil
	}
	if m.dirs[clean] {
		return ports.FileInfo{Mode: os.ModeDir | 0o755, IsDir: true}, nil
	}
	return ports.FileInfo{}, fmt.Errorf("stat %s: %w", p, os.ErrNotExist)
}

// Files returns the paths of all stored files, for assertions.
func (m *FileSystem) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	return paths
}

// ContentOf returns a stored file's contents as a string, for assertions.
func (m *FileSystem) ContentOf(p string) string {
	data, err := m.ReadFile(p)
	if err != nil {
		return ""
	}
	return string(data)
}

// ModeOf returns a stored file's mode bits, for assertions.
func (m *FileSystem) ModeOf(p string) os.FileMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.files[path.Clean(p)]
	if !ok {
		return 0
	}
	return entry.mode
}

var _ ports.FileSystem = (*FileSystem)(nil)
