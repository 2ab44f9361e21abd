// Package storage is the filesystem-like blob store that holds generated
// pages, the sitemap, page templates and uploaded images.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"sort"

	"github.com/spf13/afero"
)

// ErrNotFound is returned by ReadFile when the path does not exist.
var ErrNotFound = errors.New("blob not found")

type BlobStore interface {
	WriteFile(name string, data []byte) error
	ReadFile(name string) ([]byte, error)
	DeleteFile(name string) error
	Exists(name string) (bool, error)
	ListDir(dir string) ([]string, error)
}

// Blob implements BlobStore on top of an afero filesystem. Paths are slash
// separated and always resolved against the store root.
type Blob struct {
	fs afero.Fs
}

func New(fs afero.Fs) *Blob {
	return &Blob{fs: fs}
}

// NewLocal roots the store at dir on the local disk, creating it if needed.
func NewLocal(dir string) (*Blob, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create public dir: %w", err)
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// NewMemory is an in-memory store, used by tests and dry runs.
func NewMemory() *Blob {
	return New(afero.NewMemMapFs())
}

func clean(name string) string {
	return path.Clean("/" + name)
}

func (b *Blob) WriteFile(name string, data []byte) error {
	name = clean(name)
	if dir := path.Dir(name); dir != "/" {
		if err := b.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(b.fs, name, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (b *Blob) ReadFile(name string) ([]byte, error) {
	data, err := afero.ReadFile(b.fs, clean(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}

// DeleteFile removes name. Deleting a missing file is not an error.
func (b *Blob) DeleteFile(name string) error {
	err := b.fs.Remove(clean(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

func (b *Blob) Exists(name string) (bool, error) {
	return afero.Exists(b.fs, clean(name))
}

// ListDir returns the sorted names of regular files directly under dir.
// A missing directory yields an empty list.
func (b *Blob) ListDir(dir string) ([]string, error) {
	infos, err := afero.ReadDir(b.fs, clean(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		names = append(names, fi.Name())
	}
	sort.Strings(names)
	return names, nil
}

// FileSystem exposes the store for http.FileServer.
func (b *Blob) FileSystem() http.FileSystem {
	return afero.NewHttpFs(b.fs).Dir("/")
}
