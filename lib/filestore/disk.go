package filestore

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// DiskStore keeps blobs on the local filesystem under a root directory.
type DiskStore struct {
	Root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{Root: root}
}

func (s *DiskStore) Put(ctx context.Context, path string, r io.Reader) error {
	full := filepath.Join(s.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return err
	}
	return f.Close()
}

func (s *DiskStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.Root, filepath.FromSlash(path)))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *DiskStore) Delete(ctx context.Context, path string) error {
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(path)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var _ Store = (*DiskStore)(nil)
