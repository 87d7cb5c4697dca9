package infra

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/afero"
)

// AferoBlobStore keeps upload payloads on an afero filesystem: the real
// disk in production, MemMapFs in tests.
type AferoBlobStore struct {
	fs afero.Fs
}

func NewDiskBlobStore(dir string) (*AferoBlobStore, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &AferoBlobStore{fs: afero.NewBasePathFs(osFs, dir)}, nil
}

func NewMemBlobStore() *AferoBlobStore {
	return &AferoBlobStore{fs: afero.NewMemMapFs()}
}

func (s *AferoBlobStore) Save(key string, r io.Reader) (int64, error) {
	f, err := s.fs.Create(key)
	if err != nil {
		return 0, fmt.Errorf("create blob %s: %w", key, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = s.fs.Remove(key)
		return 0, fmt.Errorf("write blob %s: %w", key, err)
	}
	return n, nil
}

// Remove is idempotent: a blob that is already gone is not an error.
func (s *AferoBlobStore) Remove(key string) error {
	if err := s.fs.Remove(key); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob %s: %w", key, err)
	}
	return nil
}

func (s *AferoBlobStore) Open(key string) (io.ReadCloser, error) {
	return s.fs.Open(key)
}

// HTTPFs exposes the store for the /uploads static route.
func (s *AferoBlobStore) HTTPFs() http.FileSystem {
	return afero.NewHttpFs(s.fs)
}
