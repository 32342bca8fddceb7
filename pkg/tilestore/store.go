// Package tilestore provides the local on-disk store for canopy height
// GeoTIFF tiles. A tile present on disk is authoritative: the proxy
// serves it directly and never consults the response cache or upstream.
package tilestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrTileNotFound indicates no tile file exists for the quadkey.
var ErrTileNotFound = errors.New("tile not found")

// Store serves canopy tiles from a local directory.
// Layout: {dir}/{quadkey}.tif
type Store struct {
	dir string
}

// New creates a tile store rooted at dir. The directory is created if
// it does not exist.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create tile directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the file path for a quadkey.
func (s *Store) Path(quadkey string) string {
	return filepath.Join(s.dir, quadkey+".tif")
}

// Open opens the tile file for a quadkey, returning the reader and the
// file size. Returns ErrTileNotFound when no file exists.
func (s *Store) Open(quadkey string) (io.ReadCloser, int64, error) {
	f, err := os.Open(s.Path(quadkey))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrTileNotFound
		}
		return nil, 0, fmt.Errorf("open tile: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat tile: %w", err)
	}

	return f, info.Size(), nil
}

// Put writes a tile atomically (temp file + rename), so a concurrent
// Open never observes a partial tile.
func (s *Store) Put(quadkey string, data []byte) error {
	path := s.Path(quadkey)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tile: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename tile: %w", err)
	}

	return nil
}
