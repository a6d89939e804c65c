package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
)

const (
	journalExt = ".jsonl"
	tempDir    = ".tmp"
)

// Open builds a Store on disk under the configured base path. The journal
// is not read until Load is called.
func Open(cfg Config) (*Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	b, err := NewDiskBackend(cfg.BasePath())
	if err != nil {
		return nil, err
	}
	return New(b, WithOrder(cfg.Order())), nil
}

// DiskBackend keeps each key in its own file directly under the base path.
// Writes go through a temp file in the same tree and are renamed into place.
type DiskBackend struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskBackend creates the base directory if needed. A leading ~ is
// expanded to the user's home directory.
func NewDiskBackend(basePath string) (*DiskBackend, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("store: base path required")
	}
	expanded, err := homedir.Expand(basePath)
	if err != nil {
		return nil, fmt.Errorf("store: expand %s: %w", basePath, err)
	}
	if err := os.MkdirAll(expanded, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &DiskBackend{
		d: diskv.New(diskv.Options{
			BasePath:          expanded,
			TempDir:           filepath.Join(expanded, tempDir),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			FilePerm:          0o644,
			PathPerm:          0o755,
		}),
		basePath: expanded,
	}, nil
}

func (b *DiskBackend) Has(key string) bool {
	return b.d.Has(key)
}

func (b *DiskBackend) Read(key string) ([]byte, error) {
	return b.d.Read(key)
}

// Write replaces key atomically and syncs it before the rename.
func (b *DiskBackend) Write(key string, data []byte) error {
	return b.d.WriteStream(key, bytes.NewReader(data), true)
}

// Locate returns the file path for key.
func (b *DiskBackend) Locate(key string) string {
	return filepath.Join(b.basePath, key+journalExt)
}

func (b *DiskBackend) BasePath() string {
	return b.basePath
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key + journalExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, journalExt)
}
