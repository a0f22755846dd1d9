package blob

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/nordgard/ansuz/internal/checksum"
)

// refRe matches a hex SHA-256 digest. Anything else is rejected before it
// can reach the file system.
var refRe = regexp.MustCompile(`^[0-9a-f]{64}$`)

// FS implements Store backed by a flat directory of content-addressed
// files: the reference for a blob is the hex SHA-256 of its bytes. Storing
// the same bytes twice yields the same reference and a single file.
type FS struct {
	root string // absolute path to the blob directory
}

// NewFS creates an FS store rooted at the given directory, creating it if
// needed.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("blob: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create root: %w", err)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute blob directory, for hosts that watch it.
func (f *FS) Root() string {
	return f.root
}

func (f *FS) path(ref string) (string, error) {
	if !refRe.MatchString(ref) {
		return "", fmt.Errorf("blob: invalid ref: %q", ref)
	}
	return filepath.Join(f.root, ref), nil
}

// Put writes data atomically (tmp file, fsync, rename) and returns its
// content-addressed reference. The mime type is carried by the caller's
// bookkeeping row, not by the blob store.
func (f *FS) Put(data []byte, _ string) (string, error) {
	ref := checksum.Sum(data)
	abs, err := f.path(ref)
	if err != nil {
		return "", err
	}
	if _, statErr := os.Stat(abs); statErr == nil {
		return ref, nil // identical content already stored
	}

	tmp, err := os.CreateTemp(f.root, ".ansuz-tmp-*")
	if err != nil {
		return "", fmt.Errorf("blob: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return "", fmt.Errorf("blob: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("blob: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("blob: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return "", fmt.Errorf("blob: rename: %w", err)
	}
	success = true
	return ref, nil
}

// Get returns the bytes for ref, or nil when the blob is absent.
func (f *FS) Get(ref string) ([]byte, error) {
	abs, err := f.path(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("blob: read %s: %w", ref, err)
	}
	return data, nil
}

// Delete removes the blob file. Absent refs are a no-op.
func (f *FS) Delete(ref string) error {
	abs, err := f.path(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("blob: delete %s: %w", ref, err)
	}
	return nil
}

// Exists reports whether the blob file is present.
func (f *FS) Exists(ref string) bool {
	abs, err := f.path(ref)
	if err != nil {
		return false
	}
	_, statErr := os.Stat(abs)
	return statErr == nil
}

// Refs lists every stored reference.
func (f *FS) Refs() ([]string, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("blob: list: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !refRe.MatchString(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}

var _ Store = (*FS)(nil)
