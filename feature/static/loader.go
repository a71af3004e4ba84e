package static

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

var (
	// ErrNotFound is returned when the requested page does not exist.
	ErrNotFound = errors.New("page not found")
	// ErrIO is returned when the page exists but cannot be read.
	ErrIO = errors.New("page unreadable")
)

// Loader reads whole pages from a filesystem.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader reading from fsys.
func NewLoader(fsys afero.Fs) *Loader {
	return &Loader{fs: fsys}
}

// NewOsLoader creates a read-only loader rooted at the given directory.
func NewOsLoader(root string) (*Loader, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve document root %q: %w", root, err)
	}
	return NewLoader(afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), abs))), nil
}

// Load reads the named page into memory. The buffer is sized from the
// reported file size; a file that turns out shorter is returned truncated
// to the bytes actually read.
func (l *Loader) Load(name string) ([]byte, error) {
	f, err := l.fs.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, name, err)
		}
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrIO, name)
	}

	buf := make([]byte, info.Size())
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, name, err)
	}
	return buf[:n], nil
}
