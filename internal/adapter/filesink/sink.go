package filesink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink saves download archives into a directory.
type Sink struct {
	dir string
}

// New creates a Sink rooted at dir. The directory is created on first save.
func New(dir string) *Sink {
	return &Sink{dir: dir}
}

// Save streams r into dir/name through a temporary file so a failed download
// never leaves a truncated archive behind. It returns the final path and the
// number of bytes written.
func (s *Sink) Save(name string, r io.Reader) (string, int64, error) {
	if name == "" || filepath.Base(name) != name {
		return "", 0, fmt.Errorf("invalid file name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create download dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.part")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after rename

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", 0, fmt.Errorf("write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("close temp file: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", 0, fmt.Errorf("rename archive: %w", err)
	}
	return path, n, nil
}
