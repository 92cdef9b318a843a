package ledger

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Load reads and parses the ledger file at path.
func Load(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "opening", Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &IOError{Op: "reading", Path: path, Err: err}
	}
	return Deserialize(string(data))
}

// LoadOrNew is Load, except a missing file yields an empty ledger.
func LoadOrNew(path string) (*Ledger, error) {
	l, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	return l, err
}

// LoadInto replaces the contents of l with the ledger file at path.
// On any error l is left as it was.
func LoadInto(l *Ledger, path string) error {
	loaded, err := Load(path)
	if err != nil {
		return err
	}
	*l = *loaded
	return nil
}

// Save writes l to path, creating the parent directory if needed.
func Save(path string, l *Ledger) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &IOError{Op: "creating dir for", Path: path, Err: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "creating", Path: path, Err: err}
	}
	defer f.Close()

	if _, err := io.WriteString(f, l.Serialize()); err != nil {
		return &IOError{Op: "writing", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "closing", Path: path, Err: err}
	}
	return nil
}
