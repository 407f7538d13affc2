package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each artifact in its own file under one directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// the first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: filepath.Clean(dir)}
}

// Path returns the file path of a named artifact.
func (s *FileStore) Path(name string) string { return filepath.Join(s.dir, name) }

// rename is swapped out in tests to simulate a failing filesystem.
var rename = os.Rename

// Save writes all three artifacts to temporary files and then swaps them in.
// The previous artifacts are moved aside first and restored if any rename
// fails, so a reader sees either the old set or the new set, never a mix.
func (s *FileStore) Save(b *Bundle) error {
	blobs, err := encode(b)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("artifact: create dir: %w", err)
	}

	tmp := make(map[string]string, len(names))
	cleanup := func() {
		for _, p := range tmp {
			_ = os.Remove(p)
		}
	}
	for _, name := range names {
		f, err := os.CreateTemp(s.dir, name+".*.tmp")
		if err != nil {
			cleanup()
			return &Error{Artifact: name, Err: err}
		}
		tmp[name] = f.Name()
		_, werr := f.Write(blobs[name])
		cerr := f.Close()
		if werr != nil || cerr != nil {
			cleanup()
			return &Error{Artifact: name, Err: firstErr(werr, cerr)}
		}
	}

	prev := make(map[string]string, len(names))
	restore := func() {
		for _, name := range names {
			if _, swapped := tmp[name]; !swapped {
				_ = os.Remove(s.Path(name))
			}
			if p, ok := prev[name]; ok {
				_ = rename(p, s.Path(name))
			}
		}
	}
	for _, name := range names {
		if _, err := os.Stat(s.Path(name)); err != nil {
			continue
		}
		p := s.Path(name) + ".prev"
		if err := rename(s.Path(name), p); err != nil {
			restore()
			cleanup()
			return &Error{Artifact: name, Err: err}
		}
		prev[name] = p
	}
	for _, name := range names {
		if err := rename(tmp[name], s.Path(name)); err != nil {
			restore()
			cleanup()
			return &Error{Artifact: name, Err: err}
		}
		delete(tmp, name)
	}
	for _, p := range prev {
		_ = os.Remove(p)
	}
	return nil
}

// Load reads the three artifacts back.
func (s *FileStore) Load() (*Bundle, error) {
	blobs := make(map[string][]byte, len(names))
	for _, name := range names {
		b, err := os.ReadFile(s.Path(name))
		if err != nil {
			return nil, &Error{Artifact: name, Err: err}
		}
		blobs[name] = b
	}
	return decode(blobs)
}

// Close is a no-op; it exists to satisfy Store.
func (s *FileStore) Close() error { return nil }

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
