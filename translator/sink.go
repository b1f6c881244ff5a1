package translator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Sink is where inputs are read from and translated files land.
type Sink interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Exists(path string) bool
}

// LocalSink uses the local file system, creating directories as needed.
type LocalSink struct{}

func (LocalSink) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (LocalSink) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (LocalSink) Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// fanOut writes the same bytes to every path.
func fanOut(sink Sink, data []byte, paths ...string) error {
	for _, p := range paths {
		if err := sink.WriteFile(p, data); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrIO, p, err)
		}
	}
	return nil
}
