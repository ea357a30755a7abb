package diskstats

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoData is returned when the source opens but has no first line.
var ErrNoData = errors.New("no data")

// Source yields the current summary record.
type Source interface {
	Read() (*Record, error)
}

// FileSource reads the first line of a diskstats-formatted file on every call.
type FileSource struct {
	// path is the statistics file location.
	path string
}

// NewFileSource creates a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{
		path: filepath.Clean(path),
	}
}

// Path returns the file the source reads.
func (s *FileSource) Path() string {
	return s.path
}

// Read opens the file, decodes its first line and closes it again.
func (s *FileSource) Read() (*Record, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		if err = scanner.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", s.path, err)
		}

		return nil, fmt.Errorf("read %s: %w", s.path, ErrNoData)
	}

	record, err := ParseRecord(scanner.Text())
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}

	return record, nil
}
