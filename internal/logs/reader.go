package logs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// DefaultChunkSize caps a single backward read.
const DefaultChunkSize = 8192

// ErrRead marks filesystem failures while reading the watched file.
var ErrRead = errors.New("read log tail")

// Reader returns the most recent lines of a file.
type Reader struct {
	fs        afero.Fs
	chunkSize int
}

// NewReader constructs a Reader. A nil fs uses the OS filesystem and a
// non-positive chunkSize uses DefaultChunkSize.
func NewReader(fs afero.Fs, chunkSize int) *Reader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Reader{fs: fs, chunkSize: chunkSize}
}

// LastLines returns up to n non-blank lines from the end of path on fs,
// oldest first, reading in DefaultChunkSize chunks. A nil fs reads the OS
// filesystem.
func LastLines(fs afero.Fs, path string, n int) ([]string, error) {
	return NewReader(fs, DefaultChunkSize).LastLines(path, n)
}

// LastLines returns up to n non-blank lines from the end of path, oldest
// first. A missing or empty file yields an empty slice and no error.
func (r *Reader) LastLines(path string, n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}
	info, err := r.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: stat %s: %w", ErrRead, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrRead, path)
	}
	if info.Size() == 0 {
		return []string{}, nil
	}

	file, err := r.fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: open %s: %w", ErrRead, path, err)
	}
	defer file.Close()

	// newest first until the final reversal
	collected := make([]string, 0, n)
	var partial []byte
	position := info.Size()
	for position > 0 && len(collected) < n {
		size := int64(r.chunkSize)
		if size > position {
			size = position
		}
		position -= size

		buf := make([]byte, int(size), int(size)+len(partial))
		if _, err := file.ReadAt(buf, position); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: read %s at %d: %w", ErrRead, path, position, err)
		}
		buf = append(buf, partial...)

		// buf[:first] is a fragment whose start lies in an earlier chunk
		first := bytes.IndexByte(buf, '\n')
		if first < 0 {
			partial = buf
			continue
		}
		partial = append([]byte(nil), buf[:first]...)

		end := len(buf)
		for i := end - 1; i >= first && len(collected) < n; i-- {
			if buf[i] != '\n' {
				continue
			}
			if line := decodeLine(buf[i+1 : end]); !isBlank(line) {
				collected = append(collected, line)
			}
			end = i
		}
	}
	if position == 0 && len(collected) < n {
		if line := decodeLine(partial); !isBlank(line) {
			collected = append(collected, line)
		}
	}

	for i, j := 0, len(collected)-1; i < j; i, j = i+1, j-1 {
		collected[i], collected[j] = collected[j], collected[i]
	}
	return collected, nil
}
