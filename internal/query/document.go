package query

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrNotAFile     = errors.New("path is not a regular file")
	ErrPermission   = errors.New("permission denied accessing file")
	ErrEncoding     = errors.New("file is not valid UTF-8")
)

// LoadDocument reads and parses a JSON document from a file path,
// returning the parsed value and the file size in bytes. Failure kinds
// are checked in order: missing path, not a regular file, permission,
// encoding, JSON parse. The size is reported even when parsing fails,
// since it is known once the file has been read.
func LoadDocument(path string) (any, int64, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, 0, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	case errors.Is(err, os.ErrPermission):
		return nil, 0, fmt.Errorf("%w: %s", ErrPermission, path)
	case err != nil:
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, 0, fmt.Errorf("%w: %s", ErrNotAFile, path)
	}

	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrPermission):
		return nil, 0, fmt.Errorf("%w: %s", ErrPermission, path)
	case err != nil:
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}

	size := int64(len(content))
	if !utf8.Valid(content) {
		return nil, size, fmt.Errorf("%w: %s", ErrEncoding, path)
	}

	document, err := ParseDocument(string(content))
	if err != nil {
		return nil, size, fmt.Errorf("error parsing JSON file: %w", err)
	}
	return document, size, nil
}
