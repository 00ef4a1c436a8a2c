// Package filex contains small filesystem helpers for the CLI.
package filex

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ErrFileTooLarge is returned by ReadLimited when the file exceeds the limit.
var ErrFileTooLarge = errors.New("file too large")

// EnsureDir creates dir (and parents) with 0770 permissions if it does not
// exist and returns its absolute path. A relative dir is resolved against
// the working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// ReadLimited reads the whole file at path if it is at most limit bytes and
// sniffs its content type from the first 512 bytes.
func ReadLimited(path string, limit int64) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Errorf("%s: %w (limit %d bytes)", path, ErrFileTooLarge, limit)
	}

	return data, http.DetectContentType(data), nil
}
