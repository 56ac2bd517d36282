package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

var (
	// ErrInvalidPath is returned for paths that escape the upload directories
	ErrInvalidPath = errors.New("invalid upload path")
	ErrNotFound    = errors.New("stored file not found")
)

// Object is a stored file as reported by List
type Object struct {
	Path    string // root-relative public path, e.g. /img/upload/<name>
	Size    int64
	ModTime time.Time
}

// Storage persists uploaded files and serves them under a public path.
// Delete treats a missing file as success.
type Storage interface {
	Save(ctx context.Context, dir, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, publicPath string) error
	List(ctx context.Context, dir string) ([]Object, error)
}

// cleanDir normalizes an upload directory like "img/upload" and rejects anything
// outside the allowed set.
func cleanDir(dir string, allowed []string) (string, error) {
	d := strings.Trim(path.Clean("/"+dir), "/")
	for _, a := range allowed {
		if d == a {
			return d, nil
		}
	}
	return "", ErrInvalidPath
}

// validName accepts a single path element without separators or dot segments.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}

// splitPublicPath turns "/img/upload/x.png" into ("img/upload", "x.png") when
// the directory is one of the allowed upload directories.
func splitPublicPath(publicPath string, allowed []string) (string, string, error) {
	if !strings.HasPrefix(publicPath, "/") || strings.Contains(publicPath, "..") {
		return "", "", ErrInvalidPath
	}
	cleaned := path.Clean(publicPath)
	dir, name := path.Split(cleaned)
	d, err := cleanDir(dir, allowed)
	if err != nil || !validName(name) {
		return "", "", ErrInvalidPath
	}
	return d, name, nil
}

func normalizeDirs(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d = strings.Trim(path.Clean("/"+d), "/"); d != "" {
			out = append(out, d)
		}
	}
	return out
}
