package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
)

// LocalStorage writes files below a public directory that the router serves statically.
type LocalStorage struct {
	root string
	dirs []string
}

func NewLocalStorage(root string, dirs ...string) (*LocalStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload root: %w", err)
	}
	s := &LocalStorage{root: abs, dirs: normalizeDirs(dirs)}
	for _, d := range s.dirs {
		if err := os.MkdirAll(filepath.Join(abs, filepath.FromSlash(d)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory %s: %w", d, err)
		}
	}
	return s, nil
}

func (s *LocalStorage) Save(ctx context.Context, dir, name string, r io.Reader) (string, error) {
	d, err := cleanDir(dir, s.dirs)
	if err != nil || !validName(name) {
		return "", ErrInvalidPath
	}

	target := filepath.Join(s.root, filepath.FromSlash(d), name)
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	publicPath := "/" + d + "/" + name
	logger.Debug("File stored on disk", map[string]interface{}{
		"path": publicPath,
	})
	return publicPath, nil
}

func (s *LocalStorage) Delete(ctx context.Context, publicPath string) error {
	d, name, err := splitPublicPath(publicPath, s.dirs)
	if err != nil {
		return err
	}

	target := filepath.Join(s.root, filepath.FromSlash(d), name)
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func (s *LocalStorage) List(ctx context.Context, dir string) ([]Object, error) {
	d, err := cleanDir(dir, s.dirs)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, filepath.FromSlash(d)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	objects := make([]Object, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		objects = append(objects, Object{
			Path:    "/" + d + "/" + e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return objects, nil
}
