package datasource

import (
	"context"
	"os"
	"path/filepath"
)

// OS is a Source backed by the real filesystem, rooted at Root.
type OS struct {
	Root string
}

// NewOS returns a Source rooted at root.
func NewOS(root string) *OS {
	return &OS{Root: root}
}

func (o *OS) resolve(path string) string {
	return filepath.Join(o.Root, filepath.FromSlash(path))
}

func (o *OS) ListDir(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(o.resolve(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (o *OS) IsDir(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(o.resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (o *OS) IsFile(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(o.resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (o *OS) ReadToString(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(o.resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotExist
		}
		return "", err
	}
	return string(data), nil
}
