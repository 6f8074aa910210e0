package datasource

import (
	"context"
	"path"
	"sort"
	"strings"
)

// Memory is an in-memory Source fixture for tests: a flat map of
// slash-separated path to file content, plus a set of known directories.
// Zero value is an empty source rooted at "".
type Memory struct {
	files map[string]string
	dirs  map[string]bool
}

// NewMemory returns an empty in-memory source.
func NewMemory() *Memory {
	return &Memory{
		files: map[string]string{},
		dirs:  map[string]bool{"": true},
	}
}

func clean(p string) string {
	p = strings.Trim(path.Clean("/"+p), "/")
	return p
}

// Set stores content at path, creating any missing parent directories.
// Returns the receiver so calls can be chained.
func (m *Memory) Set(filePath, content string) *Memory {
	if m.files == nil {
		m.files = map[string]string{}
	}
	if m.dirs == nil {
		m.dirs = map[string]bool{"": true}
	}
	p := clean(filePath)
	m.files[p] = content
	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		m.dirs[clean(dir)] = true
		if dir == path.Dir(dir) {
			break
		}
	}
	return m
}

// Mkdir records dir as an existing (possibly empty) directory.
func (m *Memory) Mkdir(dir string) *Memory {
	if m.dirs == nil {
		m.dirs = map[string]bool{"": true}
	}
	m.dirs[clean(dir)] = true
	return m
}

func (m *Memory) ListDir(ctx context.Context, dir string) ([]string, error) {
	prefix := clean(dir)
	seen := map[string]bool{}
	var names []string
	add := func(rel string) {
		name := rel
		if idx := strings.IndexByte(rel, '/'); idx >= 0 {
			name = rel[:idx]
		}
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for p := range m.files {
		if rel, ok := childOf(prefix, p); ok {
			add(rel)
		}
	}
	for d := range m.dirs {
		if d == "" || d == prefix {
			continue
		}
		if rel, ok := childOf(prefix, d); ok {
			add(rel)
		}
	}
	sort.Strings(names)
	return names, nil
}

func childOf(prefix, p string) (string, bool) {
	if prefix == "" {
		return p, true
	}
	if strings.HasPrefix(p, prefix+"/") {
		return p[len(prefix)+1:], true
	}
	return "", false
}

func (m *Memory) IsDir(ctx context.Context, p string) (bool, error) {
	return m.dirs[clean(p)], nil
}

func (m *Memory) IsFile(ctx context.Context, p string) (bool, error) {
	_, ok := m.files[clean(p)]
	return ok, nil
}

func (m *Memory) ReadToString(ctx context.Context, p string) (string, error) {
	content, ok := m.files[clean(p)]
	if !ok {
		return "", ErrNotExist
	}
	return content, nil
}
