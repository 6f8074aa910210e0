// Package datasource defines the filesystem abstraction the quest database
// loader reads through. All engines (a real OS filesystem, an in-memory
// fixture for tests) implement the same Source interface.
package datasource

import (
	"context"
	"errors"
)

// ErrNotExist is returned by ReadToString when the path does not name a
// file known to the source.
var ErrNotExist = errors.New("datasource: path does not exist")

// Source defines the read-only filesystem operations the quest database
// loader needs. Paths are slash-separated and relative to the source's
// root; implementations must accept forward slashes regardless of host OS.
type Source interface {
	// ListDir returns the names of entries directly inside dir, in no
	// particular order. Returns an empty slice (not an error) if dir
	// does not exist or is empty.
	ListDir(ctx context.Context, dir string) ([]string, error)

	// IsDir reports whether path names a directory.
	IsDir(ctx context.Context, path string) (bool, error)

	// IsFile reports whether path names a regular file.
	IsFile(ctx context.Context, path string) (bool, error)

	// ReadToString returns the full contents of the file at path.
	// Returns ErrNotExist if path does not name a known file.
	ReadToString(ctx context.Context, path string) (string, error)
}
