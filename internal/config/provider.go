package config

import (
	"os"
	"path/filepath"
)

// Paths captures resolved locations for the override store.
type Paths struct {
	ConfigDir  string // directory holding the override file, typically ~/.config/questgraph
	ConfigFile string // path to overrides.yaml
}

// ResolvePaths locates the user-level override store under the OS config
// directory (os.UserConfigDir), falling back to the current directory if
// that cannot be determined (e.g. HOME is unset).
func ResolvePaths() Paths {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = "."
	}
	dir = filepath.Join(dir, "questgraph")
	return Paths{
		ConfigDir:  dir,
		ConfigFile: filepath.Join(dir, "overrides.yaml"),
	}
}
