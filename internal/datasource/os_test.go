package datasource

import (
	"os"
	"path/filepath"
	"testing"
)

func newFixtureOS(t *testing.T) Source {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "a", "empty"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "a", "b.json"), []byte(`{"x":1}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return NewOS(root)
}

func TestOSContract(t *testing.T) {
	runContractTests(t, func() Source { return newFixtureOS(t) })
}
