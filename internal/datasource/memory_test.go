package datasource

import (
	"context"
	"testing"
)

func TestMemoryContract(t *testing.T) {
	runContractTests(t, newFixtureMemory)
}

func TestMemoryMkdirEmptyDir(t *testing.T) {
	ctx := context.Background()
	m := NewMemory().Mkdir("empty/sub")
	ok, err := m.IsDir(ctx, "empty/sub")
	if err != nil || !ok {
		t.Fatalf("IsDir(empty/sub) = %v, %v, want true, nil", ok, err)
	}
	names, err := m.ListDir(ctx, "empty/sub")
	if err != nil || len(names) != 0 {
		t.Fatalf("ListDir(empty/sub) = %v, %v, want empty, nil", names, err)
	}
}

func TestMemorySetCreatesParents(t *testing.T) {
	ctx := context.Background()
	m := NewMemory().Set("x/y/z.json", "{}")
	for _, dir := range []string{"x", "x/y"} {
		ok, err := m.IsDir(ctx, dir)
		if err != nil || !ok {
			t.Errorf("IsDir(%q) = %v, %v, want true, nil", dir, ok, err)
		}
	}
}
