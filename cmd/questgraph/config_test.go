package main

import (
	"bytes"
	"strings"
	"testing"

	"questgraph/config"
)

func setupConfigTestApp(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	app = &App{DB: testDB(t), Cfg: config.Default(), Out: &out, Err: &out}
	return &out
}

func TestConfigSetThenGet(t *testing.T) {
	out := setupConfigTestApp(t)

	setCmd := newConfigSetCmd()
	if err := setCmd.RunE(setCmd, []string{"importance.alpha", "0.7"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	out.Reset()
	getCmd := newConfigGetCmd()
	if err := getCmd.RunE(getCmd, []string{"importance.alpha"}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "0.7" {
		t.Errorf("got %q, want 0.7", got)
	}
}

func TestConfigGetMissingKey(t *testing.T) {
	out := setupConfigTestApp(t)

	cmd := newConfigGetCmd()
	if err := cmd.RunE(cmd, []string{"nonexistent.key"}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "nonexistent.key (not set)" {
		t.Errorf("got %q", got)
	}
}

func TestConfigSetRejectsInvalidAlpha(t *testing.T) {
	setupConfigTestApp(t)

	cmd := newConfigSetCmd()
	if err := cmd.RunE(cmd, []string{"importance.alpha", "2.5"}); err == nil {
		t.Fatalf("expected error for alpha out of range")
	}
}

func TestConfigListIncludesDefaults(t *testing.T) {
	out := setupConfigTestApp(t)

	cmd := newConfigListCmd()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "root = DefaultQuests") {
		t.Errorf("output = %q, want to contain default root", out.String())
	}
}

func TestConfigUnset(t *testing.T) {
	out := setupConfigTestApp(t)

	setCmd := newConfigSetCmd()
	if err := setCmd.RunE(setCmd, []string{"root", "Custom"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	unsetCmd := newConfigUnsetCmd()
	if err := unsetCmd.RunE(unsetCmd, []string{"root"}); err != nil {
		t.Fatalf("unset: %v", err)
	}

	out.Reset()
	getCmd := newConfigGetCmd()
	if err := getCmd.RunE(getCmd, []string{"root"}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "root (not set)" {
		t.Errorf("got %q, want root unset", got)
	}
}

func TestConfigValidatePassesOnCleanStore(t *testing.T) {
	out := setupConfigTestApp(t)

	cmd := newConfigValidateCmd()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out.String(), "valid") {
		t.Errorf("output = %q, want a validity message", out.String())
	}
}
