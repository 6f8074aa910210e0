package main

import (
	"bytes"
	"strings"
	"testing"

	"questgraph/config"
)

func TestScoreCmdOutputsSortedEntries(t *testing.T) {
	var out bytes.Buffer
	app = &App{DB: testDB(t), Cfg: config.Default(), Out: &out, Err: &out}

	cmd := newScoreCmd()
	cmd.PreRun(cmd, nil)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("RunE: %v", err)
	}
	if !strings.Contains(out.String(), "First") {
		t.Errorf("output = %q, want to mention First", out.String())
	}
}

func TestScoreCmdJSON(t *testing.T) {
	var out bytes.Buffer
	app = &App{DB: testDB(t), Cfg: config.Default(), Out: &out, Err: &out, JSON: true}

	cmd := newScoreCmd()
	cmd.PreRun(cmd, nil)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("RunE: %v", err)
	}
	if !strings.Contains(out.String(), `"id"`) {
		t.Errorf("output = %q, want JSON entries", out.String())
	}
}
