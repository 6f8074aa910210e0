package main

import (
	"bytes"
	"strings"
	"testing"

	"questgraph/config"
)

func TestOrderCmdPrintsPrerequisites(t *testing.T) {
	var out bytes.Buffer
	app = &App{DB: testDB(t), Cfg: config.Default(), Out: &out, Err: &out}

	cmd := newOrderCmd()
	cmd.PreRun(cmd, nil)
	if err := cmd.RunE(cmd, []string{"0:2"}); err != nil {
		t.Fatalf("RunE: %v", err)
	}
	if !strings.HasPrefix(out.String(), "1\t") {
		t.Errorf("output = %q, want to start with prerequisite id 1", out.String())
	}
}

func TestOrderCmdRejectsUnknownQuest(t *testing.T) {
	var out bytes.Buffer
	app = &App{DB: testDB(t), Cfg: config.Default(), Out: &out, Err: &out}

	cmd := newOrderCmd()
	cmd.PreRun(cmd, nil)
	if err := cmd.RunE(cmd, []string{"0:999"}); err == nil {
		t.Fatalf("expected error for unknown quest id")
	}
}
