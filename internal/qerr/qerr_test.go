package qerr

import (
	"errors"
	"strings"
	"testing"

	"questgraph/internal/questid"
)

func TestErrorStringsNameTheFault(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want string
	}{
		{"invalid format", InvalidFormat("root %s is not a directory", "/tmp/x"), "root /tmp/x is not a directory"},
		{"duplicate", DuplicateQuestID("Quests/a.json"), "Quests/a.json"},
		{"missing ref", MissingQuestReference(questid.FromU64(1), questid.FromU64(2)), "1"},
		{"alpha", AlphaOutOfRange(1.5), "1.5"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !strings.Contains(c.err.Error(), c.want) {
				t.Errorf("Error() = %q, want substring %q", c.err.Error(), c.want)
			}
		})
	}
}

func TestUnwrapExposesUnderlyingError(t *testing.T) {
	inner := errors.New("boom")
	err := JSON("Quests/a.json", inner)
	if !errors.Is(err, inner) {
		t.Fatalf("errors.Is should find wrapped inner error")
	}
}

func TestCycleDetectedRendersPath(t *testing.T) {
	cycle := []questid.ID{questid.FromU64(1), questid.FromU64(2), questid.FromU64(1)}
	err := CycleDetected(cycle)
	if !strings.Contains(err.Error(), "1 -> 2 -> 1") {
		t.Errorf("Error() = %q, want cycle path", err.Error())
	}
}
