// Package qerr defines the single tagged error type used across the
// normalizer, loader and importance analyzer, so callers can branch on
// failure kind without string matching.
package qerr

import (
	"fmt"
	"strings"

	"questgraph/internal/questid"
)

// Kind classifies the failure that produced an Error.
type Kind int

const (
	KindJSON Kind = iota
	KindIO
	KindInvalidFormat
	KindDuplicateQuestID
	KindMissingQuestReference
	KindCycleDetected
	KindAlphaOutOfRange
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindIO:
		return "io"
	case KindInvalidFormat:
		return "invalid_format"
	case KindDuplicateQuestID:
		return "duplicate_quest_id"
	case KindMissingQuestReference:
		return "missing_quest_reference"
	case KindCycleDetected:
		return "cycle_detected"
	case KindAlphaOutOfRange:
		return "alpha_out_of_range"
	default:
		return "other"
	}
}

// Error is the single structured error type returned by every package in
// this module. Which fields are populated depends on Kind.
type Error struct {
	Kind Kind

	// Msg carries free-form detail for InvalidFormat and Other.
	Msg string

	// Path names the offending file for Json, Io, and DuplicateQuestID.
	Path string

	// Questline and QuestID identify a MissingQuestReference fault.
	Questline questid.ID
	QuestID   questid.ID

	// Cycle holds the witness cycle for CycleDetected, in visit order.
	Cycle []questid.ID

	// Alpha holds the offending value for AlphaOutOfRange.
	Alpha float64

	// Err is the wrapped underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindJSON:
		if e.Path != "" {
			return fmt.Sprintf("json error in %s: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("json error: %v", e.Err)
	case KindIO:
		if e.Path != "" {
			return fmt.Sprintf("io error reading %s: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("io error: %v", e.Err)
	case KindInvalidFormat:
		return fmt.Sprintf("invalid format: %s", e.Msg)
	case KindDuplicateQuestID:
		return fmt.Sprintf("duplicate quest id at %s", e.Path)
	case KindMissingQuestReference:
		return fmt.Sprintf("questline %s references missing quest %s", e.Questline, e.QuestID)
	case KindCycleDetected:
		ids := make([]string, len(e.Cycle))
		for i, id := range e.Cycle {
			ids[i] = id.String()
		}
		return fmt.Sprintf("cycle detected: %s", strings.Join(ids, " -> "))
	case KindAlphaOutOfRange:
		return fmt.Sprintf("alpha %v out of range [0, 1]", e.Alpha)
	default:
		return fmt.Sprintf("error: %s", e.Msg)
	}
}

// Unwrap exposes the wrapped error, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

func JSON(path string, err error) *Error {
	return &Error{Kind: KindJSON, Path: path, Err: err}
}

func IO(path string, err error) *Error {
	return &Error{Kind: KindIO, Path: path, Err: err}
}

func InvalidFormat(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidFormat, Msg: fmt.Sprintf(format, args...)}
}

func DuplicateQuestID(path string) *Error {
	return &Error{Kind: KindDuplicateQuestID, Path: path}
}

func MissingQuestReference(questline, quest questid.ID) *Error {
	return &Error{Kind: KindMissingQuestReference, Questline: questline, QuestID: quest}
}

func CycleDetected(cycle []questid.ID) *Error {
	return &Error{Kind: KindCycleDetected, Cycle: cycle}
}

func AlphaOutOfRange(alpha float64) *Error {
	return &Error{Kind: KindAlphaOutOfRange, Alpha: alpha}
}

func Other(format string, args ...any) *Error {
	return &Error{Kind: KindOther, Msg: fmt.Sprintf(format, args...)}
}
