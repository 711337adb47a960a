package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPatterns: auto-fill invoked with zero shift patterns configured.
	ErrNoPatterns = errors.New("no shift patterns configured")
	// ErrInvalidPattern: a mutation references a shift pattern that no longer exists.
	ErrInvalidPattern = errors.New("shift pattern not found")
	// ErrEmptySource: move/swap started from an empty cell.
	ErrEmptySource = errors.New("source slot is empty")
	// ErrUniqueness: the (employee, date) unique constraint rejected a write
	// even after the delete-then-insert sequence.
	ErrUniqueness = errors.New("duplicate schedule entry for employee and date")
)

// CellError records one failed cell of a batch apply.
type CellError struct {
	Assignment Assignment
	Err        error
}

// BatchError reports a partially applied auto-fill batch: which assignments
// committed and which did not, so the caller can reconcile or retry the
// remainder. It is never used to mask a full success or a full failure.
type BatchError struct {
	Applied []Assignment
	Failed  []CellError
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("schedule batch partially applied: %d ok, %d failed", len(e.Applied), len(e.Failed))
}
