package schedule

import (
	"github.com/google/uuid"

	"github.com/Wadidurrahman/shiftara-web/models"
)

// CellRef identifies one roster cell.
type CellRef struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Date       string    `json:"date"`
}

// MoveEnd bundles a cell reference with the employee who owns the row and
// the cell's current slot state.
type MoveEnd struct {
	Ref      CellRef
	Employee models.Employee
	Slot     Slot
}

// MovePlan is the precomputed effect of a move-or-swap: which cells to
// delete and which filled entries to write. The executor applies the whole
// plan in one transaction; a half-applied plan is an error, never a silent
// state.
type MovePlan struct {
	Deletes      []CellRef
	Inserts      []Assignment
	IsSwap       bool
	NeedsConfirm bool // target currently holds a leave entry; overwriting is destructive
}

// PlanMove decides the single move-or-swap operation. Dropping onto a filled
// target exchanges the two shifts; dropping onto an empty target moves the
// shift and clears the source. The two are branches of one operation, not
// separate entry points. A leave target sets NeedsConfirm: the caller must
// obtain an explicit confirmation before executing the plan.
func PlanMove(source, target MoveEnd) (MovePlan, error) {
	if source.Slot.State == SlotEmpty {
		return MovePlan{}, ErrEmptySource
	}
	if source.Ref == target.Ref {
		return MovePlan{}, nil
	}

	plan := MovePlan{
		Deletes:      []CellRef{source.Ref, target.Ref},
		IsSwap:       target.Slot.State == SlotFilled,
		NeedsConfirm: target.Slot.State == SlotLeave,
	}

	// Source's shift lands on the target row, snapshotted for the target employee.
	plan.Inserts = append(plan.Inserts, Assignment{
		EmployeeID:   target.Employee.ID,
		EmployeeName: target.Employee.Name,
		Role:         target.Employee.Role,
		Date:         target.Ref.Date,
		ShiftName:    source.Slot.ShiftName,
		ShiftTime:    source.Slot.ShiftTime,
	})

	// A filled target swaps back to the source row; otherwise the source is
	// simply cleared by its delete.
	if plan.IsSwap {
		plan.Inserts = append(plan.Inserts, Assignment{
			EmployeeID:   source.Employee.ID,
			EmployeeName: source.Employee.Name,
			Role:         source.Employee.Role,
			Date:         source.Ref.Date,
			ShiftName:    target.Slot.ShiftName,
			ShiftTime:    target.Slot.ShiftTime,
		})
	}
	return plan, nil
}
