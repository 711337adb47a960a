package schedule

import (
	"errors"
	"testing"

	"github.com/Wadidurrahman/shiftara-web/models"
)

func end(e models.Employee, date string, slot Slot) MoveEnd {
	slot.Date = date
	return MoveEnd{
		Ref:      CellRef{EmployeeID: e.ID, Date: date},
		Employee: e,
		Slot:     slot,
	}
}

func filledSlot(shift, timeRange string) Slot {
	return Slot{State: SlotFilled, ShiftName: shift, ShiftTime: timeRange}
}

func TestPlanMoveOntoEmptyIsAMove(t *testing.T) {
	a := emp("Andi", "Kitchen")
	b := emp("Budi", "Kitchen")

	plan, err := PlanMove(
		end(a, "2024-03-11", filledSlot("Pagi", "08:00 - 16:00")),
		end(b, "2024-03-12", Slot{State: SlotEmpty}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if plan.IsSwap || plan.NeedsConfirm {
		t.Errorf("empty target: IsSwap=%v NeedsConfirm=%v, want false/false", plan.IsSwap, plan.NeedsConfirm)
	}
	if len(plan.Deletes) != 2 || len(plan.Inserts) != 1 {
		t.Fatalf("plan = %d deletes / %d inserts, want 2/1", len(plan.Deletes), len(plan.Inserts))
	}
	ins := plan.Inserts[0]
	if ins.EmployeeID != b.ID || ins.Date != "2024-03-12" || ins.ShiftName != "Pagi" {
		t.Errorf("insert = %+v, want source shift on target row", ins)
	}
	if ins.EmployeeName != b.Name {
		t.Errorf("insert snapshots %q, want the target employee's name", ins.EmployeeName)
	}
}

func TestPlanMoveOntoFilledIsASwap(t *testing.T) {
	a := emp("Andi", "Kitchen")
	b := emp("Budi", "Kitchen")

	plan, err := PlanMove(
		end(a, "2024-03-11", filledSlot("Pagi", "08:00 - 16:00")),
		end(b, "2024-03-12", filledSlot("Malam", "16:00 - 24:00")),
	)
	if err != nil {
		t.Fatal(err)
	}
	if !plan.IsSwap {
		t.Fatal("filled target must be a swap")
	}
	if len(plan.Inserts) != 2 {
		t.Fatalf("swap inserts = %d, want 2", len(plan.Inserts))
	}
	back := plan.Inserts[1]
	if back.EmployeeID != a.ID || back.Date != "2024-03-11" || back.ShiftName != "Malam" {
		t.Errorf("swap-back insert = %+v, want target shift on source row", back)
	}
}

func TestPlanMoveSwapIsItsOwnInverse(t *testing.T) {
	a := emp("Andi", "Kitchen")
	b := emp("Budi", "Kitchen")
	srcSlot := filledSlot("Pagi", "08:00 - 16:00")
	dstSlot := filledSlot("Malam", "16:00 - 24:00")

	first, err := PlanMove(end(a, "2024-03-11", srcSlot), end(b, "2024-03-12", dstSlot))
	if err != nil {
		t.Fatal(err)
	}

	// Apply the swap in memory, then swap back from the new positions.
	afterA := Slot{State: SlotFilled, ShiftName: first.Inserts[1].ShiftName, ShiftTime: first.Inserts[1].ShiftTime}
	afterB := Slot{State: SlotFilled, ShiftName: first.Inserts[0].ShiftName, ShiftTime: first.Inserts[0].ShiftTime}
	second, err := PlanMove(end(a, "2024-03-11", afterA), end(b, "2024-03-12", afterB))
	if err != nil {
		t.Fatal(err)
	}

	if got := second.Inserts[0]; got.ShiftName != "Malam" || got.EmployeeID != b.ID {
		t.Errorf("double swap target = %+v, want Budi back on Malam", got)
	}
	if got := second.Inserts[1]; got.ShiftName != "Pagi" || got.EmployeeID != a.ID {
		t.Errorf("double swap source = %+v, want Andi back on Pagi", got)
	}
}

func TestPlanMoveLeaveTargetNeedsConfirmation(t *testing.T) {
	a := emp("Andi", "Kitchen")
	b := emp("Budi", "Kitchen")

	plan, err := PlanMove(
		end(a, "2024-03-11", filledSlot("Pagi", "08:00 - 16:00")),
		end(b, "2024-03-12", Slot{State: SlotLeave}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if !plan.NeedsConfirm {
		t.Error("overwriting a leave cell must require explicit confirmation")
	}
	if plan.IsSwap {
		t.Error("a leave target is overwritten, not swapped back")
	}
}

func TestPlanMoveRejectsEmptySource(t *testing.T) {
	a := emp("Andi", "Kitchen")
	b := emp("Budi", "Kitchen")

	_, err := PlanMove(
		end(a, "2024-03-11", Slot{State: SlotEmpty}),
		end(b, "2024-03-12", Slot{State: SlotEmpty}),
	)
	if !errors.Is(err, ErrEmptySource) {
		t.Fatalf("err = %v, want ErrEmptySource", err)
	}
}

func TestPlanMoveSameCellIsNoop(t *testing.T) {
	a := emp("Andi", "Kitchen")
	plan, err := PlanMove(
		end(a, "2024-03-11", filledSlot("Pagi", "08:00 - 16:00")),
		end(a, "2024-03-11", filledSlot("Pagi", "08:00 - 16:00")),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Deletes) != 0 || len(plan.Inserts) != 0 {
		t.Errorf("same-cell move must plan nothing, got %+v", plan)
	}
}
