package schedule

import (
	"testing"
	"time"

	"github.com/Wadidurrahman/shiftara-web/models"
)

func TestProjectWeeklyRange(t *testing.T) {
	a := emp("Andi", "Kitchen")
	b := emp("Budi", "Bar")
	start, _ := time.Parse(DateLayout, "2024-03-11")
	end := start.AddDate(0, 0, 6)

	entries := []models.ScheduleEntry{
		{EmployeeID: a.ID, Date: "2024-03-11", Type: models.EntryFilled, ShiftName: "Pagi", ShiftTime: "08:00 - 16:00"},
		{EmployeeID: b.ID, Date: "2024-03-12", Type: models.EntryLeave},
	}
	groups := BuildGroups([]models.Employee{a, b})

	view := Project(entries, start, end, groups)

	if view.Start != "2024-03-11" || view.End != "2024-03-17" {
		t.Fatalf("range = %s..%s", view.Start, view.End)
	}
	if len(view.Days) != 7 {
		t.Fatalf("day count = %d, want 7", len(view.Days))
	}
	// Bar sorts before Kitchen, so Budi is the first cell of every day.
	day0 := view.Days[0]
	if len(day0.Cells) != 2 {
		t.Fatalf("cells per day = %d, want 2", len(day0.Cells))
	}
	if day0.Cells[0].EmployeeName != "Budi" || day0.Cells[0].Division != "Bar" {
		t.Errorf("first cell = %+v, want Budi/Bar", day0.Cells[0])
	}
	if got := day0.Cells[1]; got.State != SlotFilled || got.ShiftName != "Pagi" {
		t.Errorf("Andi day 0 = %+v, want filled Pagi", got)
	}
	if got := view.Days[1].Cells[0]; got.State != SlotLeave {
		t.Errorf("Budi day 1 = %+v, want leave", got)
	}
	if got := view.Days[2].Cells[0]; got.State != SlotEmpty {
		t.Errorf("Budi day 2 = %+v, want empty", got)
	}
}

func TestProjectMonthlyRangeIsNotSevenColumns(t *testing.T) {
	a := emp("Andi", "Kitchen")
	start, _ := time.Parse(DateLayout, "2024-03-01")
	end, _ := time.Parse(DateLayout, "2024-03-31")
	groups := BuildGroups([]models.Employee{a})

	view := Project(nil, start, end, groups)
	if len(view.Days) != 31 {
		t.Fatalf("day count = %d, want 31", len(view.Days))
	}
	for _, day := range view.Days {
		if len(day.Cells) != 1 || day.Cells[0].State != SlotEmpty {
			t.Fatalf("day %s = %+v, want one empty cell", day.Date, day.Cells)
		}
	}
}

func TestProjectEmptyRange(t *testing.T) {
	start, _ := time.Parse(DateLayout, "2024-03-11")
	view := Project(nil, start.AddDate(0, 0, 3), start, BuildGroups(nil))
	if len(view.Days) != 0 {
		t.Errorf("inverted range must project no days, got %d", len(view.Days))
	}
}
