package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/Wadidurrahman/shiftara-web/models"
)

type SlotState string

const (
	SlotEmpty  SlotState = "empty"
	SlotFilled SlotState = "filled"
	SlotLeave  SlotState = "leave"
)

// Slot is one cell of the weekly grid: an employee's day, either empty or
// projected from a committed ScheduleEntry.
type Slot struct {
	State        SlotState `json:"type"`
	Date         string    `json:"date"`
	EmployeeName string    `json:"employee_name,omitempty"`
	ShiftName    string    `json:"shift_name,omitempty"`
	ShiftTime    string    `json:"shift_time,omitempty"`
}

// Grid is the in-memory weekly roster: one row of 7 slots per active
// employee. It is rebuilt from storage after every batch mutation rather
// than patched incrementally.
type Grid struct {
	WeekStart time.Time                     `json:"-"`
	Days      [7]string                     `json:"days"`
	Rows      map[uuid.UUID][7]Slot         `json:"rows"`
	RowOrder  []uuid.UUID                   `json:"-"`
	Employees map[uuid.UUID]models.Employee `json:"-"`
}

// Slot returns the cell for (employeeID, dayIndex); an unknown row reads as
// an empty slot so callers need not distinguish missing employees.
func (g *Grid) Slot(employeeID uuid.UUID, day int) Slot {
	if row, ok := g.Rows[employeeID]; ok && day >= 0 && day < 7 {
		return row[day]
	}
	return Slot{State: SlotEmpty}
}

// BuildGrid projects the active employees plus the week's committed entries
// into a fresh grid. weekStart may be any day of the week; it is normalized
// to Monday. Pure: no lookups beyond the arguments, safe to re-derive.
func BuildGrid(weekStart time.Time, employees []models.Employee, entries []models.ScheduleEntry) Grid {
	start := WeekStart(weekStart)
	days := WeekDates(start)

	byCell := make(map[uuid.UUID]map[string]models.ScheduleEntry, len(employees))
	for _, e := range entries {
		if byCell[e.EmployeeID] == nil {
			byCell[e.EmployeeID] = make(map[string]models.ScheduleEntry, 7)
		}
		byCell[e.EmployeeID][e.Date] = e
	}

	g := Grid{
		WeekStart: start,
		Days:      days,
		Rows:      make(map[uuid.UUID][7]Slot, len(employees)),
		Employees: make(map[uuid.UUID]models.Employee, len(employees)),
	}
	for _, emp := range employees {
		if !emp.IsActive() {
			continue
		}
		var row [7]Slot
		for i, date := range days {
			if ent, ok := byCell[emp.ID][date]; ok {
				row[i] = slotFromEntry(ent)
			} else {
				row[i] = Slot{State: SlotEmpty, Date: date}
			}
		}
		g.Rows[emp.ID] = row
		g.RowOrder = append(g.RowOrder, emp.ID)
		g.Employees[emp.ID] = emp
	}
	return g
}

func slotFromEntry(e models.ScheduleEntry) Slot {
	state := SlotFilled
	if e.Type == models.EntryLeave {
		state = SlotLeave
	}
	return Slot{
		State:        state,
		Date:         e.Date,
		EmployeeName: e.EmployeeName,
		ShiftName:    e.ShiftName,
		ShiftTime:    e.ShiftTime,
	}
}
