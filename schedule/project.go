package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/Wadidurrahman/shiftara-web/models"
)

// CalendarCell is one rendered cell of the read-only calendar view.
type CalendarCell struct {
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Division     string    `json:"division"`
	Role         string    `json:"role"`
	State        SlotState `json:"type"`
	ShiftName    string    `json:"shift_name,omitempty"`
	ShiftTime    string    `json:"shift_time,omitempty"`
}

type CalendarDay struct {
	Date  string         `json:"date"`
	Cells []CalendarCell `json:"cells"`
}

// CalendarView is the publishable projection of the roster over an arbitrary
// date range. Weekly and monthly previews use the same shape; only the range
// length differs.
type CalendarView struct {
	Start string        `json:"start"`
	End   string        `json:"end"`
	Days  []CalendarDay `json:"days"`
}

// Project renders entries over [start, end] for every employee row, group by
// group. Pure function of its inputs; never assumes a 7-day range.
func Project(entries []models.ScheduleEntry, start, end time.Time, groups GroupIndex) CalendarView {
	dates := DatesBetween(start, end)

	byCell := make(map[uuid.UUID]map[string]models.ScheduleEntry)
	for _, e := range entries {
		if byCell[e.EmployeeID] == nil {
			byCell[e.EmployeeID] = make(map[string]models.ScheduleEntry)
		}
		byCell[e.EmployeeID][e.Date] = e
	}

	view := CalendarView{Days: make([]CalendarDay, 0, len(dates))}
	if len(dates) > 0 {
		view.Start = dates[0]
		view.End = dates[len(dates)-1]
	}
	for _, date := range dates {
		day := CalendarDay{Date: date}
		for _, div := range groups.Order {
			for _, emp := range groups.Members[div] {
				cell := CalendarCell{
					EmployeeID:   emp.ID,
					EmployeeName: emp.Name,
					Division:     div,
					Role:         emp.Role,
					State:        SlotEmpty,
				}
				if ent, ok := byCell[emp.ID][date]; ok {
					slot := slotFromEntry(ent)
					cell.State = slot.State
					cell.ShiftName = slot.ShiftName
					cell.ShiftTime = slot.ShiftTime
				}
				day.Cells = append(day.Cells, cell)
			}
		}
		view.Days = append(view.Days, day)
	}
	return view
}
