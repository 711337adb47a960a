package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	EntryFilled = "filled"
	EntryLeave  = "leave"
)

// ScheduleEntry is one committed roster cell. Shift name/time are copied in
// at write time (value snapshot): editing a ShiftPattern later must not
// change entries that were already committed.
//
// The unique index on (employee_id, date) is the fundamental invariant of the
// roster: at most one entry per employee per day. All writes go through
// delete-then-insert inside a transaction to respect it.
type ScheduleEntry struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID `json:"employee_id" gorm:"type:uuid;not null;uniqueIndex:uq_entries_employee_date,priority:1"`
	Date         string    `json:"date" gorm:"size:10;not null;uniqueIndex:uq_entries_employee_date,priority:2"` // YYYY-MM-DD
	Type         string    `json:"type" gorm:"size:10;not null"`                                                 // filled | leave
	EmployeeName string    `json:"employee_name" gorm:"size:120"`                                                // snapshot
	Role         string    `json:"role" gorm:"size:60"`                                                          // snapshot
	ShiftName    string    `json:"shift_name" gorm:"size:60"`                                                    // snapshot
	ShiftTime    string    `json:"shift_time" gorm:"size:20"`                                                    // snapshot, "08:00 - 16:00"
	OwnerID      uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
