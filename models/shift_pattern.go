package models

import (
	"time"

	"github.com/google/uuid"
)

// ShiftPattern is a tenant-wide shift time template (e.g. "Pagi" 08:00-16:00).
// The list is ordered by start time everywhere it is used.
type ShiftPattern struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"size:60;not null"`
	StartTime string    `json:"start_time" gorm:"size:5;not null"` // HH:MM
	EndTime   string    `json:"end_time" gorm:"size:5;not null"`   // HH:MM
	OwnerID   uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TimeRange renders the display form committed entries snapshot, "08:00 - 16:00".
func (p *ShiftPattern) TimeRange() string {
	return p.StartTime + " - " + p.EndTime
}
