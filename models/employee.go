package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"
)

type Employee struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `json:"name" gorm:"size:120;not null"`
	Role     string    `json:"role" gorm:"size:60"`
	Division string    `json:"division" gorm:"size:60;index"`
	Status   string    `json:"status" gorm:"size:20;not null;default:active"` // active | inactive
	Phone    string    `json:"phone" gorm:"size:20"`
	// PIN is a 4-6 digit self-service credential; only the bcrypt hash is stored.
	PinHash string    `json:"-" gorm:"size:80"`
	OwnerID uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Employee) IsActive() bool { return e.Status == EmployeeActive }
