package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RequestSwap  = "swap"
	RequestLeave = "leave"

	StatusPendingPartner = "pending_partner" // swap only: waiting for the partner
	StatusPendingAdmin   = "pending_admin"
	StatusApproved       = "approved"
	StatusRejected       = "rejected"
)

// Request is a swap or leave request raised by an employee from the public
// schedule view. Leave requests never pass through pending_partner.
type Request struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterID      uuid.UUID  `json:"requester_id" gorm:"type:uuid;index;not null"`
	Type             string     `json:"type" gorm:"size:10;not null"`   // swap | leave
	Status           string     `json:"status" gorm:"size:20;not null"` // pending_partner/pending_admin/approved/rejected
	OriginalDate     string     `json:"original_date" gorm:"size:10;not null"`
	TargetDate       string     `json:"target_date" gorm:"size:10"`                   // swap only
	TargetEmployeeID *uuid.UUID `json:"target_employee_id" gorm:"type:uuid;index"`    // swap only
	Reason           string     `json:"reason" gorm:"type:text"`
	DecidedAt        *time.Time `json:"decided_at"`
	DecidedBy        *uuid.UUID `json:"decided_by" gorm:"type:uuid"` // admin user id
	OwnerID          uuid.UUID  `json:"user_id" gorm:"type:uuid;index;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Request) Terminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}
