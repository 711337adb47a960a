package models

import (
	"time"

	"github.com/google/uuid"
)

// AppSetting is the per-tenant settings row (one per owning account).
type AppSetting struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	OwnerID             uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	MaxRequestsPerMonth int       `json:"max_requests_per_month" gorm:"not null;default:3"`
	RotationBlockDays   int       `json:"rotation_block_days" gorm:"not null;default:2"`
	RequirePartnerPin   bool      `json:"require_partner_pin" gorm:"not null;default:true"`
	WaGroupLink         string    `json:"wa_group_link" gorm:"size:200"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
