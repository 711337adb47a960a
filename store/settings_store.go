package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Wadidurrahman/shiftara-web/models"
)

// SettingsStore serves the per-tenant settings row, falling back to defaults
// when the tenant never saved one.
type SettingsStore struct {
	db       *gorm.DB
	defaults models.AppSetting
}

func NewSettingsStore(db *gorm.DB, maxPerMonth, blockDays int) *SettingsStore {
	return &SettingsStore{
		db: db,
		defaults: models.AppSetting{
			MaxRequestsPerMonth: maxPerMonth,
			RotationBlockDays:   blockDays,
			RequirePartnerPin:   true,
		},
	}
}

func (s *SettingsStore) Get(ownerID uuid.UUID) (models.AppSetting, error) {
	var row models.AppSetting
	err := s.db.Where("user_id = ?", ownerID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = s.defaults
		row.OwnerID = ownerID
		return row, nil
	}
	return row, err
}

// Save upserts the tenant's single settings row.
func (s *SettingsStore) Save(row *models.AppSetting) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"max_requests_per_month", "rotation_block_days", "require_partner_pin", "wa_group_link", "updated_at",
		}),
	}).Create(row).Error
}

// MaxRequestsPerMonth satisfies the request service's Settings dependency.
func (s *SettingsStore) MaxRequestsPerMonth(ownerID uuid.UUID) int {
	row, err := s.Get(ownerID)
	if err != nil {
		return s.defaults.MaxRequestsPerMonth
	}
	return row.MaxRequestsPerMonth
}

// RotationBlockDays resolves the tenant's auto-fill rotation block.
func (s *SettingsStore) RotationBlockDays(ownerID uuid.UUID) int {
	row, err := s.Get(ownerID)
	if err != nil || row.RotationBlockDays < 1 {
		return s.defaults.RotationBlockDays
	}
	return row.RotationBlockDays
}
