package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Wadidurrahman/shiftara-web/models"
)

// RequestStore persists swap/leave request rows.
type RequestStore struct {
	db *gorm.DB
}

func NewRequestStore(db *gorm.DB) *RequestStore { return &RequestStore{db: db} }

func (s *RequestStore) Create(r *models.Request) error {
	return s.db.Create(r).Error
}

func (s *RequestStore) Get(ownerID, id uuid.UUID) (models.Request, error) {
	var row models.Request
	err := s.db.Where("user_id = ?", ownerID).First(&row, "id = ?", id).Error
	return row, err
}

func (s *RequestStore) Update(r *models.Request) error {
	return s.db.Save(r).Error
}

// CountLeaveBetween counts an employee's leave requests created inside
// [from, to). Rejected requests still count toward the cap: the quota limits
// how often an employee may ask.
func (s *RequestStore) CountLeaveBetween(ownerID, requesterID uuid.UUID, from, to time.Time) (int64, error) {
	var n int64
	err := s.db.Model(&models.Request{}).
		Where("user_id = ? AND requester_id = ? AND type = ?", ownerID, requesterID, models.RequestLeave).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&n).Error
	return n, err
}

// PendingForPartner lists the swap requests waiting on the given employee's
// approval (the self-service inbox).
func (s *RequestStore) PendingForPartner(ownerID, employeeID uuid.UUID) ([]models.Request, error) {
	var rows []models.Request
	err := s.db.
		Where("user_id = ? AND target_employee_id = ? AND status = ?", ownerID, employeeID, models.StatusPendingPartner).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
