package store

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Wadidurrahman/shiftara-web/models"
	"github.com/Wadidurrahman/shiftara-web/requests"
)

// EmployeeStore reads employees and verifies self-service PINs. PINs are
// bcrypt-hashed at rest; the legacy plaintext comparison of the old frontend
// is deliberately not reproduced.
type EmployeeStore struct {
	db *gorm.DB
}

func NewEmployeeStore(db *gorm.DB) *EmployeeStore { return &EmployeeStore{db: db} }

func (s *EmployeeStore) Active(ownerID uuid.UUID) ([]models.Employee, error) {
	var rows []models.Employee
	err := s.db.
		Where("user_id = ? AND status = ?", ownerID, models.EmployeeActive).
		Order("division ASC, name ASC").
		Find(&rows).Error
	return rows, err
}

// VerifyPIN checks the submitted PIN for one employee. Lookup failure and
// hash mismatch both come back as the same error so callers cannot probe
// which employees exist.
func (s *EmployeeStore) VerifyPIN(ownerID, employeeID uuid.UUID, pin string) (models.Employee, error) {
	var emp models.Employee
	err := s.db.
		Where("user_id = ? AND status = ?", ownerID, models.EmployeeActive).
		First(&emp, "id = ?", employeeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Employee{}, requests.ErrPinMismatch
		}
		return models.Employee{}, err
	}
	if emp.PinHash == "" || bcrypt.CompareHashAndPassword([]byte(emp.PinHash), []byte(pin)) != nil {
		return models.Employee{}, requests.ErrPinMismatch
	}
	return emp, nil
}

// FindByPIN resolves which employee a bare PIN belongs to (the self-service
// inbox is opened with the PIN alone). Hashed PINs rule out an indexed
// lookup, so the active list is scanned; headcounts here are small.
func (s *EmployeeStore) FindByPIN(ownerID uuid.UUID, pin string) (models.Employee, error) {
	rows, err := s.Active(ownerID)
	if err != nil {
		return models.Employee{}, err
	}
	for _, emp := range rows {
		if emp.PinHash == "" {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(emp.PinHash), []byte(pin)) == nil {
			return emp, nil
		}
	}
	return models.Employee{}, requests.ErrPinMismatch
}

// HashPIN prepares a PIN for storage.
func HashPIN(pin string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
