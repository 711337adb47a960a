package requests

import (
	"time"

	"github.com/google/uuid"

	"github.com/Wadidurrahman/shiftara-web/models"
)

// Credentials verifies an employee's self-service PIN. Implementations
// compare against the stored hash and must fail identically for unknown
// employees and wrong PINs.
type Credentials interface {
	VerifyPIN(ownerID, employeeID uuid.UUID, pin string) (models.Employee, error)
}

// Roster is the slice of the schedule store the state machine needs: reading
// a committed cell, and the two mutations an admin approval performs.
type Roster interface {
	FindEntry(ownerID, employeeID uuid.UUID, date string) (*models.ScheduleEntry, error)
	ApplySwapRequest(ownerID uuid.UUID, req models.Request) error
	MarkLeave(ownerID, employeeID uuid.UUID, date string) error
}

// Store persists request rows.
type Store interface {
	Create(r *models.Request) error
	Get(ownerID, id uuid.UUID) (models.Request, error)
	Update(r *models.Request) error
	CountLeaveBetween(ownerID, requesterID uuid.UUID, from, to time.Time) (int64, error)
}

// Settings resolves the per-tenant monthly request cap.
type Settings interface {
	MaxRequestsPerMonth(ownerID uuid.UUID) int
}

// Service runs the swap/leave request lifecycle:
//
//	swap:  pending_partner -> pending_admin -> approved | rejected
//	leave: pending_admin -> approved | rejected
//
// Creation is PIN-gated. Admin approval performs the roster mutation as part
// of the transition; rejection never touches the roster.
type Service struct {
	Creds    Credentials
	Roster   Roster
	Requests Store
	Settings Settings
	Now      func() time.Time
}

func NewService(creds Credentials, roster Roster, store Store, settings Settings) *Service {
	return &Service{Creds: creds, Roster: roster, Requests: store, Settings: settings, Now: time.Now}
}

type CreateInput struct {
	OwnerID          uuid.UUID
	RequesterID      uuid.UUID
	PIN              string
	Type             string // swap | leave
	OriginalDate     string // YYYY-MM-DD
	TargetDate       string // swap only
	TargetEmployeeID uuid.UUID
	Reason           string
}

// Create validates and persists a new request. All checks run before any
// write: PIN, request type, monthly quota for leave, and for swaps the
// partner's filled shift on the target date.
func (s *Service) Create(in CreateInput) (models.Request, error) {
	emp, err := s.Creds.VerifyPIN(in.OwnerID, in.RequesterID, in.PIN)
	if err != nil {
		return models.Request{}, ErrPinMismatch
	}

	req := models.Request{
		RequesterID:  emp.ID,
		Type:         in.Type,
		OriginalDate: in.OriginalDate,
		Reason:       in.Reason,
		OwnerID:      in.OwnerID,
	}

	switch in.Type {
	case models.RequestLeave:
		from, to := monthBounds(s.Now())
		n, err := s.Requests.CountLeaveBetween(in.OwnerID, emp.ID, from, to)
		if err != nil {
			return models.Request{}, err
		}
		if limit := s.Settings.MaxRequestsPerMonth(in.OwnerID); limit > 0 && n >= int64(limit) {
			return models.Request{}, ErrQuotaExceeded
		}
		req.Status = models.StatusPendingAdmin

	case models.RequestSwap:
		if in.TargetEmployeeID == uuid.Nil || in.TargetEmployeeID == emp.ID || in.TargetDate == "" {
			return models.Request{}, ErrInvalidTarget
		}
		entry, err := s.Roster.FindEntry(in.OwnerID, in.TargetEmployeeID, in.TargetDate)
		if err != nil {
			return models.Request{}, err
		}
		if entry == nil || entry.Type != models.EntryFilled {
			return models.Request{}, ErrInvalidTarget
		}
		target := in.TargetEmployeeID
		req.TargetEmployeeID = &target
		req.TargetDate = in.TargetDate
		req.Status = models.StatusPendingPartner

	default:
		return models.Request{}, ErrInvalidType
	}

	if err := s.Requests.Create(&req); err != nil {
		return models.Request{}, err
	}
	return req, nil
}

// PartnerDecide moves a swap request out of pending_partner. Approval hands
// it to the admin queue; rejection is terminal. The roster is untouched
// either way.
func (s *Service) PartnerDecide(ownerID, id uuid.UUID, approve bool) (models.Request, error) {
	req, err := s.Requests.Get(ownerID, id)
	if err != nil {
		return models.Request{}, err
	}
	if req.Status != models.StatusPendingPartner {
		return models.Request{}, ErrInvalidState
	}
	if approve {
		req.Status = models.StatusPendingAdmin
	} else {
		req.Status = models.StatusRejected
	}
	if err := s.Requests.Update(&req); err != nil {
		return models.Request{}, err
	}
	return req, nil
}

// AdminDecide finalizes a pending_admin request. Approving a swap executes
// the grid swap first; approving a leave marks the day as leave first. If the
// roster mutation fails the request stays pending so the admin can retry.
func (s *Service) AdminDecide(ownerID, id, adminID uuid.UUID, approve bool) (models.Request, error) {
	req, err := s.Requests.Get(ownerID, id)
	if err != nil {
		return models.Request{}, err
	}
	if req.Status != models.StatusPendingAdmin {
		return models.Request{}, ErrInvalidState
	}

	if approve {
		switch req.Type {
		case models.RequestSwap:
			if err := s.Roster.ApplySwapRequest(ownerID, req); err != nil {
				return models.Request{}, err
			}
		case models.RequestLeave:
			if err := s.Roster.MarkLeave(ownerID, req.RequesterID, req.OriginalDate); err != nil {
				return models.Request{}, err
			}
		default:
			return models.Request{}, ErrInvalidType
		}
		req.Status = models.StatusApproved
	} else {
		req.Status = models.StatusRejected
	}

	now := s.Now()
	req.DecidedAt = &now
	req.DecidedBy = &adminID
	if err := s.Requests.Update(&req); err != nil {
		return models.Request{}, err
	}
	return req, nil
}

func monthBounds(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0)
}
