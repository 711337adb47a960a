package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Wadidurrahman/shiftara-web/models"
	"github.com/Wadidurrahman/shiftara-web/requests"
	"github.com/Wadidurrahman/shiftara-web/schedule"
)

// Leave cells carry fixed display snapshots, matching what the roster UI shows.
const (
	leaveName      = "CUTI / LIBUR"
	leaveShiftName = "Libur"
	leaveShiftTime = "-"
)

// ScheduleStore owns all writes to the schedule_entries table. Every write
// is delete-then-insert inside a transaction so the (employee, date) unique
// index is never violated by an overwrite.
type ScheduleStore struct {
	db *gorm.DB
}

func NewScheduleStore(db *gorm.DB) *ScheduleStore { return &ScheduleStore{db: db} }

func (s *ScheduleStore) EntriesBetween(ownerID uuid.UUID, start, end string) ([]models.ScheduleEntry, error) {
	var rows []models.ScheduleEntry
	err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", ownerID, start, end).
		Order("date ASC, employee_id ASC").
		Find(&rows).Error
	return rows, err
}

// FindEntry returns the committed cell for (employee, date), or nil when the
// cell is empty.
func (s *ScheduleStore) FindEntry(ownerID, employeeID uuid.UUID, date string) (*models.ScheduleEntry, error) {
	var row models.ScheduleEntry
	err := s.db.
		Where("user_id = ? AND employee_id = ? AND date = ?", ownerID, employeeID, date).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Assign overwrites the cell with a filled entry snapshotting the pattern's
// name and time range. Pattern validity is the caller's concern (the handler
// resolves the pattern id first and fails with InvalidPattern before any write).
func (s *ScheduleStore) Assign(ownerID uuid.UUID, emp models.Employee, date string, p models.ShiftPattern) error {
	return s.writeCell(ownerID, models.ScheduleEntry{
		EmployeeID:   emp.ID,
		Date:         date,
		Type:         models.EntryFilled,
		EmployeeName: emp.Name,
		Role:         emp.Role,
		ShiftName:    p.Name,
		ShiftTime:    p.TimeRange(),
		OwnerID:      ownerID,
	})
}

func (s *ScheduleStore) MarkLeave(ownerID, employeeID uuid.UUID, date string) error {
	var emp models.Employee
	if err := s.db.Where("user_id = ?", ownerID).First(&emp, "id = ?", employeeID).Error; err != nil {
		return err
	}
	return s.writeCell(ownerID, models.ScheduleEntry{
		EmployeeID:   emp.ID,
		Date:         date,
		Type:         models.EntryLeave,
		EmployeeName: leaveName,
		Role:         emp.Role,
		ShiftName:    leaveShiftName,
		ShiftTime:    leaveShiftTime,
		OwnerID:      ownerID,
	})
}

func (s *ScheduleStore) Clear(ownerID, employeeID uuid.UUID, date string) error {
	return s.db.
		Where("user_id = ? AND employee_id = ? AND date = ?", ownerID, employeeID, date).
		Delete(&models.ScheduleEntry{}).Error
}

// writeCell is the delete-then-insert primitive. A duplicate-key failure on
// the insert means a concurrent writer re-created the row between our delete
// and insert; one retry of the whole sequence resolves it, a second failure
// is surfaced as a uniqueness violation.
func (s *ScheduleStore) writeCell(ownerID uuid.UUID, entry models.ScheduleEntry) error {
	attempt := func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.
				Where("user_id = ? AND employee_id = ? AND date = ?", ownerID, entry.EmployeeID, entry.Date).
				Delete(&models.ScheduleEntry{}).Error; err != nil {
				return err
			}
			return tx.Create(&entry).Error
		})
	}
	err := attempt()
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		entry.ID = uuid.Nil
		err = attempt()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: employee %s date %s", schedule.ErrUniqueness, entry.EmployeeID, entry.Date)
		}
	}
	return err
}

// ApplyMove executes a move-or-swap plan atomically: all deletes and inserts
// commit together or not at all. The confirmation for leave overwrites is
// checked by the caller before the plan reaches the store.
func (s *ScheduleStore) ApplyMove(ownerID uuid.UUID, plan schedule.MovePlan) error {
	if len(plan.Deletes) == 0 && len(plan.Inserts) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, ref := range plan.Deletes {
			if err := tx.
				Where("user_id = ? AND employee_id = ? AND date = ?", ownerID, ref.EmployeeID, ref.Date).
				Delete(&models.ScheduleEntry{}).Error; err != nil {
				return err
			}
		}
		for _, ins := range plan.Inserts {
			entry := entryFromAssignment(ownerID, ins)
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyBatch commits an auto-fill batch cell by cell. Cells are independent
// rows, so one bad cell must not throw away the rest of the week; failures
// are collected and reported as a partial-batch error with the exact split
// of applied vs failed assignments.
func (s *ScheduleStore) ApplyBatch(ownerID uuid.UUID, batch []schedule.Assignment) error {
	if len(batch) == 0 {
		return nil
	}
	result := schedule.BatchError{}
	for _, as := range batch {
		entry := entryFromAssignment(ownerID, as)
		if err := s.writeCell(ownerID, entry); err != nil {
			result.Failed = append(result.Failed, schedule.CellError{Assignment: as, Err: err})
			continue
		}
		result.Applied = append(result.Applied, as)
	}
	if len(result.Failed) > 0 {
		return &result
	}
	return nil
}

// ApplySwapRequest performs the roster side of an approved swap request: the
// requester's original-date shift and the partner's target-date shift change
// owners, through the same plan/execute path manual drag-and-drop uses.
func (s *ScheduleStore) ApplySwapRequest(ownerID uuid.UUID, req models.Request) error {
	if req.TargetEmployeeID == nil {
		return requests.ErrInvalidTarget
	}
	var requester, partner models.Employee
	if err := s.db.Where("user_id = ?", ownerID).First(&requester, "id = ?", req.RequesterID).Error; err != nil {
		return err
	}
	if err := s.db.Where("user_id = ?", ownerID).First(&partner, "id = ?", *req.TargetEmployeeID).Error; err != nil {
		return err
	}

	srcEntry, err := s.FindEntry(ownerID, requester.ID, req.OriginalDate)
	if err != nil {
		return err
	}
	dstEntry, err := s.FindEntry(ownerID, partner.ID, req.TargetDate)
	if err != nil {
		return err
	}
	if srcEntry == nil || srcEntry.Type != models.EntryFilled ||
		dstEntry == nil || dstEntry.Type != models.EntryFilled {
		return requests.ErrInvalidTarget
	}

	plan, err := schedule.PlanMove(
		schedule.MoveEnd{
			Ref:      schedule.CellRef{EmployeeID: requester.ID, Date: req.OriginalDate},
			Employee: requester,
			Slot:     schedule.Slot{State: schedule.SlotFilled, Date: srcEntry.Date, ShiftName: srcEntry.ShiftName, ShiftTime: srcEntry.ShiftTime},
		},
		schedule.MoveEnd{
			Ref:      schedule.CellRef{EmployeeID: partner.ID, Date: req.TargetDate},
			Employee: partner,
			Slot:     schedule.Slot{State: schedule.SlotFilled, Date: dstEntry.Date, ShiftName: dstEntry.ShiftName, ShiftTime: dstEntry.ShiftTime},
		},
	)
	if err != nil {
		return err
	}
	return s.ApplyMove(ownerID, plan)
}

func entryFromAssignment(ownerID uuid.UUID, as schedule.Assignment) models.ScheduleEntry {
	return models.ScheduleEntry{
		EmployeeID:   as.EmployeeID,
		Date:         as.Date,
		Type:         models.EntryFilled,
		EmployeeName: as.EmployeeName,
		Role:         as.Role,
		ShiftName:    as.ShiftName,
		ShiftTime:    as.ShiftTime,
		OwnerID:      ownerID,
	}
}
