package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Wadidurrahman/shiftara-web/config"
	"github.com/Wadidurrahman/shiftara-web/database"
	"github.com/Wadidurrahman/shiftara-web/models"
	"github.com/Wadidurrahman/shiftara-web/requests"
	"github.com/Wadidurrahman/shiftara-web/schedule"
	"github.com/Wadidurrahman/shiftara-web/store"
)

// PublicHandler serves the unauthenticated employee surface: the published
// schedule, and PIN-gated request creation plus the partner inbox. Tenant
// resolution is an explicit account query param since there is no session.
type PublicHandler struct {
	employees *store.EmployeeStore
	entries   *store.ScheduleStore
	reqs      *store.RequestStore
	svc       *requests.Service
}

func NewPublicHandler(cfg *config.Config) *PublicHandler {
	employees := store.NewEmployeeStore(database.DB)
	entries := store.NewScheduleStore(database.DB)
	reqs := store.NewRequestStore(database.DB)
	settings := store.NewSettingsStore(database.DB, cfg.MaxRequestsPerMonth, cfg.RotationBlockDays)
	return &PublicHandler{
		employees: employees,
		entries:   entries,
		reqs:      reqs,
		svc:       requests.NewService(employees, entries, reqs, settings),
	}
}

// GET /public/shifts?account=&week=YYYY-MM-DD
func (h *PublicHandler) WeekView(c echo.Context) error {
	owner, err := accountParam(c, "account")
	if err != nil {
		return err
	}
	day, ok := parseDate(c.QueryParam("week"))
	if !ok {
		day = time.Now().UTC()
	}

	emps, err := h.employees.Active(owner)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	days := schedule.WeekDates(day)
	entries, err := h.entries.EntriesBetween(owner, days[0], days[6])
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	groups := schedule.BuildGroups(emps)
	start, _ := time.Parse(schedule.DateLayout, days[0])
	end, _ := time.Parse(schedule.DateLayout, days[6])
	return c.JSON(http.StatusOK, schedule.Project(entries, start, end, groups))
}

// GET /public/swap-targets?account=&date=&exclude=
//
// Candidate partners for a swap: employees holding a filled shift on the
// given date, minus the requester.
func (h *PublicHandler) SwapTargets(c echo.Context) error {
	owner, err := accountParam(c, "account")
	if err != nil {
		return err
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if _, ok := parseDate(date); !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}
	exclude, _ := uuid.Parse(c.QueryParam("exclude"))

	var entries []models.ScheduleEntry
	if err := database.DB.
		Where("user_id = ? AND date = ? AND type = ?", owner, date, models.EntryFilled).
		Order("employee_name ASC").
		Find(&entries).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		if e.EmployeeID == exclude {
			continue
		}
		out = append(out, map[string]any{
			"employee_id":   e.EmployeeID,
			"employee_name": e.EmployeeName,
			"shift_name":    e.ShiftName,
			"shift_time":    e.ShiftTime,
		})
	}
	return c.JSON(http.StatusOK, out)
}

type createRequestReq struct {
	Account          string `json:"account" validate:"required,uuid"`
	EmployeeID       string `json:"employee_id" validate:"required,uuid"`
	Pin              string `json:"pin" validate:"required"`
	Type             string `json:"type" validate:"required,oneof=swap leave"`
	OriginalDate     string `json:"original_date" validate:"required"`
	TargetDate       string `json:"target_date"`
	TargetEmployeeID string `json:"target_employee_id"`
	Reason           string `json:"reason" validate:"max=500"`
}

// POST /public/requests
func (h *PublicHandler) CreateRequest(c echo.Context) error {
	var req createRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if _, ok := parseDate(req.OriginalDate); !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	in := requests.CreateInput{
		OwnerID:      uuid.MustParse(req.Account),
		RequesterID:  uuid.MustParse(req.EmployeeID),
		PIN:          strings.TrimSpace(req.Pin),
		Type:         req.Type,
		OriginalDate: req.OriginalDate,
		TargetDate:   strings.TrimSpace(req.TargetDate),
		Reason:       strings.TrimSpace(req.Reason),
	}
	if req.TargetEmployeeID != "" {
		id, err := uuid.Parse(req.TargetEmployeeID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_TARGET"})
		}
		in.TargetEmployeeID = id
	}

	created, err := h.svc.Create(in)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrPinMismatch):
			return c.JSON(http.StatusUnauthorized, map[string]any{"error": "PIN_MISMATCH"})
		case errors.Is(err, requests.ErrQuotaExceeded):
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "QUOTA_EXCEEDED"})
		case errors.Is(err, requests.ErrInvalidTarget):
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "INVALID_TARGET"})
		case errors.Is(err, requests.ErrInvalidType):
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_TYPE"})
		default:
			return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
	}
	return c.JSON(http.StatusCreated, created)
}

type inboxReq struct {
	Account string `json:"account" validate:"required,uuid"`
	Pin     string `json:"pin" validate:"required"`
}

// unlockInbox resolves which employee a submitted PIN belongs to.
func (h *PublicHandler) unlockInbox(c echo.Context) (uuid.UUID, models.Employee, error) {
	var req inboxReq
	if err := c.Bind(&req); err != nil {
		return uuid.Nil, models.Employee{}, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return uuid.Nil, models.Employee{}, err
	}

	owner := uuid.MustParse(req.Account)
	emp, err := h.employees.FindByPIN(owner, strings.TrimSpace(req.Pin))
	if err != nil {
		if errors.Is(err, requests.ErrPinMismatch) {
			return uuid.Nil, models.Employee{}, echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "PIN_MISMATCH"})
		}
		return uuid.Nil, models.Employee{}, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return owner, emp, nil
}

// POST /public/inbox
//
// Lists swap requests waiting on the caller's approval. POST because the PIN
// travels in the body.
func (h *PublicHandler) Inbox(c echo.Context) error {
	owner, emp, err := h.unlockInbox(c)
	if err != nil {
		return err
	}

	rows, err := h.reqs.PendingForPartner(owner, emp.ID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	views, err := enrichRequests(owner, rows)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"employee": map[string]any{"id": emp.ID, "name": emp.Name},
		"requests": views,
	})
}

// POST /public/inbox/:id/approve
// POST /public/inbox/:id/reject
func (h *PublicHandler) InboxDecide(approve bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
		}

		owner, emp, err := h.unlockInbox(c)
		if err != nil {
			return err
		}

		// The PIN holder must be the swap partner the request names.
		row, err := h.reqs.Get(owner, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
			}
			return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
		if row.TargetEmployeeID == nil || *row.TargetEmployeeID != emp.ID {
			return c.JSON(http.StatusForbidden, map[string]any{"error": "NOT_YOUR_REQUEST"})
		}

		decided, err := h.svc.PartnerDecide(owner, id, approve)
		if err != nil {
			if errors.Is(err, requests.ErrInvalidState) {
				return c.JSON(http.StatusConflict, map[string]any{"error": "INVALID_STATE"})
			}
			return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, decided)
	}
}
