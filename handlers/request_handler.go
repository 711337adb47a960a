package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Wadidurrahman/shiftara-web/config"
	"github.com/Wadidurrahman/shiftara-web/database"
	"github.com/Wadidurrahman/shiftara-web/models"
	"github.com/Wadidurrahman/shiftara-web/requests"
	"github.com/Wadidurrahman/shiftara-web/store"
)

// RequestHandler is the admin side of the swap/leave workflow.
type RequestHandler struct {
	svc *requests.Service
}

func NewRequestHandler(cfg *config.Config) *RequestHandler {
	employees := store.NewEmployeeStore(database.DB)
	entries := store.NewScheduleStore(database.DB)
	reqs := store.NewRequestStore(database.DB)
	settings := store.NewSettingsStore(database.DB, cfg.MaxRequestsPerMonth, cfg.RotationBlockDays)
	return &RequestHandler{svc: requests.NewService(employees, entries, reqs, settings)}
}

// requestView flattens a request row with the names the admin table shows.
type requestView struct {
	models.Request
	RequesterName string `json:"requester_name"`
	TargetName    string `json:"target_name,omitempty"`
}

func enrichRequests(owner uuid.UUID, rows []models.Request) ([]requestView, error) {
	ids := make([]uuid.UUID, 0, len(rows)*2)
	for _, r := range rows {
		ids = append(ids, r.RequesterID)
		if r.TargetEmployeeID != nil {
			ids = append(ids, *r.TargetEmployeeID)
		}
	}

	names := map[uuid.UUID]string{}
	if len(ids) > 0 {
		var emps []models.Employee
		if err := database.DB.
			Where("user_id = ? AND id IN ?", owner, ids).
			Find(&emps).Error; err != nil {
			return nil, err
		}
		for _, e := range emps {
			names[e.ID] = e.Name
		}
	}

	out := make([]requestView, 0, len(rows))
	for _, r := range rows {
		v := requestView{Request: r, RequesterName: names[r.RequesterID]}
		if r.TargetEmployeeID != nil {
			v.TargetName = names[*r.TargetEmployeeID]
		}
		out = append(out, v)
	}
	return out, nil
}

// GET /admin/requests?status=&type=&page=&size=
func (h *RequestHandler) List(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	status := strings.TrimSpace(c.QueryParam("status"))
	kind := strings.TrimSpace(c.QueryParam("type"))
	page := atoiOr(c.QueryParam("page"), 1)
	size := atoiOr(c.QueryParam("size"), 50)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}

	tx := database.DB.Model(&models.Request{}).Where("user_id = ?", owner)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if kind != "" {
		tx = tx.Where("type = ?", kind)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var rows []models.Request
	if err := tx.Order("created_at DESC").Offset((page - 1) * size).Limit(size).Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	views, err := enrichRequests(owner, rows)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": views, "total": total, "page": page, "size": size})
}

// GET /admin/requests/pending-count
//
// Badge counter for the sidebar: only requests already waiting on the admin.
func (h *RequestHandler) PendingCount(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	var n int64
	if err := database.DB.Model(&models.Request{}).
		Where("user_id = ? AND status = ?", owner, models.StatusPendingAdmin).
		Count(&n).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"pending": n})
}

// POST /admin/requests/:id/approve
// POST /admin/requests/:id/reject
func (h *RequestHandler) Decide(approve bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := ownerID(c)
		if err != nil {
			return err
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
		}

		req, err := h.svc.AdminDecide(owner, id, owner, approve)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
			case errors.Is(err, requests.ErrInvalidState):
				return c.JSON(http.StatusConflict, map[string]any{"error": "INVALID_STATE"})
			case errors.Is(err, requests.ErrInvalidTarget):
				return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "INVALID_TARGET"})
			default:
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
		}
		return c.JSON(http.StatusOK, req)
	}
}
