package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Wadidurrahman/shiftara-web/database"
	"github.com/Wadidurrahman/shiftara-web/schedule"
	"github.com/Wadidurrahman/shiftara-web/store"
)

// PreviewHandler renders the committed roster as the read-only calendar the
// admin prints or shares.
type PreviewHandler struct {
	employees *store.EmployeeStore
	entries   *store.ScheduleStore
}

func NewPreviewHandler() *PreviewHandler {
	return &PreviewHandler{
		employees: store.NewEmployeeStore(database.DB),
		entries:   store.NewScheduleStore(database.DB),
	}
}

// GET /admin/schedule/preview?date=YYYY-MM-DD&mode=weekly|monthly
func (h *PreviewHandler) Calendar(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	day, ok := parseDate(c.QueryParam("date"))
	if !ok {
		day = time.Now().UTC()
	}

	var start, end time.Time
	switch strings.TrimSpace(c.QueryParam("mode")) {
	case "monthly":
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	case "", "weekly":
		start = schedule.WeekStart(day)
		end = start.AddDate(0, 0, 6)
	default:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_MODE"})
	}

	emps, err := h.employees.Active(owner)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	entries, err := h.entries.EntriesBetween(owner, start.Format(schedule.DateLayout), end.Format(schedule.DateLayout))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, schedule.Project(entries, start, end, schedule.BuildGroups(emps)))
}
