package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Wadidurrahman/shiftara-web/database"
	"github.com/Wadidurrahman/shiftara-web/models"
	"github.com/Wadidurrahman/shiftara-web/schedule"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// GET /admin/dashboard/summary
//
// Headline counters for the admin landing page: active headcount, how much of
// the current week is already filled, and requests awaiting a decision.
func (h *DashboardHandler) Summary(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	days := schedule.WeekDates(time.Now().UTC())

	var (
		cntEmployees int64
		cntFilled    int64
		cntLeave     int64
		cntPending   int64
	)

	database.DB.Model(&models.Employee{}).
		Where("user_id = ? AND status = ?", owner, models.EmployeeActive).
		Count(&cntEmployees)
	database.DB.Model(&models.ScheduleEntry{}).
		Where("user_id = ? AND date BETWEEN ? AND ? AND type = ?", owner, days[0], days[6], models.EntryFilled).
		Count(&cntFilled)
	database.DB.Model(&models.ScheduleEntry{}).
		Where("user_id = ? AND date BETWEEN ? AND ? AND type = ?", owner, days[0], days[6], models.EntryLeave).
		Count(&cntLeave)
	database.DB.Model(&models.Request{}).
		Where("user_id = ? AND status = ?", owner, models.StatusPendingAdmin).
		Count(&cntPending)

	totalSlots := cntEmployees * 7
	return c.JSON(http.StatusOK, map[string]any{
		"week_start":       days[0],
		"active_employees": cntEmployees,
		"filled_slots":     cntFilled,
		"leave_slots":      cntLeave,
		"total_slots":      totalSlots,
		"pending_requests": cntPending,
	})
}
