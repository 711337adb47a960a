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
	"github.com/Wadidurrahman/shiftara-web/schedule"
	"github.com/Wadidurrahman/shiftara-web/store"
)

type ScheduleHandler struct {
	employees *store.EmployeeStore
	entries   *store.ScheduleStore
	settings  *store.SettingsStore
}

func NewScheduleHandler(cfg *config.Config) *ScheduleHandler {
	return &ScheduleHandler{
		employees: store.NewEmployeeStore(database.DB),
		entries:   store.NewScheduleStore(database.DB),
		settings:  store.NewSettingsStore(database.DB, cfg.MaxRequestsPerMonth, cfg.RotationBlockDays),
	}
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(schedule.DateLayout, strings.TrimSpace(s))
	return t, err == nil
}

// loadWeek fetches the snapshot the grid is derived from: active employees
// plus the week's committed entries.
func (h *ScheduleHandler) loadWeek(owner uuid.UUID, anyDay time.Time) ([]models.Employee, []models.ScheduleEntry, schedule.Grid, error) {
	emps, err := h.employees.Active(owner)
	if err != nil {
		return nil, nil, schedule.Grid{}, err
	}
	days := schedule.WeekDates(anyDay)
	entries, err := h.entries.EntriesBetween(owner, days[0], days[6])
	if err != nil {
		return nil, nil, schedule.Grid{}, err
	}
	return emps, entries, schedule.BuildGrid(anyDay, emps, entries), nil
}

type weekRow struct {
	Employee models.Employee  `json:"employee"`
	Slots    [7]schedule.Slot `json:"slots"`
}

type weekDivision struct {
	Division string    `json:"division"`
	Rows     []weekRow `json:"rows"`
}

// GET /admin/schedule?week=YYYY-MM-DD
//
// The grid is always rebuilt from storage; nothing is cached between calls.
func (h *ScheduleHandler) Week(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	day, ok := parseDate(c.QueryParam("week"))
	if !ok {
		day = time.Now().UTC()
	}

	emps, _, grid, err := h.loadWeek(owner, day)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	groups := schedule.BuildGroups(emps)

	out := make([]weekDivision, 0, len(groups.Order))
	for _, div := range groups.Order {
		wd := weekDivision{Division: div}
		for _, emp := range groups.Members[div] {
			wd.Rows = append(wd.Rows, weekRow{Employee: emp, Slots: grid.Rows[emp.ID]})
		}
		out = append(out, wd)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"week_start": grid.WeekStart.Format(schedule.DateLayout),
		"days":       grid.Days,
		"divisions":  out,
	})
}

type saveSlotReq struct {
	EmployeeID     string `json:"employee_id" validate:"required,uuid"`
	Date           string `json:"date" validate:"required"`
	ShiftPatternID string `json:"shift_pattern_id" validate:"required,uuid"`
}

// POST /admin/schedule/slot
func (h *ScheduleHandler) SaveSlot(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	var req saveSlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if _, ok := parseDate(req.Date); !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	var emp models.Employee
	if err := database.DB.Where("user_id = ?", owner).First(&emp, "id = ?", uuid.MustParse(req.EmployeeID)).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "EMPLOYEE_NOT_FOUND"})
	}

	// The pattern is resolved before any write; a stale id fails here.
	var pattern models.ShiftPattern
	if err := database.DB.Where("user_id = ?", owner).First(&pattern, "id = ?", uuid.MustParse(req.ShiftPatternID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "INVALID_PATTERN"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	if err := h.entries.Assign(owner, emp, req.Date, pattern); err != nil {
		if errors.Is(err, schedule.ErrUniqueness) {
			return c.JSON(http.StatusConflict, map[string]any{"error": "UNIQUENESS_VIOLATION"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

type cellReq struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Date       string `json:"date" validate:"required"`
}

// POST /admin/schedule/leave
func (h *ScheduleHandler) MarkLeave(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	var req cellReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if _, ok := parseDate(req.Date); !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	if err := h.entries.MarkLeave(owner, uuid.MustParse(req.EmployeeID), req.Date); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "EMPLOYEE_NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// DELETE /admin/schedule/slot?employeeId=&date=
func (h *ScheduleHandler) ClearSlot(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	empID, err := uuid.Parse(c.QueryParam("employeeId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if _, ok := parseDate(date); !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	if err := h.entries.Clear(owner, empID, date); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

type moveReq struct {
	Source           cellReq `json:"source" validate:"required"`
	Target           cellReq `json:"target" validate:"required"`
	ConfirmOverwrite bool    `json:"confirm_overwrite"`
}

// POST /admin/schedule/move
//
// One endpoint for both branches of drag-and-drop: dropping on a filled cell
// swaps, dropping on an empty cell moves. Overwriting a leave cell requires
// confirm_overwrite, otherwise the call is refused with a 409 so the UI can
// warn the admin first.
func (h *ScheduleHandler) Move(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	var req moveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	_, okS := parseDate(req.Source.Date)
	_, okT := parseDate(req.Target.Date)
	if !okS || !okT {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	srcID := uuid.MustParse(req.Source.EmployeeID)
	dstID := uuid.MustParse(req.Target.EmployeeID)

	var srcEmp, dstEmp models.Employee
	if err := database.DB.Where("user_id = ?", owner).First(&srcEmp, "id = ?", srcID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "EMPLOYEE_NOT_FOUND"})
	}
	if err := database.DB.Where("user_id = ?", owner).First(&dstEmp, "id = ?", dstID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "EMPLOYEE_NOT_FOUND"})
	}

	srcEntry, err := h.entries.FindEntry(owner, srcID, req.Source.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	dstEntry, err := h.entries.FindEntry(owner, dstID, req.Target.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	plan, err := schedule.PlanMove(
		moveEnd(srcEmp, req.Source.Date, srcEntry),
		moveEnd(dstEmp, req.Target.Date, dstEntry),
	)
	if err != nil {
		if errors.Is(err, schedule.ErrEmptySource) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "EMPTY_SOURCE"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if plan.NeedsConfirm && !req.ConfirmOverwrite {
		return c.JSON(http.StatusConflict, map[string]any{"error": "CONFIRM_OVERWRITE_REQUIRED"})
	}

	if err := h.entries.ApplyMove(owner, plan); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "swapped": plan.IsSwap})
}

func moveEnd(emp models.Employee, date string, entry *models.ScheduleEntry) schedule.MoveEnd {
	slot := schedule.Slot{State: schedule.SlotEmpty, Date: date}
	if entry != nil {
		state := schedule.SlotFilled
		if entry.Type == models.EntryLeave {
			state = schedule.SlotLeave
		}
		slot = schedule.Slot{State: state, Date: date, ShiftName: entry.ShiftName, ShiftTime: entry.ShiftTime}
	}
	return schedule.MoveEnd{
		Ref:      schedule.CellRef{EmployeeID: emp.ID, Date: date},
		Employee: emp,
		Slot:     slot,
	}
}

type autoFillReq struct {
	Week      string `json:"week" validate:"required"`
	BlockDays int    `json:"block_days"` // 0 = tenant setting
}

// POST /admin/schedule/autofill
//
// Re-fetches the week, generates assignments for every still-empty cell and
// commits them. "Nothing to fill" is a distinct success, and a partially
// committed batch reports exactly which cells made it.
func (h *ScheduleHandler) AutoFill(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	var req autoFillReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	day, ok := parseDate(req.Week)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	var patterns []models.ShiftPattern
	if err := database.DB.Where("user_id = ?", owner).Order("start_time ASC").Find(&patterns).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	emps, _, grid, err := h.loadWeek(owner, day)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	groups := schedule.BuildGroups(emps)

	blockDays := req.BlockDays
	if blockDays < 1 {
		blockDays = h.settings.RotationBlockDays(owner)
	}

	batch, err := schedule.NewGenerator(blockDays).Fill(grid, groups, patterns)
	if err != nil {
		if errors.Is(err, schedule.ErrNoPatterns) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "NO_SHIFT_PATTERNS"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if len(batch) == 0 {
		return c.JSON(http.StatusOK, map[string]any{"ok": true, "filled": 0, "message": "NOTHING_TO_FILL"})
	}

	if err := h.entries.ApplyBatch(owner, batch); err != nil {
		var batchErr *schedule.BatchError
		if errors.As(err, &batchErr) {
			failed := make([]map[string]any, 0, len(batchErr.Failed))
			for _, f := range batchErr.Failed {
				failed = append(failed, map[string]any{
					"employee_id": f.Assignment.EmployeeID,
					"date":        f.Assignment.Date,
					"reason":      f.Err.Error(),
				})
			}
			return c.JSON(http.StatusConflict, map[string]any{
				"error":   "PARTIAL_BATCH",
				"applied": len(batchErr.Applied),
				"failed":  failed,
			})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{"ok": true, "filled": len(batch)})
}
