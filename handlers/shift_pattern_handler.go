package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Wadidurrahman/shiftara-web/database"
	"github.com/Wadidurrahman/shiftara-web/models"
)

var reTimeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-4]):[0-5][0-9]$`)

type ShiftPatternHandler struct{}

func NewShiftPatternHandler() *ShiftPatternHandler { return &ShiftPatternHandler{} }

// GET /admin/shift-patterns
func (h *ShiftPatternHandler) List(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	var rows []models.ShiftPattern
	if err := database.DB.
		Where("user_id = ?", owner).
		Order("start_time ASC, name ASC").
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type patternPayload struct {
	ID        string `json:"id"` // empty for new rows
	Name      string `json:"name" validate:"required,max=60"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type savePatternsReq struct {
	Patterns []patternPayload `json:"patterns" validate:"dive"`
}

// PUT /admin/shift-patterns
//
// Bulk save, settings-page style: the submitted list becomes the tenant's
// pattern set. Rows with a known id are updated, new rows inserted, missing
// rows deleted, all in one transaction. Committed schedule entries keep
// their snapshots and are not touched.
func (h *ShiftPatternHandler) SaveAll(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var req savePatternsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fieldErrs := map[string]string{}
	for i := range req.Patterns {
		p := &req.Patterns[i]
		p.Name = strings.Join(strings.Fields(p.Name), " ")
		p.StartTime = strings.TrimSpace(p.StartTime)
		p.EndTime = strings.TrimSpace(p.EndTime)
		if !reTimeOfDay.MatchString(p.StartTime) {
			fieldErrs["start_time"] = "must be HH:MM"
		}
		if !reTimeOfDay.MatchString(p.EndTime) {
			fieldErrs["end_time"] = "must be HH:MM"
		}
	}
	if len(fieldErrs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "fields": fieldErrs})
	}

	keep := make([]uuid.UUID, 0, len(req.Patterns))
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for _, p := range req.Patterns {
			if p.ID != "" {
				id, err := uuid.Parse(p.ID)
				if err != nil {
					return err
				}
				res := tx.Model(&models.ShiftPattern{}).
					Where("user_id = ? AND id = ?", owner, id).
					Updates(map[string]any{"name": p.Name, "start_time": p.StartTime, "end_time": p.EndTime})
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected > 0 {
					keep = append(keep, id)
					continue
				}
				// unknown id: fall through and insert as new
			}
			rec := models.ShiftPattern{
				Name:      p.Name,
				StartTime: p.StartTime,
				EndTime:   p.EndTime,
				OwnerID:   owner,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			keep = append(keep, rec.ID)
		}

		del := tx.Where("user_id = ?", owner)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		return del.Delete(&models.ShiftPattern{}).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	return h.List(c)
}
