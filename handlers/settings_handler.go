package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Wadidurrahman/shiftara-web/config"
	"github.com/Wadidurrahman/shiftara-web/database"
	"github.com/Wadidurrahman/shiftara-web/models"
	"github.com/Wadidurrahman/shiftara-web/store"
)

type SettingsHandler struct {
	settings *store.SettingsStore
}

func NewSettingsHandler(cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{
		settings: store.NewSettingsStore(database.DB, cfg.MaxRequestsPerMonth, cfg.RotationBlockDays),
	}
}

// GET /admin/settings
func (h *SettingsHandler) Get(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	row, err := h.settings.Get(owner)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, row)
}

type settingsPayload struct {
	MaxRequestsPerMonth int    `json:"max_requests_per_month" validate:"min=0,max=31"`
	RotationBlockDays   int    `json:"rotation_block_days" validate:"min=1,max=14"`
	RequirePartnerPin   bool   `json:"require_partner_pin"`
	WaGroupLink         string `json:"wa_group_link" validate:"omitempty,url,max=200"`
}

// PUT /admin/settings
func (h *SettingsHandler) Save(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var p settingsPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.WaGroupLink = strings.TrimSpace(p.WaGroupLink)
	if err := c.Validate(&p); err != nil {
		return err
	}

	row := models.AppSetting{
		OwnerID:             owner,
		MaxRequestsPerMonth: p.MaxRequestsPerMonth,
		RotationBlockDays:   p.RotationBlockDays,
		RequirePartnerPin:   p.RequirePartnerPin,
		WaGroupLink:         p.WaGroupLink,
	}
	if err := h.settings.Save(&row); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, row)
}
