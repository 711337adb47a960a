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
	"github.com/Wadidurrahman/shiftara-web/store"
)

var empRePin = regexp.MustCompile(`^[0-9]{4,6}$`)

type EmployeeHandler struct{}

func NewEmployeeHandler() *EmployeeHandler { return &EmployeeHandler{} }

type employeePayload struct {
	Name     string `json:"name" validate:"required,max=120"`
	Role     string `json:"role" validate:"max=60"`
	Division string `json:"division" validate:"max=60"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive"`
	Phone    string `json:"phone" validate:"max=20"`
	Pin      string `json:"pin"` // optional on create; 4-6 digits when present
}

func (p *employeePayload) norm() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.Role = strings.TrimSpace(p.Role)
	p.Division = strings.TrimSpace(p.Division)
	p.Status = strings.TrimSpace(p.Status)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Pin = strings.TrimSpace(p.Pin)
}

// GET /admin/employees?q=&status=&division=&page=&size=
func (h *EmployeeHandler) List(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	q := strings.TrimSpace(c.QueryParam("q"))
	status := strings.TrimSpace(c.QueryParam("status"))
	division := strings.TrimSpace(c.QueryParam("division"))
	page := atoiOr(c.QueryParam("page"), 1)
	size := atoiOr(c.QueryParam("size"), 50)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}

	tx := database.DB.Model(&models.Employee{}).Where("user_id = ?", owner)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if division != "" {
		tx = tx.Where("division = ?", division)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(role) LIKE ?", like, like)
	}

	var rows []models.Employee
	offset := (page - 1) * size
	if err := tx.Order("division ASC, name ASC").Offset(offset).Limit(size).Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/employees
func (h *EmployeeHandler) Create(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var p employeePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.norm()
	if err := c.Validate(&p); err != nil {
		return err
	}
	if p.Pin != "" && !empRePin.MatchString(p.Pin) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PIN"})
	}

	rec := models.Employee{
		Name:     p.Name,
		Role:     p.Role,
		Division: p.Division,
		Status:   models.EmployeeActive,
		Phone:    p.Phone,
		OwnerID:  owner,
	}
	if p.Status != "" {
		rec.Status = p.Status
	}
	if p.Pin != "" {
		hash, err := store.HashPIN(p.Pin)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
		}
		rec.PinHash = hash
	}

	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

// PUT /admin/employees/:id
func (h *EmployeeHandler) Update(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}

	var p employeePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.norm()
	if err := c.Validate(&p); err != nil {
		return err
	}

	var rec models.Employee
	if err := database.DB.Where("user_id = ?", owner).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	updates := map[string]any{
		"name":     p.Name,
		"role":     p.Role,
		"division": p.Division,
		"phone":    p.Phone,
	}
	if p.Status != "" {
		updates["status"] = p.Status
	}
	if err := database.DB.Model(&rec).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /admin/employees/:id
//
// Logical delete only: historical schedule entries keep referencing the row,
// so the employee is flipped to inactive instead of removed.
func (h *EmployeeHandler) Deactivate(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}

	res := database.DB.Model(&models.Employee{}).
		Where("user_id = ? AND id = ?", owner, id).
		Update("status", models.EmployeeInactive)
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

type resetPinReq struct {
	Pin string `json:"pin" validate:"required"`
}

// POST /admin/employees/:id/pin
//
// Sets or replaces the employee's self-service PIN. The PIN is returned to
// the admin once here; only the hash is stored.
func (h *EmployeeHandler) ResetPIN(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}

	var req resetPinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	req.Pin = strings.TrimSpace(req.Pin)
	if !empRePin.MatchString(req.Pin) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PIN"})
	}

	hash, err := store.HashPIN(req.Pin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
	}

	res := database.DB.Model(&models.Employee{}).
		Where("user_id = ? AND id = ?", owner, id).
		Update("pin_hash", hash)
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "pin": req.Pin})
}
