package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Wadidurrahman/shiftara-web/config"
	"github.com/Wadidurrahman/shiftara-web/handlers"
	"github.com/Wadidurrahman/shiftara-web/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	emp := handlers.NewEmployeeHandler()
	pat := handlers.NewShiftPatternHandler()
	sch := handlers.NewScheduleHandler(cfg)
	prev := handlers.NewPreviewHandler()
	req := handlers.NewRequestHandler(cfg)
	pub := handlers.NewPublicHandler(cfg)
	set := handlers.NewSettingsHandler(cfg)
	dash := handlers.NewDashboardHandler()

	e.GET("/health", handlers.Health)

	// ===== Public Auth =====
	e.POST("/admin/login", auth.AdminLogin)

	// ===== Public employee surface (PIN-gated where it mutates) =====
	e.GET("/public/shifts", pub.WeekView)
	e.GET("/public/swap-targets", pub.SwapTargets)
	e.POST("/public/requests", pub.CreateRequest)
	e.POST("/public/inbox", pub.Inbox)
	e.POST("/public/inbox/:id/approve", pub.InboxDecide(true))
	e.POST("/public/inbox/:id/reject", pub.InboxDecide(false))

	// ===== Admin routes =====
	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	admin := e.Group("/admin", authMW, middlewares.RequireRole("admin"))

	admin.PUT("/profile/password", auth.ChangePassword)
	admin.GET("/dashboard/summary", dash.Summary)

	admin.GET("/employees", emp.List)
	admin.POST("/employees", emp.Create)
	admin.PUT("/employees/:id", emp.Update)
	admin.DELETE("/employees/:id", emp.Deactivate)
	admin.POST("/employees/:id/pin", emp.ResetPIN)

	admin.GET("/shift-patterns", pat.List)
	admin.PUT("/shift-patterns", pat.SaveAll)

	admin.GET("/schedule", sch.Week)
	admin.POST("/schedule/slot", sch.SaveSlot)
	admin.DELETE("/schedule/slot", sch.ClearSlot)
	admin.POST("/schedule/leave", sch.MarkLeave)
	admin.POST("/schedule/move", sch.Move)
	admin.POST("/schedule/autofill", sch.AutoFill)
	admin.GET("/schedule/preview", prev.Calendar)

	admin.GET("/requests", req.List)
	admin.GET("/requests/pending-count", req.PendingCount)
	admin.POST("/requests/:id/approve", req.Decide(true))
	admin.POST("/requests/:id/reject", req.Decide(false))

	admin.GET("/settings", set.Get)
	admin.PUT("/settings", set.Save)
}
