package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Wadidurrahman/shiftara-web/config"
	"github.com/Wadidurrahman/shiftara-web/database"
	"github.com/Wadidurrahman/shiftara-web/handlers"
	"github.com/Wadidurrahman/shiftara-web/routes"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Fails fast when the database is unreachable.
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Validator = handlers.NewValidator()

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
