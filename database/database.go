package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Wadidurrahman/shiftara-web/config"
	"github.com/Wadidurrahman/shiftara-web/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	// TranslateError lets callers match duplicate-key failures with
	// gorm.ErrDuplicatedKey; the schedule store's retry depends on it.
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.ShiftPattern{},
		&models.ScheduleEntry{},
		&models.Request{},
		&models.AppSetting{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}
