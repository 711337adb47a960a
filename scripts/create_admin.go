// scripts/create_admin.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Wadidurrahman/shiftara-web/config"
	"github.com/Wadidurrahman/shiftara-web/database"
	"github.com/Wadidurrahman/shiftara-web/models"
)

func main() {
	username := flag.String("username", "admin", "admin login name")
	password := flag.String("password", "", "initial password (required)")
	name := flag.String("name", "Administrator", "display name")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	_ = godotenv.Load()
	cfg := config.Load()
	database.Connect(cfg)

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.User
	if err := database.DB.Where("username = ?", *username).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("admin user already exists:", *username)
		os.Exit(0)
	}

	u := models.User{
		Username:     *username,
		PasswordHash: string(hashed),
		Role:         "admin",
		Name:         *name,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created")
	fmt.Println("  id:      ", u.ID)
	fmt.Println("  username:", u.Username)
}
