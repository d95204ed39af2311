package main

import (
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/azurvoyages/tours-api/internal/config"
	"github.com/azurvoyages/tours-api/internal/database"
	"github.com/azurvoyages/tours-api/internal/models"
)

func main() {
	email := flag.String("email", "admin@example.com", "Administrator email")
	password := flag.String("password", "", "Administrator password")
	flag.Parse()

	if *password == "" {
		log.Fatal("A password is required: -password <value>")
	}

	cfg := config.LoadConfig()
	db := database.Connect(cfg)

	var existing models.User
	if err := db.Where("email = ?", *email).First(&existing).Error; err == nil {
		log.Fatalf("A user with email %s already exists", *email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Email:    *email,
		Password: string(hashed),
		Roles:    datatypes.JSONSlice[string]{models.RoleAdmin},
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Administrator created: %s (roles: %v)", user.Email, user.RoleSet())
}
