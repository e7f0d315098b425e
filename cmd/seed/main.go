package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kitchensaver/internal/config"
	"kitchensaver/internal/db"
	"kitchensaver/internal/model"
	"kitchensaver/internal/repository"
)

// Seeds the initial admin account so the first login is possible.
// Subsequent accounts are created through /api/user/createEmployee.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Job{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	email := getEnv("ADMIN_EMAIL", "admin@kitchensaver.local")
	password := getEnv("ADMIN_PASSWORD", "admin123")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	if _, err := userRepo.FindByEmail(ctx, email); err == nil {
		log.Printf("Admin %s already exists, nothing to do", email)
		return
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to check admin existence: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &model.User{
		FirstName: getEnv("ADMIN_FIRST_NAME", "Admin"),
		LastName:  getEnv("ADMIN_LAST_NAME", "User"),
		Email:     email,
		Username:  getEnv("ADMIN_USERNAME", "admin"),
		Cell:      getEnv("ADMIN_CELL", "000-000-0000"),
		Office:    getEnv("ADMIN_OFFICE", "Head Office"),
		Role:      model.RoleAdmin,
		Password:  string(hashed),
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Seeded admin %s (id=%d)", admin.Email, admin.ID)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
