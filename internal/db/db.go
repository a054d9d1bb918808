package db

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/navalhaprime/barbershop-api/internal/config"
	"github.com/navalhaprime/barbershop-api/internal/domain/team"
	"github.com/navalhaprime/barbershop-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	sqlDB, err := sql.Open("pgx", cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Service{},
		&models.Product{},
		&models.TeamMember{},
		&models.Appointment{},
		&models.AppointmentProduct{},
		&models.Expense{},
		&models.CustomRevenue{},
		&models.BusinessHours{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedAdmin(db, cfg)
	seedBusinessHours(db)

	return db
}

// seedAdmin creates the first back-office login when the team table
// has no admin yet.
func seedAdmin(db *gorm.DB, cfg *config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	var count int64
	db.Model(&models.TeamMember{}).Where("role = ?", string(team.RoleAdmin)).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash admin password: %v", err)
		return
	}

	admin := models.TeamMember{
		Name:         cfg.AdminName,
		Role:         string(team.RoleAdmin),
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashed),
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("failed to seed admin: %v", err)
	}
}

// seedBusinessHours fills a default Tue-Sat 09:00-19:00 grid so the
// slot picker works before the owner configures anything.
func seedBusinessHours(db *gorm.DB) {
	var count int64
	db.Model(&models.BusinessHours{}).Count(&count)
	if count > 0 {
		return
	}

	for weekday := 0; weekday < 7; weekday++ {
		bh := models.BusinessHours{
			Weekday:    weekday,
			OpenTime:   "09:00",
			CloseTime:  "19:00",
			LunchStart: "12:00",
			LunchEnd:   "13:00",
			Active:     weekday >= 2 && weekday <= 6,
		}
		if err := db.Create(&bh).Error; err != nil {
			log.Printf("failed to seed business hours: %v", err)
			return
		}
	}
}
