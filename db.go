package main

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"receiptbook/models"
)

func initDB(cfg Config) *gorm.DB {
	if cfg.DSN == "" {
		logger.Fatal().Msg("DB_DSN is not set; this service requires a Postgres DSN in DB_DSN")
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres database")
	}
	if cfg.AutoMigrate {
		// Migrate models individually so a failure on one doesn't block others.
		if err := db.AutoMigrate(&models.User{}); err != nil {
			logger.Warn().Err(err).Msg("migration warning (users)")
		}
		if err := db.AutoMigrate(&models.Entry{}); err != nil {
			logger.Warn().Err(err).Msg("migration warning (entries)")
		}
		if err := db.AutoMigrate(&models.Receipt{}); err != nil {
			logger.Warn().Err(err).Msg("migration warning (receipts)")
		}
	}
	seedDB(db)
	ensureUploadDir(cfg.UploadDir)
	return db
}

func seedDB(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin := models.User{Username: "admin", HashedPassword: hashed}
		if err := db.Create(&admin).Error; err != nil {
			logger.Warn().Err(err).Msg("failed to seed admin user")
			return
		}
		logger.Info().Msg("seeded admin user: username=admin, password=admin123")
	}
}

// ensureUploadDir creates the base directory for stored receipt images.
func ensureUploadDir(dir string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("failed to create upload dir")
	}
}
