package database

import (
	"fmt"
	"log"
	"os"

	"realestate-app/internal/domain/owners"
	"realestate-app/internal/domain/properties"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	// TranslateError maps driver errors onto gorm.ErrDuplicatedKey /
	// gorm.ErrForeignKeyViolated so callers can react per kind.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&owners.Owner{},

		&properties.Property{},
		&properties.PropertyImage{},
		&properties.PropertyTrace{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
