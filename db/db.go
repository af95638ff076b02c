package db

import (
	"log"
	"os"

	"talentbridge.com/types"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	var dialector gorm.Dialector

	if os.Getenv("DB_TYPE") == "POSTGRES_DSN" {
		dialector = postgres.Open(os.Getenv("POSTGRES_DSN"))
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "talentbridge.db"
		}
		dialector = sqlite.Open(path)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&types.Institution{},
		&types.Tenant{},
		&types.WaitlistEntry{},
		&types.BlockedStudent{},
		&types.ProjectMessage{},
		&types.DepositRecord{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}
