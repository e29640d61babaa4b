package db

import (
	"log"
	"os"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=dijitalpati port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedTopics(DB)
}

// Migrate creates/updates the schema. The votes table carries a composite
// unique index on (post_id, user_id); the vote ledger depends on it.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Topic{},
		&models.Pet{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Watch{},
		&models.Notification{},
		&models.Report{},
		&models.News{},
	)
}

func seedTopics(gdb *gorm.DB) {
	var count int64
	gdb.Model(&models.Topic{}).Count(&count)
	if count > 0 {
		return
	}

	topics := []models.Topic{
		{Name: "lost-and-found", Description: "Lost and found pet reports"},
		{Name: "general", Description: "General pet talk"},
		{Name: "health", Description: "Veterinary and health questions"},
		{Name: "adoption", Description: "Adoption and rehoming"},
	}

	for _, topic := range topics {
		if err := gdb.Create(&topic).Error; err != nil {
			log.Printf("Failed to create topic %s: %v", topic.Name, err)
		}
	}
	log.Println("Initial topics created")
}
