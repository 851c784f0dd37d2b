package initializers

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shopcore/models"
)

var DB *gorm.DB

func ConnectDB(config *Config) {
	var err error
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		config.DBHost, config.DBUserName, config.DBPassword, config.DBName, config.DBPort)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to the database: ", err)
	}

	DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`)

	err = DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductTag{},
		&models.ProductBundle{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Shipment{},
		&models.ShipmentItem{},
		&models.Delivery{},
		&models.Cancellation{},
		&models.Account{},
		&models.Transaction{},
		&models.Tag{},
		&models.TagModeration{},
	)
	if err != nil {
		log.Fatal("Migration failed: ", err)
	}

	log.Println("Connected to the database")
}
