package Models

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(storagePath string) {
	connection, err := gorm.Open(sqlite.Open(storagePath))
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	DB = connection

	// Enforce FK cascades; sqlite has them off by default.
	DB.Exec("PRAGMA foreign_keys = ON")

	Migrate(DB)
}

// Migrate runs AutoMigrate in dependency order.
func Migrate(db *gorm.DB) {
	// 1. Base entities with no foreign keys
	db.AutoMigrate(
		&User{},
		&Film{},
	)

	// 2. Simple foreign key relationships
	db.AutoMigrate(
		&FilmInventory{},
		&JobEntry{},
	)

	// 3. Job children and the inventory ledger
	db.AutoMigrate(
		&JobDimension{},
		&JobInstaller{},
		&RedoEntry{},
		&InstallerTimeEntry{},
		&JobPhoto{},
		&InventoryTransaction{},
	)

	db.AutoMigrate(&RequestLog{})
}

// SeedAdmin creates the initial manager account when no users exist yet.
func SeedAdmin(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := User{
		FirstName: "Shop",
		LastName:  "Manager",
		Email:     email,
		Password:  hash,
		Role:      RoleManager,
	}
	return db.Create(&admin).Error
}
