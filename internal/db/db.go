package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"trustsitter/internal/models"
)

// Init opens the postgres connection and runs migrations. TranslateError is
// enabled so unique-constraint violations surface as gorm.ErrDuplicatedKey.
func Init(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate is separate from Init so tests can run it against their own
// database instances.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.Sitter{},
		&models.Availability{},
	)
}
