package mysql

import (
	"errors"

	"communityhub/internal/model"
	"communityhub/internal/repository"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Open connects to MySQL. TranslateError lets duplicate-key violations
// surface as gorm.ErrDuplicatedKey regardless of driver error codes.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Community{},
		&model.Member{},
	)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicate
	default:
		return err
	}
}
