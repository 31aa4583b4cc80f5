package model

import "time"

type Community struct {
	ID        string `gorm:"primaryKey;size:32"`
	Name      string `gorm:"size:64;not null"`
	Slug      string `gorm:"uniqueIndex;size:64;not null"`
	Owner     string `gorm:"size:32;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
