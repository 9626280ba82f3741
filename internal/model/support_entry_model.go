package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupportEntry struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string         `gorm:"type:varchar(255);not null"`
	Content   string         `gorm:"type:text"`
	Category  string         `gorm:"type:varchar(64);index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (SupportEntry) TableName() string {
	return "support_entries"
}
