package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type BySupportEntryID struct {
	SupportEntryID uuid.UUID
}

func (s BySupportEntryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("support_entry_id = ?", s.SupportEntryID)
}
