package specification

import "gorm.io/gorm"

// SupportEntrySearchQuery filters entries by title or content.
type SupportEntrySearchQuery struct {
	Query string
}

func (s SupportEntrySearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	// ILIKE for Postgres (case insensitive)
	return db.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
}
