package models

import (
	"time"
)

// Entry is one key of the SQL-backed key-value store. Value holds the JSON
// encoded collection.
type Entry struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}
