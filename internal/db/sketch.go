package db

import "time"

// Sketch is a named drawing stored as a data URI. Rows are append-only.
type Sketch struct {
	ID      int64     `gorm:"primaryKey"`
	Name    string    `gorm:"type:text;not null"`
	Drawing string    `gorm:"type:text;not null"`
	Created time.Time `gorm:"column:created;not null;autoCreateTime;index:idx_sketches_created"`
}
