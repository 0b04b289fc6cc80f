package Models

import (
	"time"

	"gorm.io/datatypes"
)

// Draft is a saved, not yet uploaded snapshot of a ChecklistRecord. Key is
// "checklist_" followed by the creation time in unix milliseconds.
type Draft struct {
	Owner     string         `json:"-" gorm:"primaryKey;size:255"`
	Key       string         `json:"key" gorm:"primaryKey;size:64"`
	Timestamp int64          `json:"timestamp" gorm:"not null;index"`
	Plate     string         `json:"placa" gorm:"size:20"`
	Data      datatypes.JSON `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}
