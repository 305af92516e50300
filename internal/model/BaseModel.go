package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Column names created_date/updated_date are load-bearing: the public sort
// grammar ("-created_date") references them.
type BaseModel struct {
	ID        string     `gorm:"type:text;primaryKey" json:"id"`
	CreatedAt *time.Time `gorm:"column:created_date;type:timestamptz;default:CURRENT_TIMESTAMP;not null;autoCreateTime" json:"created_date"`
	UpdatedAt *time.Time `gorm:"column:updated_date;type:timestamptz;default:CURRENT_TIMESTAMP;not null;autoUpdateTime" json:"updated_date"`
}

func (bm *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if bm.ID == "" {
		bm.ID = uuid.NewString()
	}
	return
}
