package models

import (
	"time"
)

// Signal is one entry of the append-only activity feed written by the
// external execution process.
type Signal struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Ticker  string `gorm:"type:varchar(20);index" json:"ticker"`
	Type    string `gorm:"type:varchar(20);index" json:"type"`
	Message string `gorm:"type:text" json:"message"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (Signal) TableName() string {
	return "signals"
}
