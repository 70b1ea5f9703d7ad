package models

import (
	"time"

	"gorm.io/datatypes"
)

// Strategy is a user-owned node graph plus the informational performance
// columns the external executor and the stats refresher write back.
type Strategy struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID string `gorm:"type:varchar(100);not null;index" json:"user_id"`
	Name   string `gorm:"type:varchar(200);not null" json:"name"`

	// Content holds the serialized graph document (nodes + edges).
	Content datatypes.JSON `gorm:"type:jsonb;not null" json:"content"`

	IsPublic bool `gorm:"default:false;index" json:"is_public"`
	IsActive bool `gorm:"default:false;index" json:"is_active"`

	WinRate    *float64 `gorm:"type:numeric(6,1)" json:"win_rate,omitempty"`
	ReturnPct  *float64 `gorm:"type:numeric(10,2)" json:"return_pct,omitempty"`
	TradeCount *int64   `json:"trade_count,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Strategy) TableName() string {
	return "strategies"
}
