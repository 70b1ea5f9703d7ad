package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TradeStatusOpen   = "OPEN"
	TradeStatusClosed = "CLOSED"
)

// Trade is one row of the ledger. Rows are created and closed by the external
// execution process; this service only reads them.
type Trade struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StrategyID uint64 `gorm:"not null;index" json:"strategy_id"`
	Ticker     string `gorm:"type:varchar(20);not null" json:"ticker"`

	EntryPrice decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"entry_price"`
	EntryTime  time.Time       `gorm:"type:timestamptz;not null;index" json:"entry_time"`

	ExitPrice *decimal.Decimal `gorm:"type:numeric(20,8)" json:"exit_price,omitempty"`
	ExitTime  *time.Time       `gorm:"type:timestamptz;index" json:"exit_time,omitempty"`
	Profit    *decimal.Decimal `gorm:"type:numeric(20,8)" json:"profit,omitempty"`

	Status string `gorm:"type:varchar(10);not null;default:'OPEN';index" json:"status"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Trade) TableName() string {
	return "trades"
}
