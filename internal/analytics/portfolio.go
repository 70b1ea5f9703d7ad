package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oGrizz34/quant-canvas/internal/models"
)

// OpenPosition lists an open trade's entry metadata. There is no live price
// feed to mark against, so no unrealized profit is computed.
type OpenPosition struct {
	TradeID    uint64          `json:"trade_id"`
	StrategyID uint64          `json:"strategy_id"`
	Ticker     string          `json:"ticker"`
	EntryPrice decimal.Decimal `json:"entry_price"`
	EntryTime  time.Time       `json:"entry_time"`
}

type PortfolioSummary struct {
	RealizedProfit decimal.Decimal `json:"realized_profit"`
	WinRate        float64         `json:"win_rate"`
	Wins           int             `json:"wins"`
	OpenCount      int             `json:"open_count"`
	ClosedCount    int             `json:"closed_count"`
	Open           []OpenPosition  `json:"open"`
	History        []models.Trade  `json:"history"`
}

// Portfolio partitions all of a user's trades (any strategy, any order) into
// open positions and realized history, with the realized reductions scoped
// across all strategies combined. Empty input yields a zeroed summary.
func Portfolio(trades []models.Trade) PortfolioSummary {
	out := PortfolioSummary{RealizedProfit: decimal.Zero}
	for _, t := range trades {
		if t.Status == models.TradeStatusOpen {
			out.OpenCount++
			out.Open = append(out.Open, OpenPosition{
				TradeID:    t.ID,
				StrategyID: t.StrategyID,
				Ticker:     t.Ticker,
				EntryPrice: t.EntryPrice,
				EntryTime:  t.EntryTime,
			})
			continue
		}
		out.ClosedCount++
		out.History = append(out.History, t)
		p := tradeProfit(t)
		out.RealizedProfit = out.RealizedProfit.Add(p)
		if p.IsPositive() {
			out.Wins++
		}
	}
	if out.ClosedCount > 0 {
		out.WinRate = roundRate(float64(out.Wins) / float64(out.ClosedCount) * 100)
	}
	return out
}
