// Package analytics turns the raw trade ledger into the numbers the UI
// shows. Every function is a pure reduction over its input: no state, no
// I/O, same output for the same ledger no matter how often it is re-run on a
// refresh tick.
package analytics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oGrizz34/quant-canvas/internal/models"
)

// EquityPoint is one step of the cumulative realized-profit curve.
type EquityPoint struct {
	ExitTime   time.Time       `json:"exit_time"`
	Cumulative decimal.Decimal `json:"cumulative_profit"`
}

type LedgerSummary struct {
	TradeCount int `json:"trade_count"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`

	TotalProfit decimal.Decimal `json:"total_profit"`
	GrossWin    decimal.Decimal `json:"gross_win"`
	GrossLoss   decimal.Decimal `json:"gross_loss"`

	// ProfitFactor is gross win over gross loss. With no losing trades it is
	// defined as the gross win amount itself, keeping it finite.
	ProfitFactor decimal.Decimal `json:"profit_factor"`

	AvgWin  decimal.Decimal `json:"avg_win"`
	AvgLoss decimal.Decimal `json:"avg_loss"` // magnitude; the UI renders it negated

	// WinRate is a percentage rounded to one decimal; 0.0 for an empty ledger.
	WinRate float64 `json:"win_rate"`
}

// Summarize reduces a ledger of closed trades (ordered by exit time
// ascending) into summary statistics. A trade with zero profit counts as a
// loss: the win partition is strictly positive profit.
func Summarize(trades []models.Trade) LedgerSummary {
	s := LedgerSummary{
		TradeCount:   len(trades),
		TotalProfit:  decimal.Zero,
		GrossWin:     decimal.Zero,
		GrossLoss:    decimal.Zero,
		ProfitFactor: decimal.Zero,
		AvgWin:       decimal.Zero,
		AvgLoss:      decimal.Zero,
	}
	for _, t := range trades {
		p := tradeProfit(t)
		s.TotalProfit = s.TotalProfit.Add(p)
		if p.IsPositive() {
			s.Wins++
			s.GrossWin = s.GrossWin.Add(p)
		} else {
			s.Losses++
			s.GrossLoss = s.GrossLoss.Add(p)
		}
	}
	s.GrossLoss = s.GrossLoss.Abs()

	if s.GrossLoss.IsZero() {
		s.ProfitFactor = s.GrossWin
	} else {
		s.ProfitFactor = s.GrossWin.Div(s.GrossLoss)
	}
	if s.Wins > 0 {
		s.AvgWin = s.GrossWin.Div(decimal.NewFromInt(int64(s.Wins)))
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss.Div(decimal.NewFromInt(int64(s.Losses)))
	}
	if s.TradeCount > 0 {
		s.WinRate = roundRate(float64(s.Wins) / float64(s.TradeCount) * 100)
	}
	return s
}

// EquityCurve emits one point per trade in ledger order, carrying the running
// profit sum. An empty ledger yields an empty curve.
func EquityCurve(trades []models.Trade) []EquityPoint {
	if len(trades) == 0 {
		return nil
	}
	curve := make([]EquityPoint, 0, len(trades))
	running := decimal.Zero
	for _, t := range trades {
		running = running.Add(tradeProfit(t))
		point := EquityPoint{Cumulative: running}
		if t.ExitTime != nil {
			point.ExitTime = *t.ExitTime
		}
		curve = append(curve, point)
	}
	return curve
}

// tradeProfit treats a malformed row (closed without profit) as zero so one
// bad row never takes down the analytics view.
func tradeProfit(t models.Trade) decimal.Decimal {
	if t.Profit == nil {
		return decimal.Zero
	}
	return *t.Profit
}

func roundRate(pct float64) float64 {
	return math.Round(pct*10) / 10
}
