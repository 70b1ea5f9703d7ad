package repository

import (
	"context"

	"github.com/oGrizz34/quant-canvas/internal/models"
)

// Repository is the typed record store the core talks to. Trades and signals
// are written by the external execution process; this service reads them and
// owns only strategy rows.
type Repository interface {
	// Strategies
	CreateStrategy(ctx context.Context, item *models.Strategy) error
	GetStrategyByID(ctx context.Context, id uint64) (*models.Strategy, error)
	ListStrategiesByOwner(ctx context.Context, userID string) ([]models.Strategy, error)
	ListPublicStrategies(ctx context.Context, params ListPublicStrategiesParams) ([]models.Strategy, error)
	ListStrategies(ctx context.Context) ([]models.Strategy, error)
	UpdateStrategyContent(ctx context.Context, id uint64, name string, content []byte, isPublic bool) error
	SetStrategyActive(ctx context.Context, id uint64, active bool) error
	UpdateStrategyStats(ctx context.Context, id uint64, winRate float64, tradeCount int64) error
	DeleteStrategy(ctx context.Context, id uint64) error

	// Trade ledger (read-only here)
	ListClosedTradesByStrategy(ctx context.Context, strategyID uint64) ([]models.Trade, error)
	ListTradesByOwner(ctx context.Context, userID string) ([]models.Trade, error)
	CountTradesByStrategy(ctx context.Context, strategyID uint64) (int64, error)

	// Signal feed (read-only here)
	ListRecentSignals(ctx context.Context, limit int) ([]models.Signal, error)
}

type ListPublicStrategiesParams struct {
	Limit  int
	Offset int
}
