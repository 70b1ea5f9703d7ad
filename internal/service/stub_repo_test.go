package service

import (
	"context"
	"sort"

	"github.com/oGrizz34/quant-canvas/internal/models"
	"github.com/oGrizz34/quant-canvas/internal/repository"
)

// stubRepo is an in-memory Repository for service tests.
type stubRepo struct {
	nextID     uint64
	strategies map[uint64]*models.Strategy
	trades     []models.Trade
	signals    []models.Signal
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		nextID:     1,
		strategies: make(map[uint64]*models.Strategy),
	}
}

func (r *stubRepo) CreateStrategy(_ context.Context, item *models.Strategy) error {
	item.ID = r.nextID
	r.nextID++
	cp := *item
	r.strategies[item.ID] = &cp
	return nil
}

func (r *stubRepo) GetStrategyByID(_ context.Context, id uint64) (*models.Strategy, error) {
	item, ok := r.strategies[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *stubRepo) ListStrategiesByOwner(_ context.Context, userID string) ([]models.Strategy, error) {
	var out []models.Strategy
	for _, item := range r.strategies {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubRepo) ListPublicStrategies(_ context.Context, _ repository.ListPublicStrategiesParams) ([]models.Strategy, error) {
	var out []models.Strategy
	for _, item := range r.strategies {
		if item.IsPublic {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRepo) ListStrategies(_ context.Context) ([]models.Strategy, error) {
	var out []models.Strategy
	for _, item := range r.strategies {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRepo) UpdateStrategyContent(_ context.Context, id uint64, name string, content []byte, isPublic bool) error {
	if item, ok := r.strategies[id]; ok {
		item.Name = name
		item.Content = append([]byte(nil), content...)
		item.IsPublic = isPublic
	}
	return nil
}

func (r *stubRepo) SetStrategyActive(_ context.Context, id uint64, active bool) error {
	if item, ok := r.strategies[id]; ok {
		item.IsActive = active
	}
	return nil
}

func (r *stubRepo) UpdateStrategyStats(_ context.Context, id uint64, winRate float64, tradeCount int64) error {
	if item, ok := r.strategies[id]; ok {
		item.WinRate = &winRate
		item.TradeCount = &tradeCount
	}
	return nil
}

func (r *stubRepo) DeleteStrategy(_ context.Context, id uint64) error {
	delete(r.strategies, id)
	return nil
}

func (r *stubRepo) ListClosedTradesByStrategy(_ context.Context, strategyID uint64) ([]models.Trade, error) {
	var out []models.Trade
	for _, t := range r.trades {
		if t.StrategyID == strategyID && t.Status == models.TradeStatusClosed {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ExitTime == nil || out[j].ExitTime == nil {
			return false
		}
		return out[i].ExitTime.Before(*out[j].ExitTime)
	})
	return out, nil
}

func (r *stubRepo) ListTradesByOwner(_ context.Context, userID string) ([]models.Trade, error) {
	var out []models.Trade
	for _, t := range r.trades {
		if item, ok := r.strategies[t.StrategyID]; ok && item.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubRepo) CountTradesByStrategy(_ context.Context, strategyID uint64) (int64, error) {
	var n int64
	for _, t := range r.trades {
		if t.StrategyID == strategyID {
			n++
		}
	}
	return n, nil
}

func (r *stubRepo) ListRecentSignals(_ context.Context, limit int) ([]models.Signal, error) {
	if limit > len(r.signals) {
		limit = len(r.signals)
	}
	return r.signals[:limit], nil
}
