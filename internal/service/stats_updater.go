package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/oGrizz34/quant-canvas/internal/analytics"
	"github.com/oGrizz34/quant-canvas/internal/repository"
)

// StatsUpdater recomputes the denormalized performance columns on strategy
// rows from the closed-trade ledger. It runs on a schedule; strategy rows are
// eventually consistent with the ledger, never updated transactionally with it.
type StatsUpdater struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// UpdateOnce refreshes every strategy. A failure on one row is logged and
// skipped so a bad strategy cannot starve the rest.
func (u *StatsUpdater) UpdateOnce(ctx context.Context) error {
	if u == nil || u.Repo == nil {
		return nil
	}
	items, err := u.Repo.ListStrategies(ctx)
	if err != nil {
		return err
	}

	var updated int
	for i := range items {
		item := &items[i]
		closed, err := u.Repo.ListClosedTradesByStrategy(ctx, item.ID)
		if err != nil {
			u.logWarn("stats refresh: load trades failed", zap.Uint64("strategy", item.ID), zap.Error(err))
			continue
		}
		total, err := u.Repo.CountTradesByStrategy(ctx, item.ID)
		if err != nil {
			u.logWarn("stats refresh: count trades failed", zap.Uint64("strategy", item.ID), zap.Error(err))
			continue
		}
		summary := analytics.Summarize(closed)
		if err := u.Repo.UpdateStrategyStats(ctx, item.ID, summary.WinRate, total); err != nil {
			u.logWarn("stats refresh: update failed", zap.Uint64("strategy", item.ID), zap.Error(err))
			continue
		}
		updated++
	}

	if u.Logger != nil {
		u.Logger.Info("strategy stats refreshed",
			zap.Int("strategies", len(items)),
			zap.Int("updated", updated))
	}
	return nil
}

func (u *StatsUpdater) logWarn(msg string, fields ...zap.Field) {
	if u != nil && u.Logger != nil {
		u.Logger.Warn(msg, fields...)
	}
}
