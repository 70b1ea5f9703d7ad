package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/oGrizz34/quant-canvas/internal/analytics"
	"github.com/oGrizz34/quant-canvas/internal/auth"
	"github.com/oGrizz34/quant-canvas/internal/graph"
	"github.com/oGrizz34/quant-canvas/internal/models"
	"github.com/oGrizz34/quant-canvas/internal/repository"
)

var (
	ErrStrategyNotFound = errors.New("strategy not found")
	ErrNotOwner         = errors.New("not the strategy owner")
	ErrInvalidName      = errors.New("invalid strategy name")
)

const (
	maxNameLen  = 200
	cloneSuffix = " (Copy)"
)

// StrategyService owns the strategy lifecycle: save (always a full-graph
// replacement), visibility, activation, clone, delete, and the analytics
// view. Ownership checks run against the explicit user capability.
type StrategyService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

type SaveStrategyInput struct {
	Name     string          `json:"name"`
	Content  json.RawMessage `json:"content"`
	IsPublic bool            `json:"is_public"`
}

// StrategyAnalytics is the analytics-page payload for one strategy.
type StrategyAnalytics struct {
	StrategyID uint64                  `json:"strategy_id"`
	Name       string                  `json:"name"`
	Summary    analytics.LedgerSummary `json:"summary"`
	Curve      []analytics.EquityPoint `json:"equity_curve"`
	Trades     []models.Trade          `json:"trades"`
}

func (s *StrategyService) ListOwn(ctx context.Context, user auth.User) ([]models.Strategy, error) {
	return s.Repo.ListStrategiesByOwner(ctx, user.ID)
}

func (s *StrategyService) Create(ctx context.Context, user auth.User, in SaveStrategyInput) (*models.Strategy, error) {
	name, content, err := s.validateInput(in)
	if err != nil {
		return nil, err
	}
	item := &models.Strategy{
		UserID:   user.ID,
		Name:     name,
		Content:  datatypes.JSON(content),
		IsPublic: in.IsPublic,
	}
	if err := s.Repo.CreateStrategy(ctx, item); err != nil {
		return nil, err
	}
	s.logInfo("strategy created", zap.Uint64("id", item.ID), zap.String("user", user.ID))
	return item, nil
}

// Save replaces the whole persisted graph; there is no incremental diffing.
func (s *StrategyService) Save(ctx context.Context, user auth.User, id uint64, in SaveStrategyInput) (*models.Strategy, error) {
	if _, err := s.getOwned(ctx, user, id); err != nil {
		return nil, err
	}
	name, content, err := s.validateInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateStrategyContent(ctx, id, name, content, in.IsPublic); err != nil {
		return nil, err
	}
	return s.Repo.GetStrategyByID(ctx, id)
}

// Get returns a strategy visible to the user (owned or public) after
// validating its persisted document. A failing document surfaces the load
// error and leaves the row untouched in storage.
func (s *StrategyService) Get(ctx context.Context, user auth.User, id uint64) (*models.Strategy, error) {
	item, err := s.getVisible(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if _, err := decodeGraph(item.Content); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *StrategyService) SetActive(ctx context.Context, user auth.User, id uint64, active bool) error {
	if _, err := s.getOwned(ctx, user, id); err != nil {
		return err
	}
	return s.Repo.SetStrategyActive(ctx, id, active)
}

func (s *StrategyService) Delete(ctx context.Context, user auth.User, id uint64) error {
	if _, err := s.getOwned(ctx, user, id); err != nil {
		return err
	}
	if err := s.Repo.DeleteStrategy(ctx, id); err != nil {
		return err
	}
	s.logInfo("strategy deleted", zap.Uint64("id", id), zap.String("user", user.ID))
	return nil
}

func (s *StrategyService) ListPublic(ctx context.Context, limit, offset int) ([]models.Strategy, error) {
	return s.Repo.ListPublicStrategies(ctx, repository.ListPublicStrategiesParams{Limit: limit, Offset: offset})
}

// Clone copies a visible strategy for the calling user: fresh id, provenance
// suffix on the name, private and paused, deep-copied graph. The historical
// performance columns are carried over as informational provenance, not as a
// promise of future results.
func (s *StrategyService) Clone(ctx context.Context, user auth.User, id uint64) (*models.Strategy, error) {
	src, err := s.getVisible(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if _, err := decodeGraph(src.Content); err != nil {
		return nil, err
	}
	name := src.Name + cloneSuffix
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	item := &models.Strategy{
		UserID:     user.ID,
		Name:       name,
		Content:    append(datatypes.JSON(nil), src.Content...),
		IsPublic:   false,
		IsActive:   false,
		WinRate:    src.WinRate,
		ReturnPct:  src.ReturnPct,
		TradeCount: src.TradeCount,
	}
	if err := s.Repo.CreateStrategy(ctx, item); err != nil {
		return nil, err
	}
	s.logInfo("strategy cloned",
		zap.Uint64("source", src.ID),
		zap.Uint64("clone", item.ID),
		zap.String("user", user.ID))
	return item, nil
}

func (s *StrategyService) Analytics(ctx context.Context, user auth.User, id uint64) (*StrategyAnalytics, error) {
	item, err := s.getVisible(ctx, user, id)
	if err != nil {
		return nil, err
	}
	trades, err := s.Repo.ListClosedTradesByStrategy(ctx, id)
	if err != nil {
		return nil, err
	}
	return &StrategyAnalytics{
		StrategyID: item.ID,
		Name:       item.Name,
		Summary:    analytics.Summarize(trades),
		Curve:      analytics.EquityCurve(trades),
		Trades:     trades,
	}, nil
}

func (s *StrategyService) getOwned(ctx context.Context, user auth.User, id uint64) (*models.Strategy, error) {
	item, err := s.Repo.GetStrategyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrStrategyNotFound
	}
	if item.UserID != user.ID {
		return nil, ErrNotOwner
	}
	return item, nil
}

// getVisible hides private strategies of other users entirely rather than
// admitting they exist.
func (s *StrategyService) getVisible(ctx context.Context, user auth.User, id uint64) (*models.Strategy, error) {
	item, err := s.Repo.GetStrategyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrStrategyNotFound
	}
	if item.UserID != user.ID && !item.IsPublic {
		return nil, ErrStrategyNotFound
	}
	return item, nil
}

func (s *StrategyService) validateInput(in SaveStrategyInput) (string, []byte, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > maxNameLen {
		return "", nil, fmt.Errorf("%w: must be 1-%d characters", ErrInvalidName, maxNameLen)
	}
	content := []byte(in.Content)
	if len(content) == 0 {
		content = []byte(`{"nodes":[],"edges":[]}`)
	}
	if _, err := decodeGraph(content); err != nil {
		return "", nil, err
	}
	return name, content, nil
}

func decodeGraph(content []byte) (graph.Graph, error) {
	doc, err := graph.ParseDocument(content)
	if err != nil {
		return graph.Graph{}, err
	}
	return graph.Deserialize(doc)
}

func (s *StrategyService) logInfo(msg string, fields ...zap.Field) {
	if s != nil && s.Logger != nil {
		s.Logger.Info(msg, fields...)
	}
}
