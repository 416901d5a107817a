package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wallet-roaster/internal/logging"
	"github.com/wallet-roaster/internal/roast"
	"github.com/wallet-roaster/internal/types"
)

// RoastEngine names the roast provider to use for a request
type RoastEngine string

const (
	// EngineDeterministic scores with the rule engine only
	EngineDeterministic RoastEngine = "deterministic"
	// EngineGenerative scores with the generative provider, falling back to
	// the rule engine on any failure
	EngineGenerative RoastEngine = "ai"
)

// SnapshotSource provides wallet snapshots for roasting
type SnapshotSource interface {
	GetSnapshot(ctx context.Context, address string) (*types.WalletData, error)
}

// RoastService generates scored roasts for wallet addresses
type RoastService struct {
	snapshots     SnapshotSource
	deterministic roast.Provider
	generative    roast.Provider
	now           func() time.Time
	newID         func() string
	logger        *logging.Logger
}

// NewRoastService creates a new roast service. The generative provider is
// optional; requests for it fall back to the deterministic provider.
func NewRoastService(snapshots SnapshotSource, deterministic, generative roast.Provider) *RoastService {
	return &RoastService{
		snapshots:     snapshots,
		deterministic: deterministic,
		generative:    generative,
		now:           time.Now,
		newID:         uuid.NewString,
		logger:        logging.GetGlobalLogger().WithField("component", "RoastService"),
	}
}

// GenerateRoast builds a snapshot for the address and produces a roast with
// the requested engine
func (s *RoastService) GenerateRoast(ctx context.Context, address string, engine RoastEngine) (*types.RoastResult, error) {
	snapshot, err := s.snapshots.GetSnapshot(ctx, address)
	if err != nil {
		return nil, err
	}

	provider := s.providerFor(engine)
	result, err := provider.GenerateRoast(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	result.ID = s.newID()
	result.GeneratedAt = s.now()

	s.logger.WithFields(map[string]interface{}{
		"address": address,
		"engine":  string(engine),
		"score":   result.Score,
	}).Info("Roast generated")

	return result, nil
}

func (s *RoastService) providerFor(engine RoastEngine) roast.Provider {
	if engine == EngineGenerative && s.generative != nil {
		return s.generative
	}
	return s.deterministic
}
