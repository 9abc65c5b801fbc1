package service

import (
	"context"

	"github.com/AdamBeresnev/afcon-predictor/internal/store"
	"github.com/AdamBeresnev/afcon-predictor/internal/tournament"
)

type LeaderboardService struct {
	store *store.PredictionStore
}

func NewLeaderboardService(store *store.PredictionStore) *LeaderboardService {
	return &LeaderboardService{store: store}
}

type RankedEntry struct {
	Rank int
	tournament.LeaderboardEntry
}

// Highest total first, ties broken by username. Ranks are positions, tied totals do not share a rank.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context) ([]RankedEntry, error) {
	entries, err := s.store.GetLeaderboard(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedEntry, 0, len(entries))
	for i, e := range entries {
		ranked = append(ranked, RankedEntry{Rank: i + 1, LeaderboardEntry: e})
	}
	return ranked, nil
}
