package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AdamBeresnev/afcon-predictor/internal/prediction"
	"github.com/AdamBeresnev/afcon-predictor/internal/store"
	"github.com/AdamBeresnev/afcon-predictor/internal/tournament"
	"github.com/google/uuid"
)

// ResultService records official scores. Callers must already have checked that the actor is an admin.
type ResultService struct {
	matches     *store.TournamentStore
	predictions *store.PredictionStore
}

func NewResultService(matches *store.TournamentStore, predictions *store.PredictionStore) *ResultService {
	return &ResultService{matches: matches, predictions: predictions}
}

// RecordResult validates the score with the same penalty rules as predictions and overwrites
// whatever result was stored before. Results are never locked.
func (s *ResultService) RecordResult(ctx context.Context, matchID uuid.UUID, in prediction.ScoreInput) (*tournament.Match, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	score, err := prediction.Validate(match.Stage, in)
	if err != nil {
		return nil, err
	}

	match.ResultHome = &score.Home
	match.ResultAway = &score.Away
	match.ResultPensHome = score.PensHome
	match.ResultPensAway = score.PensAway

	if err := s.matches.UpdateMatchResult(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// ClearResult removes a result entered by mistake
func (s *ResultService) ClearResult(ctx context.Context, matchID uuid.UUID) (*tournament.Match, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	match.ResultHome = nil
	match.ResultAway = nil
	match.ResultPensHome = nil
	match.ResultPensAway = nil

	if err := s.matches.UpdateMatchResult(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *ResultService) ListMatches(ctx context.Context) ([]tournament.Match, error) {
	return s.matches.ListMatches(ctx, store.MatchFilter{})
}

// ScoringExport is the read-only feed for the external points calculation
func (s *ResultService) ScoringExport(ctx context.Context) ([]tournament.ScorablePrediction, error) {
	return s.predictions.ListScorable(ctx)
}

func (s *ResultService) getMatch(ctx context.Context, matchID uuid.UUID) (*tournament.Match, error) {
	match, err := s.matches.GetMatch(ctx, matchID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, prediction.ErrNotFound
		}
		return nil, err
	}
	return match, nil
}
