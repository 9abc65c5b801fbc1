package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AdamBeresnev/afcon-predictor/internal/prediction"
	"github.com/AdamBeresnev/afcon-predictor/internal/store"
	"github.com/AdamBeresnev/afcon-predictor/internal/tournament"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

type PredictionService struct {
	matches     *store.TournamentStore
	predictions *store.PredictionStore
	lock        prediction.LockPolicy
	clock       clockwork.Clock
}

func NewPredictionService(matches *store.TournamentStore, predictions *store.PredictionStore, lock prediction.LockPolicy, clock clockwork.Clock) *PredictionService {
	return &PredictionService{matches: matches, predictions: predictions, lock: lock, clock: clock}
}

// Submit stores the participant's prediction for the match, replacing any earlier one.
// The lock is checked before the score so a late submission is always ErrLocked.
// Storage errors are returned as they are and never retried.
func (s *PredictionService) Submit(ctx context.Context, matchID, userID uuid.UUID, in prediction.ScoreInput) (*tournament.Prediction, error) {
	match, err := s.matches.GetMatch(ctx, matchID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, prediction.ErrNotFound
		}
		return nil, err
	}

	now := s.clock.Now()
	if s.lock(now, match) {
		return nil, prediction.ErrLocked
	}

	score, err := prediction.Validate(match.Stage, in)
	if err != nil {
		return nil, err
	}

	p := &tournament.Prediction{
		MatchID:      match.ID,
		UserID:       userID,
		PredHome:     score.Home,
		PredAway:     score.Away,
		PredPensHome: score.PensHome,
		PredPensAway: score.PensAway,
		UpdatedAt:    now.UTC(),
	}
	if err := s.predictions.UpsertPrediction(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PredictionService) IsLocked(match *tournament.Match) bool {
	return s.lock(s.clock.Now(), match)
}

type MatchPrediction struct {
	Match      tournament.Match
	Prediction *tournament.Prediction
	Locked     bool
}

type StepData struct {
	Step    tournament.Step
	Index   int
	Total   int
	Prev    *tournament.Step
	Next    *tournament.Step
	Matches []MatchPrediction
}

// GetStep loads one wizard page: the step's matches in kickoff order with the participant's
// predictions. Locked matches are still returned so the participant can see what they predicted.
func (s *PredictionService) GetStep(ctx context.Context, userID uuid.UUID, kind, code string) (*StepData, error) {
	step, index, err := tournament.FindStep(kind, code)
	if err != nil {
		return nil, prediction.ErrNotFound
	}

	filter := store.MatchFilter{Stage: &step.Stage}
	if step.Stage == tournament.StageGroup {
		filter.GroupCode = &step.GroupCode
	}

	var (
		matches     []tournament.Match
		predictions []tournament.Prediction
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = s.matches.ListMatches(gCtx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		predictions, err = s.predictions.ListPredictionsForUser(gCtx, userID.String())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byMatch := make(map[uuid.UUID]*tournament.Prediction, len(predictions))
	for i := range predictions {
		byMatch[predictions[i].MatchID] = &predictions[i]
	}

	now := s.clock.Now()
	rows := make([]MatchPrediction, 0, len(matches))
	for i := range matches {
		rows = append(rows, MatchPrediction{
			Match:      matches[i],
			Prediction: byMatch[matches[i].ID],
			Locked:     s.lock(now, &matches[i]),
		})
	}

	prev, next := tournament.Neighbours(index)
	return &StepData{
		Step:    step,
		Index:   index,
		Total:   len(tournament.Steps()),
		Prev:    prev,
		Next:    next,
		Matches: rows,
	}, nil
}

func (s *PredictionService) ListForUser(ctx context.Context, userID uuid.UUID) ([]tournament.Prediction, error) {
	return s.predictions.ListPredictionsForUser(ctx, userID.String())
}

// GetMatchPrediction returns one match with the participant's prediction, used to redraw a single form
func (s *PredictionService) GetMatchPrediction(ctx context.Context, matchID, userID uuid.UUID) (*MatchPrediction, error) {
	match, err := s.matches.GetMatch(ctx, matchID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, prediction.ErrNotFound
		}
		return nil, err
	}

	row := &MatchPrediction{Match: *match, Locked: s.IsLocked(match)}
	p, err := s.predictions.GetPrediction(ctx, matchID.String(), userID.String())
	switch {
	case err == nil:
		row.Prediction = p
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}
	return row, nil
}
