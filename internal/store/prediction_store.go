package store

import (
	"context"

	"github.com/AdamBeresnev/afcon-predictor/internal/tournament"
	"github.com/jmoiron/sqlx"
)

// PredictionStore keeps at most one prediction per (match_id, user_id).
// The pair is the table's primary key and every write goes through UpsertPrediction.
type PredictionStore struct {
	db *sqlx.DB
}

const (
	upsertPredictionQuery = `
		INSERT INTO predictions (match_id, user_id, pred_home, pred_away, pred_pens_home, pred_pens_away, updated_at)
		VALUES (:match_id, :user_id, :pred_home, :pred_away, :pred_pens_home, :pred_pens_away, :updated_at)
		ON CONFLICT (match_id, user_id) DO UPDATE SET
		pred_home = excluded.pred_home,
		pred_away = excluded.pred_away,
		pred_pens_home = excluded.pred_pens_home,
		pred_pens_away = excluded.pred_pens_away,
		updated_at = excluded.updated_at
	`
	getPredictionQuery = `
		SELECT match_id, user_id, pred_home, pred_away, pred_pens_home, pred_pens_away, updated_at
		FROM predictions
		WHERE match_id = ? AND user_id = ?
	`
	listPredictionsForUserQuery = `
		SELECT p.match_id, p.user_id, p.pred_home, p.pred_away, p.pred_pens_home, p.pred_pens_away, p.updated_at
		FROM predictions p
		JOIN matches m ON m.id = p.match_id
		WHERE p.user_id = ?
		ORDER BY m.kickoff_at ASC
	`
	listScorableQuery = `
		SELECT p.match_id, p.user_id, p.pred_home, p.pred_away, p.pred_pens_home, p.pred_pens_away, p.updated_at,
			m.stage, m.result_home, m.result_away, m.result_pens_home, m.result_pens_away
		FROM predictions p
		JOIN matches m ON m.id = p.match_id
		ORDER BY m.kickoff_at ASC, p.user_id ASC
	`
	leaderboardQuery = `
		SELECT lb.user_id, u.username, u.full_name, lb.total_points
		FROM v_leaderboard lb
		JOIN users u ON u.id = lb.user_id
		ORDER BY lb.total_points DESC, u.username ASC
	`
)

func NewPredictionStore(db *sqlx.DB) *PredictionStore {
	return &PredictionStore{db: db}
}

// Inserts the prediction or fully replaces the existing one for the same pair, in a single statement
func (s *PredictionStore) UpsertPrediction(ctx context.Context, p *tournament.Prediction) error {
	_, err := s.db.NamedExecContext(ctx, upsertPredictionQuery, p)
	return err
}

// Returns sql.ErrNoRows when the participant has not predicted the match
func (s *PredictionStore) GetPrediction(ctx context.Context, matchID, userID string) (*tournament.Prediction, error) {
	var p tournament.Prediction
	if err := s.db.GetContext(ctx, &p, getPredictionQuery, matchID, userID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PredictionStore) ListPredictionsForUser(ctx context.Context, userID string) ([]tournament.Prediction, error) {
	var predictions []tournament.Prediction
	err := s.db.SelectContext(ctx, &predictions, listPredictionsForUserQuery, userID)
	return predictions, err
}

// Every stored prediction with its match result, results may still be nil
func (s *PredictionStore) ListScorable(ctx context.Context) ([]tournament.ScorablePrediction, error) {
	var rows []tournament.ScorablePrediction
	err := s.db.SelectContext(ctx, &rows, listScorableQuery)
	return rows, err
}

func (s *PredictionStore) GetLeaderboard(ctx context.Context) ([]tournament.LeaderboardEntry, error) {
	var entries []tournament.LeaderboardEntry
	err := s.db.SelectContext(ctx, &entries, leaderboardQuery)
	return entries, err
}
