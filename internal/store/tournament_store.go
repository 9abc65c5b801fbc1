package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/AdamBeresnev/afcon-predictor/internal/tournament"
	"github.com/jmoiron/sqlx"
)

type TournamentStore struct {
	db *sqlx.DB
}

const (
	matchSelect = `
		SELECT m.id, m.stage, m.group_code, m.kickoff_at, m.home_team_id, m.away_team_id,
			home_team.name AS home_team_name, away_team.name AS away_team_name,
			m.result_home, m.result_away, m.result_pens_home, m.result_pens_away, m.created_at
		FROM matches m
		JOIN teams home_team ON home_team.id = m.home_team_id
		JOIN teams away_team ON away_team.id = m.away_team_id
	`
	updateMatchResultQuery = `
		UPDATE matches SET
		result_home = :result_home,
		result_away = :result_away,
		result_pens_home = :result_pens_home,
		result_pens_away = :result_pens_away
		WHERE id = :id
	`
)

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) CreateTeams(ctx context.Context, tx *sqlx.Tx, teams []tournament.Team) error {
	if len(teams) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO teams (id, name) VALUES (:id, :name)`, teams)
	return err
}

func (s *TournamentStore) CreateMatches(ctx context.Context, tx *sqlx.Tx, matches []tournament.Match) error {
	if len(matches) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO matches (id, stage, group_code, kickoff_at, home_team_id, away_team_id)
		VALUES (:id, :stage, :group_code, :kickoff_at, :home_team_id, :away_team_id)`, matches)
	return err
}

func (s *TournamentStore) CountMatches(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM matches")
	return count, err
}

// Returns sql.ErrNoRows when the match does not exist
func (s *TournamentStore) GetMatch(ctx context.Context, id string) (*tournament.Match, error) {
	var match tournament.Match
	err := s.db.GetContext(ctx, &match, matchSelect+" WHERE m.id = ?", id)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

type MatchFilter struct {
	Stage     *tournament.Stage
	GroupCode *string
}

// Matches ordered by kickoff, optionally narrowed to one stage and group
func (s *TournamentStore) ListMatches(ctx context.Context, filter MatchFilter) ([]tournament.Match, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Stage != nil {
		conditions = append(conditions, "m.stage = ?")
		args = append(args, *filter.Stage)
	}
	if filter.GroupCode != nil {
		conditions = append(conditions, "m.group_code = ?")
		args = append(args, *filter.GroupCode)
	}

	query := matchSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY m.kickoff_at ASC, m.id ASC"

	var matches []tournament.Match
	err := s.db.SelectContext(ctx, &matches, query, args...)
	return matches, err
}

func (s *TournamentStore) ListTeams(ctx context.Context) ([]tournament.Team, error) {
	var teams []tournament.Team
	err := s.db.SelectContext(ctx, &teams, "SELECT id, name FROM teams ORDER BY name ASC")
	return teams, err
}

// Writes the four result columns in one statement. Returns sql.ErrNoRows if no match was updated.
func (s *TournamentStore) UpdateMatchResult(ctx context.Context, match *tournament.Match) error {
	res, err := s.db.NamedExecContext(ctx, updateMatchResultQuery, match)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
