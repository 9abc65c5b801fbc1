package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/AdamBeresnev/afcon-predictor/internal/store"
	"github.com/AdamBeresnev/afcon-predictor/internal/tournament"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"
)

// FixtureService loads the tournament schedule. Teams and matches are only written once,
// the engine never creates or deletes matches afterwards.
type FixtureService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewFixtureService(db *sqlx.DB, store *store.TournamentStore) *FixtureService {
	return &FixtureService{db: db, store: store}
}

type FixtureFile struct {
	Teams   []string       `yaml:"teams"`
	Matches []FixtureMatch `yaml:"matches"`
}

type FixtureMatch struct {
	Stage   string `yaml:"stage"`
	Group   string `yaml:"group"`
	Kickoff string `yaml:"kickoff"`
	Home    string `yaml:"home"`
	Away    string `yaml:"away"`
}

func ParseFixtures(r io.Reader) ([]tournament.Team, []tournament.Match, error) {
	var file FixtureFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	teams := make([]tournament.Team, 0, len(file.Teams))
	teamIDs := make(map[string]uuid.UUID, len(file.Teams))
	for _, name := range file.Teams {
		if _, dup := teamIDs[name]; dup {
			return nil, nil, fmt.Errorf("%w: team %q listed twice", ErrInvalidFixture, name)
		}
		team := tournament.Team{ID: uuid.New(), Name: name}
		teamIDs[name] = team.ID
		teams = append(teams, team)
	}

	matches := make([]tournament.Match, 0, len(file.Matches))
	for i, fm := range file.Matches {
		stage, err := tournament.ParseStage(fm.Stage)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: match %d: %v", ErrInvalidFixture, i+1, err)
		}

		var groupCode *string
		if stage == tournament.StageGroup {
			g, err := tournament.ParseGroupCode(fm.Group)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: match %d: %v", ErrInvalidFixture, i+1, err)
			}
			groupCode = &g
		} else if fm.Group != "" {
			return nil, nil, fmt.Errorf("%w: match %d: knockout match cannot have a group", ErrInvalidFixture, i+1)
		}

		kickoff, err := time.Parse(time.RFC3339, fm.Kickoff)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: match %d: %v", ErrInvalidFixture, i+1, err)
		}

		homeID, ok := teamIDs[fm.Home]
		if !ok {
			return nil, nil, fmt.Errorf("%w: match %d: unknown team %q", ErrInvalidFixture, i+1, fm.Home)
		}
		awayID, ok := teamIDs[fm.Away]
		if !ok {
			return nil, nil, fmt.Errorf("%w: match %d: unknown team %q", ErrInvalidFixture, i+1, fm.Away)
		}
		if homeID == awayID {
			return nil, nil, fmt.Errorf("%w: match %d: a team cannot play itself", ErrInvalidFixture, i+1)
		}

		matches = append(matches, tournament.Match{
			ID:         uuid.New(),
			Stage:      stage,
			GroupCode:  groupCode,
			KickoffAt:  kickoff.UTC(),
			HomeTeamID: homeID,
			AwayTeamID: awayID,
		})
	}

	return teams, matches, nil
}

// ImportFixtures writes the schedule in one transaction. Returns 0 without touching
// anything if matches already exist.
func (s *FixtureService) ImportFixtures(ctx context.Context, r io.Reader) (int, error) {
	count, err := s.store.CountMatches(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	teams, matches, err := ParseFixtures(r)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := s.store.CreateTeams(ctx, tx, teams); err != nil {
		return 0, fmt.Errorf("failed to create teams: %w", err)
	}
	if err := s.store.CreateMatches(ctx, tx, matches); err != nil {
		return 0, fmt.Errorf("failed to create matches: %w", err)
	}

	return len(matches), tx.Commit()
}
