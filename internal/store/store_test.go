package store

import (
	"context"
	"testing"
	"time"

	"github.com/AdamBeresnev/afcon-predictor/internal/db"
	"github.com/AdamBeresnev/afcon-predictor/internal/tournament"
	users "github.com/AdamBeresnev/afcon-predictor/internal/user"
	"github.com/AdamBeresnev/afcon-predictor/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	// Every new connection would get its own empty in-memory database
	database.SetMaxOpenConns(1)

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	require.NoError(t, db.RunMigrations(database.DB, "../../migrations"), "Failed to apply migrations")

	return database
}

type fixture struct {
	home, away tournament.Team
	group      tournament.Match
	final      tournament.Match
}

func seedMatches(t *testing.T, database *sqlx.DB, store *TournamentStore) fixture {
	t.Helper()

	f := fixture{
		home: tournament.Team{ID: uuid.New(), Name: "Morocco"},
		away: tournament.Team{ID: uuid.New(), Name: "Senegal"},
	}
	kickoff := time.Date(2025, 12, 21, 20, 0, 0, 0, time.UTC)

	f.group = tournament.Match{
		ID:         uuid.New(),
		Stage:      tournament.StageGroup,
		GroupCode:  utils.Ptr("A"),
		KickoffAt:  kickoff,
		HomeTeamID: f.home.ID,
		AwayTeamID: f.away.ID,
	}
	f.final = tournament.Match{
		ID:         uuid.New(),
		Stage:      tournament.StageFinal,
		KickoffAt:  kickoff.Add(27 * 24 * time.Hour),
		HomeTeamID: f.away.ID,
		AwayTeamID: f.home.ID,
	}

	tx, err := database.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, store.CreateTeams(context.Background(), tx, []tournament.Team{f.home, f.away}))
	require.NoError(t, store.CreateMatches(context.Background(), tx, []tournament.Match{f.final, f.group}))
	require.NoError(t, tx.Commit())

	return f
}

func seedUser(t *testing.T, store *UserStore, username string) *users.User {
	t.Helper()

	u := &users.User{
		ID:       uuid.New(),
		Email:    username + "@afcon.local",
		Username: username,
		FullName: "Test " + username,
	}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}
