package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/AdamBeresnev/afcon-predictor/internal/db"
	"github.com/AdamBeresnev/afcon-predictor/internal/store"
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

const testFixtures = `
teams: [Morocco, Comoros, Mali, Zambia]
matches:
  - {stage: GROUP, group: A, kickoff: "2025-12-22T15:00:00Z", home: Mali, away: Zambia}
  - {stage: GROUP, group: A, kickoff: "2025-12-21T20:00:00+01:00", home: Morocco, away: Comoros}
  - {stage: R16, kickoff: "2026-01-03T17:00:00Z", home: Morocco, away: Zambia}
  - {stage: QF, kickoff: "2026-01-09T17:00:00Z", home: Mali, away: Comoros}
  - {stage: SF, kickoff: "2026-01-14T17:00:00Z", home: Morocco, away: Mali}
  - {stage: 3P, kickoff: "2026-01-17T17:00:00Z", home: Comoros, away: Zambia}
  - {stage: F, kickoff: "2026-01-18T20:00:00Z", home: Morocco, away: Comoros}
`

// Before every kickoff in testFixtures
var beforeTournament = time.Date(2025, 12, 20, 12, 0, 0, 0, time.UTC)

func seedFixtures(t *testing.T, database *sqlx.DB) *store.TournamentStore {
	t.Helper()

	tournamentStore := store.NewTournamentStore(database)
	n, err := NewFixtureService(database, tournamentStore).ImportFixtures(context.Background(), strings.NewReader(testFixtures))
	require.NoError(t, err)
	require.Equal(t, 7, n)
	return tournamentStore
}

func findMatch(t *testing.T, tournamentStore *store.TournamentStore, stage tournament.Stage) *tournament.Match {
	t.Helper()

	matches, err := tournamentStore.ListMatches(context.Background(), store.MatchFilter{Stage: utils.Ptr(stage)})
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	return &matches[0]
}

func seedParticipant(t *testing.T, database *sqlx.DB, username string) *users.User {
	t.Helper()

	u := &users.User{ID: uuid.New(), Email: username + "@afcon.local", Username: username}
	require.NoError(t, store.NewUserStore(database).CreateUser(context.Background(), u))
	return u
}
