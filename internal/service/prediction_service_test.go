package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/AdamBeresnev/afcon-predictor/internal/prediction"
	"github.com/AdamBeresnev/afcon-predictor/internal/store"
	"github.com/AdamBeresnev/afcon-predictor/internal/tournament"
	"github.com/AdamBeresnev/afcon-predictor/internal/utils"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(home, away int, pens ...int) prediction.ScoreInput {
	in := prediction.ScoreInput{Home: utils.Ptr(home), Away: utils.Ptr(away)}
	if len(pens) == 2 {
		in.PensHome = utils.Ptr(pens[0])
		in.PensAway = utils.Ptr(pens[1])
	}
	return in
}

func TestSubmit_Scenarios(t *testing.T) {
	testCases := []struct {
		name     string
		stage    tournament.Stage
		input    prediction.ScoreInput
		wantErr  error
		wantPens bool
	}{
		{name: "group draw drops penalties", stage: tournament.StageGroup, input: score(2, 2, 5, 3)},
		{name: "decisive quarter-final", stage: tournament.StageQuarter, input: score(1, 0)},
		{name: "decisive knockout drops penalties", stage: tournament.StageRoundOf16, input: score(3, 1, 4, 2)},
		{name: "semi-final draw without penalties", stage: tournament.StageSemi, input: score(1, 1), wantErr: prediction.ErrPenaltiesRequired},
		{name: "final with level penalties", stage: tournament.StageFinal, input: score(0, 0, 4, 4), wantErr: prediction.ErrPenaltiesMustDiffer},
		{name: "third place draw with penalties", stage: tournament.StageThirdPlace, input: score(2, 2, 5, 4), wantPens: true},
		{name: "negative score", stage: tournament.StageGroup, input: score(-1, 0), wantErr: prediction.ErrInvalidScore},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			tournamentStore := seedFixtures(t, db)
			predictionStore := store.NewPredictionStore(db)
			clock := clockwork.NewFakeClockAt(beforeTournament)
			svc := NewPredictionService(tournamentStore, predictionStore, prediction.KickoffLock(), clock)

			user := seedParticipant(t, db, "amina")
			match := findMatch(t, tournamentStore, tc.stage)
			ctx := context.Background()

			p, err := svc.Submit(ctx, match.ID, user.ID, tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				_, getErr := predictionStore.GetPrediction(ctx, match.ID.String(), user.ID.String())
				assert.ErrorIs(t, getErr, sql.ErrNoRows, "rejected submissions must not be stored")
				return
			}
			require.NoError(t, err)

			stored, err := predictionStore.GetPrediction(ctx, match.ID.String(), user.ID.String())
			require.NoError(t, err)
			assert.Equal(t, *tc.input.Home, stored.PredHome)
			assert.Equal(t, *tc.input.Away, stored.PredAway)
			assert.Equal(t, p.PredHome, stored.PredHome)

			if tc.wantPens {
				require.NotNil(t, stored.PredPensHome)
				require.NotNil(t, stored.PredPensAway)
				assert.Equal(t, *tc.input.PensHome, *stored.PredPensHome)
				assert.Equal(t, *tc.input.PensAway, *stored.PredPensAway)
			} else {
				assert.Nil(t, stored.PredPensHome)
				assert.Nil(t, stored.PredPensAway)
			}
		})
	}
}

func TestSubmit_LockedAfterKickoff(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tournamentStore := seedFixtures(t, db)
	predictionStore := store.NewPredictionStore(db)
	match := findMatch(t, tournamentStore, tournament.StageRoundOf16)
	user := seedParticipant(t, db, "kofi")
	ctx := context.Background()

	clock := clockwork.NewFakeClockAt(match.KickoffAt.Add(-time.Nanosecond))
	svc := NewPredictionService(tournamentStore, predictionStore, prediction.KickoffLock(), clock)

	_, err := svc.Submit(ctx, match.ID, user.ID, score(0, 0, 3, 2))
	require.NoError(t, err, "a submission just before kickoff is accepted")

	clock.Advance(time.Nanosecond)
	_, err = svc.Submit(ctx, match.ID, user.ID, score(2, 2, 5, 4))
	assert.ErrorIs(t, err, prediction.ErrLocked, "kickoff itself is locked")

	clock.Advance(time.Hour)
	_, err = svc.Submit(ctx, match.ID, user.ID, score(2, 2, 4, 4))
	assert.ErrorIs(t, err, prediction.ErrLocked, "lock wins over penalty validation")

	stored, err := predictionStore.GetPrediction(ctx, match.ID.String(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, stored.PredHome)
	assert.Equal(t, 3, *stored.PredPensHome)
}

func TestSubmit_DeadlinePolicy(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tournamentStore := seedFixtures(t, db)
	deadline := time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(deadline)
	svc := NewPredictionService(tournamentStore, store.NewPredictionStore(db), prediction.DeadlineLock(deadline), clock)
	user := seedParticipant(t, db, "ama")

	// The final is weeks away but the global deadline has passed
	final := findMatch(t, tournamentStore, tournament.StageFinal)
	_, err := svc.Submit(context.Background(), final.ID, user.ID, score(1, 0))
	assert.ErrorIs(t, err, prediction.ErrLocked)
	assert.True(t, svc.IsLocked(final))
}

func TestSubmit_ReplaceOnConflict(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tournamentStore := seedFixtures(t, db)
	predictionStore := store.NewPredictionStore(db)
	svc := NewPredictionService(tournamentStore, predictionStore, prediction.KickoffLock(), clockwork.NewFakeClockAt(beforeTournament))
	user := seedParticipant(t, db, "yaw")
	other := seedParticipant(t, db, "efua")
	match := findMatch(t, tournamentStore, tournament.StageSemi)
	ctx := context.Background()

	_, err := svc.Submit(ctx, match.ID, user.ID, score(1, 1, 4, 3))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, match.ID, other.ID, score(0, 2))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, match.ID, user.ID, score(2, 0))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, match.ID, user.ID, score(2, 0))
	require.NoError(t, err)

	stored, err := predictionStore.GetPrediction(ctx, match.ID.String(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, stored.PredHome)
	assert.Equal(t, 0, stored.PredAway)
	assert.Nil(t, stored.PredPensHome)

	otherStored, err := predictionStore.GetPrediction(ctx, match.ID.String(), other.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, otherStored.PredAway)

	mine, err := svc.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestSubmit_UnknownMatch(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tournamentStore := seedFixtures(t, db)
	svc := NewPredictionService(tournamentStore, store.NewPredictionStore(db), prediction.KickoffLock(), clockwork.NewFakeClockAt(beforeTournament))
	user := seedParticipant(t, db, "salah")

	_, err := svc.Submit(context.Background(), uuid.New(), user.ID, score(1, 0))
	assert.ErrorIs(t, err, prediction.ErrNotFound)
}

func TestGetStep(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tournamentStore := seedFixtures(t, db)
	// Between the two group A kickoffs
	clock := clockwork.NewFakeClockAt(time.Date(2025, 12, 22, 12, 0, 0, 0, time.UTC))
	svc := NewPredictionService(tournamentStore, store.NewPredictionStore(db), prediction.KickoffLock(), clock)
	user := seedParticipant(t, db, "hakimi")
	ctx := context.Background()

	groupA, err := tournamentStore.ListMatches(ctx, store.MatchFilter{Stage: utils.Ptr(tournament.StageGroup), GroupCode: utils.Ptr("A")})
	require.NoError(t, err)
	require.Len(t, groupA, 2)
	open := groupA[1]

	_, err = svc.Submit(ctx, open.ID, user.ID, score(1, 2))
	require.NoError(t, err)

	data, err := svc.GetStep(ctx, user.ID, "group", "a")
	require.NoError(t, err)

	assert.Equal(t, 0, data.Index)
	assert.Equal(t, 11, data.Total)
	assert.Nil(t, data.Prev)
	require.NotNil(t, data.Next)
	assert.Equal(t, "B", data.Next.GroupCode)

	require.Len(t, data.Matches, 2)
	assert.Equal(t, "Morocco", data.Matches[0].Match.HomeTeamName)
	assert.True(t, data.Matches[0].Locked)
	assert.Nil(t, data.Matches[0].Prediction)

	assert.Equal(t, open.ID, data.Matches[1].Match.ID)
	assert.False(t, data.Matches[1].Locked)
	require.NotNil(t, data.Matches[1].Prediction)
	assert.Equal(t, 2, data.Matches[1].Prediction.PredAway)

	final, err := svc.GetStep(ctx, user.ID, "knockout", "F")
	require.NoError(t, err)
	assert.Equal(t, 10, final.Index)
	assert.Nil(t, final.Next)
	require.NotNil(t, final.Prev)
	assert.Equal(t, tournament.StageThirdPlace, final.Prev.Stage)

	_, err = svc.GetStep(ctx, user.ID, "group", "Z")
	assert.ErrorIs(t, err, prediction.ErrNotFound)
}

func TestGetMatchPrediction(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tournamentStore := seedFixtures(t, db)
	svc := NewPredictionService(tournamentStore, store.NewPredictionStore(db), prediction.KickoffLock(), clockwork.NewFakeClockAt(beforeTournament))
	user := seedParticipant(t, db, "osimhen")
	match := findMatch(t, tournamentStore, tournament.StageQuarter)
	ctx := context.Background()

	row, err := svc.GetMatchPrediction(ctx, match.ID, user.ID)
	require.NoError(t, err)
	assert.Nil(t, row.Prediction)
	assert.False(t, row.Locked)

	_, err = svc.Submit(ctx, match.ID, user.ID, score(3, 2))
	require.NoError(t, err)

	row, err = svc.GetMatchPrediction(ctx, match.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, row.Prediction)
	assert.Equal(t, 3, row.Prediction.PredHome)

	_, err = svc.GetMatchPrediction(ctx, uuid.New(), user.ID)
	assert.ErrorIs(t, err, prediction.ErrNotFound)
}
