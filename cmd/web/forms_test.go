package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/AdamBeresnev/afcon-predictor/internal/prediction"
	"github.com/AdamBeresnev/afcon-predictor/internal/tournament"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/predictions", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestParseScoreForm(t *testing.T) {
	t.Run("full knockout score", func(t *testing.T) {
		req := postForm(url.Values{
			"pred_home":      {"1"},
			"pred_away":      {" 1 "},
			"pred_pens_home": {"4"},
			"pred_pens_away": {"3"},
		})
		in := parseScoreForm(req, "pred")
		require.NotNil(t, in.Home)
		require.NotNil(t, in.PensAway)
		assert.Equal(t, 1, *in.Home)
		assert.Equal(t, 1, *in.Away)
		assert.Equal(t, 4, *in.PensHome)
		assert.Equal(t, 3, *in.PensAway)
	})

	t.Run("blank fields are nil", func(t *testing.T) {
		req := postForm(url.Values{"result_home": {"2"}, "result_pens_home": {""}})
		in := parseScoreForm(req, "result")
		assert.Equal(t, 2, *in.Home)
		assert.Nil(t, in.Away)
		assert.Nil(t, in.PensHome)
		assert.Nil(t, in.PensAway)
	})

	t.Run("non numeric score is rejected by validation", func(t *testing.T) {
		in := parseScoreForm(postForm(url.Values{"pred_home": {"two"}, "pred_away": {"0"}}), "pred")
		_, err := prediction.Validate(tournament.StageGroup, in)
		assert.ErrorIs(t, err, prediction.ErrInvalidScore)
	})

	t.Run("fractions are rejected by validation", func(t *testing.T) {
		in := parseScoreForm(postForm(url.Values{"pred_home": {"1.5"}, "pred_away": {"0"}}), "pred")
		_, err := prediction.Validate(tournament.StageFinal, in)
		assert.ErrorIs(t, err, prediction.ErrInvalidScore)
	})

	t.Run("junk penalties are dropped when not needed", func(t *testing.T) {
		in := parseScoreForm(postForm(url.Values{"pred_home": {"2"}, "pred_away": {"2"}, "pred_pens_home": {"five"}}), "pred")
		score, err := prediction.Validate(tournament.StageGroup, in)
		require.NoError(t, err)
		assert.Nil(t, score.PensHome)

		in = parseScoreForm(postForm(url.Values{"pred_home": {"2"}, "pred_away": {"1"}, "pred_pens_home": {"five"}}), "pred")
		score, err = prediction.Validate(tournament.StageQuarter, in)
		require.NoError(t, err)
		assert.Nil(t, score.PensHome)
	})

	t.Run("junk penalties on a knockout draw are invalid", func(t *testing.T) {
		in := parseScoreForm(postForm(url.Values{"pred_home": {"0"}, "pred_away": {"0"}, "pred_pens_home": {"five"}, "pred_pens_away": {"4"}}), "pred")
		_, err := prediction.Validate(tournament.StageFinal, in)
		assert.ErrorIs(t, err, prediction.ErrInvalidScore)
	})
}

func TestParseMatchID(t *testing.T) {
	id := uuid.New()
	got, err := parseMatchID(postForm(url.Values{"match_id": {id.String()}}))
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = parseMatchID(postForm(url.Values{"match_id": {"nope"}}))
	assert.ErrorIs(t, err, prediction.ErrNotFound)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Penalties cannot be a draw", userMessage(prediction.ErrPenaltiesMustDiffer))
	assert.Equal(t, "Draw after 120': enter the penalty score", userMessage(prediction.ErrPenaltiesRequired))
	assert.Equal(t, "Predictions are locked", userMessage(prediction.ErrLocked))
	assert.Equal(t, "boom", userMessage(errors.New("boom")))
}
