package main

import (
	"errors"
	"net/http"

	"github.com/AdamBeresnev/afcon-predictor/internal/prediction"
	"github.com/AdamBeresnev/afcon-predictor/internal/utils"
	"github.com/google/uuid"
)

// unparsedScore stands in for a field that is not a whole number. Validate rejects it as an
// invalid score wherever the field is used and drops it where penalties are ignored.
const unparsedScore = -1

// parseScoreForm reads <prefix>_home, <prefix>_away, <prefix>_pens_home and <prefix>_pens_away.
// Blank fields are nil. Nothing is rejected here so the lock is always checked first.
func parseScoreForm(r *http.Request, prefix string) prediction.ScoreInput {
	var in prediction.ScoreInput
	fields := []struct {
		name string
		dst  **int
	}{
		{prefix + "_home", &in.Home},
		{prefix + "_away", &in.Away},
		{prefix + "_pens_home", &in.PensHome},
		{prefix + "_pens_away", &in.PensAway},
	}
	for _, f := range fields {
		v, err := utils.IntOrNil(r.PostFormValue(f.name))
		if err != nil {
			v = utils.Ptr(unparsedScore)
		}
		*f.dst = v
	}
	return in
}

func parseMatchID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PostFormValue("match_id"))
	if err != nil {
		return uuid.Nil, prediction.ErrNotFound
	}
	return id, nil
}

// userMessage is shown next to a prediction form after a rejected submission
func userMessage(err error) string {
	switch {
	case errors.Is(err, prediction.ErrPenaltiesRequired):
		return "Draw after 120': enter the penalty score"
	case errors.Is(err, prediction.ErrPenaltiesMustDiffer):
		return "Penalties cannot be a draw"
	case errors.Is(err, prediction.ErrInvalidScore):
		return "Enter a whole number of 0 or more for each team"
	case errors.Is(err, prediction.ErrLocked):
		return "Predictions are locked"
	default:
		return err.Error()
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") != ""
}
