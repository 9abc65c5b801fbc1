package prediction

import "github.com/AdamBeresnev/afcon-predictor/internal/tournament"

// ScoreInput is a score as submitted, any field may be missing
type ScoreInput struct {
	Home     *int
	Away     *int
	PensHome *int
	PensAway *int
}

// Score has passed Validate, penalties are set only for a level knockout score
type Score struct {
	Home     int
	Away     int
	PensHome *int
	PensAway *int
}

// Validate applies the penalty rules of the stage to a score after extra time.
// It is used for participant predictions and for official results alike.
//
// Penalties are dropped without error for group matches and for decisive knockout
// scores. A level knockout score needs two different, non-negative penalty counts.
func Validate(stage tournament.Stage, in ScoreInput) (Score, error) {
	if in.Home == nil || in.Away == nil || *in.Home < 0 || *in.Away < 0 {
		return Score{}, ErrInvalidScore
	}

	score := Score{Home: *in.Home, Away: *in.Away}

	if !stage.IsKnockout() || score.Home != score.Away {
		return score, nil
	}

	if in.PensHome == nil || in.PensAway == nil {
		return Score{}, ErrPenaltiesRequired
	}
	if *in.PensHome < 0 || *in.PensAway < 0 {
		return Score{}, ErrInvalidScore
	}
	if *in.PensHome == *in.PensAway {
		return Score{}, ErrPenaltiesMustDiffer
	}

	pensHome, pensAway := *in.PensHome, *in.PensAway
	score.PensHome = &pensHome
	score.PensAway = &pensAway
	return score, nil
}
