package tournament

import (
	"time"

	"github.com/google/uuid"
)

// At most one prediction exists per (MatchID, UserID), later submissions replace it
type Prediction struct {
	MatchID uuid.UUID `db:"match_id" json:"match_id"`
	UserID  uuid.UUID `db:"user_id" json:"user_id"`

	PredHome     int  `db:"pred_home" json:"pred_home"`
	PredAway     int  `db:"pred_away" json:"pred_away"`
	PredPensHome *int `db:"pred_pens_home" json:"pred_pens_home"`
	PredPensAway *int `db:"pred_pens_away" json:"pred_pens_away"`

	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Prediction joined with the actual result of its match, consumed by the external scorer
type ScorablePrediction struct {
	Prediction
	Stage          Stage `db:"stage" json:"stage"`
	ResultHome     *int  `db:"result_home" json:"result_home"`
	ResultAway     *int  `db:"result_away" json:"result_away"`
	ResultPensHome *int  `db:"result_pens_home" json:"result_pens_home"`
	ResultPensAway *int  `db:"result_pens_away" json:"result_pens_away"`
}

type LeaderboardEntry struct {
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Username    string    `db:"username" json:"username"`
	FullName    string    `db:"full_name" json:"full_name"`
	TotalPoints int       `db:"total_points" json:"total_points"`
}
