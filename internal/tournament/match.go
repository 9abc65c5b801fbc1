package tournament

import (
	"time"

	"github.com/google/uuid"
)

type Match struct {
	ID        uuid.UUID `db:"id"`
	Stage     Stage     `db:"stage"`
	GroupCode *string   `db:"group_code"`
	KickoffAt time.Time `db:"kickoff_at"`

	HomeTeamID uuid.UUID `db:"home_team_id"`
	AwayTeamID uuid.UUID `db:"away_team_id"`

	// Only filled by queries that join the teams table
	HomeTeamName string `db:"home_team_name"`
	AwayTeamName string `db:"away_team_name"`

	// Final score after extra time, penalties only for level knockout matches
	ResultHome     *int `db:"result_home"`
	ResultAway     *int `db:"result_away"`
	ResultPensHome *int `db:"result_pens_home"`
	ResultPensAway *int `db:"result_pens_away"`

	CreatedAt time.Time `db:"created_at"`
}

func (m *Match) HasResult() bool {
	return m.ResultHome != nil && m.ResultAway != nil
}

// Draw after extra time in a knockout round, settled on penalties
func (m *Match) WentToPenalties() bool {
	return m.HasResult() && m.ResultPensHome != nil && m.ResultPensAway != nil
}
