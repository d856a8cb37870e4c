package database

// MatchResult is one finished match as stored in hukum_matches.
// Players are listed in seat order; teams are "A" or "B".
type MatchResult struct {
	ID          string `json:"id"`
	CreatedAt   string `json:"created_at"`
	Player1     string `json:"player1"`
	Player2     string `json:"player2"`
	Player3     string `json:"player3"`
	Player4     string `json:"player4"`
	Player1Team string `json:"player1_team"`
	Player2Team string `json:"player2_team"`
	Player3Team string `json:"player3_team"`
	Player4Team string `json:"player4_team"`
	TeamAScore  int    `json:"team_a_score"`
	TeamBScore  int    `json:"team_b_score"`
	WinnerTeam  string `json:"winner_team"`
	HandsPlayed int    `json:"hands_played"`
}

func (r *MatchResult) scanTargets() []any {
	return []any{
		&r.ID,
		&r.CreatedAt,
		&r.Player1,
		&r.Player2,
		&r.Player3,
		&r.Player4,
		&r.Player1Team,
		&r.Player2Team,
		&r.Player3Team,
		&r.Player4Team,
		&r.TeamAScore,
		&r.TeamBScore,
		&r.WinnerTeam,
		&r.HandsPlayed,
	}
}
