package shared

// TeamID represents the two partnerships in the game.
type TeamID string

const (
	TeamA TeamID = "A" // seats 0 and 2
	TeamB TeamID = "B" // seats 1 and 3
)

// TeamForSeat derives the team from seat parity.
func TeamForSeat(seat int) TeamID {
	if seat%2 == 0 {
		return TeamA
	}
	return TeamB
}

// OppositeTeam returns the other partnership.
func OppositeTeam(team TeamID) TeamID {
	if team == TeamA {
		return TeamB
	}
	return TeamA
}

// PartnerSeat returns the seat across the table.
func PartnerSeat(seat int) int {
	return (seat + 2) % NumPlayers
}

// TeamTally holds one integer per team. Used for the match score and for
// per-hand trick counts.
type TeamTally struct {
	A int `json:"A"`
	B int `json:"B"`
}

// Get returns the value for a team.
func (t TeamTally) Get(team TeamID) int {
	if team == TeamA {
		return t.A
	}
	return t.B
}

// Add adds delta to a team's value.
func (t *TeamTally) Add(team TeamID, delta int) {
	if team == TeamA {
		t.A += delta
	} else {
		t.B += delta
	}
}
