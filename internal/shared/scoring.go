package shared

import "fmt"

const (
	VakkaiSuccessPoints = 8
	VakkaiFailurePoints = 16
	TrumpTeamWinPoints  = 5
	TrumpTeamTarget     = 5
	DealerTeamWinPoints = 10
	DealerTeamTarget    = 4
	VakkaiTarget        = 4
	MatchEndThreshold   = 16
)

// ApplyScore awards points to the winning team and takes exactly as many
// from the other one.
func ApplyScore(score TeamTally, winner TeamID, points int) TeamTally {
	score.Add(winner, points)
	score.Add(OppositeTeam(winner), -points)
	return score
}

// HandOutcome describes how a hand was won.
type HandOutcome struct {
	Team   TeamID
	Points int
	Reason string
}

// CheckHandWinner is evaluated after every normal trick. The trump team's
// five-trick target is checked before the dealer team's four-trick target.
func CheckHandWinner(trickCounts TeamTally, trumpTeam, dealerTeam TeamID) (HandOutcome, bool) {
	if trickCounts.Get(trumpTeam) >= TrumpTeamTarget {
		return HandOutcome{
			Team:   trumpTeam,
			Points: TrumpTeamWinPoints,
			Reason: fmt.Sprintf("Trump team won %d tricks", TrumpTeamTarget),
		}, true
	}
	if trickCounts.Get(dealerTeam) >= DealerTeamTarget {
		return HandOutcome{
			Team:   dealerTeam,
			Points: DealerTeamWinPoints,
			Reason: fmt.Sprintf("Dealer team won %d tricks", DealerTeamTarget),
		}, true
	}
	return HandOutcome{}, false
}

// VakkaiResult is the payout of a Vakkai hand.
type VakkaiResult struct {
	WinnerTeam TeamID
	Points     int
	Success    bool
}

// CalculateVakkaiResult pays the declarer's team on four straight wins and
// the opponents, double, otherwise.
func CalculateVakkaiResult(consecutiveWins int, declarerTeam TeamID) VakkaiResult {
	if consecutiveWins >= VakkaiTarget {
		return VakkaiResult{WinnerTeam: declarerTeam, Points: VakkaiSuccessPoints, Success: true}
	}
	return VakkaiResult{WinnerTeam: OppositeTeam(declarerTeam), Points: VakkaiFailurePoints, Success: false}
}

// IsMatchEnd reports whether either team's score magnitude reached the threshold.
func IsMatchEnd(score TeamTally) bool {
	return abs(score.A) >= MatchEndThreshold || abs(score.B) >= MatchEndThreshold
}

// MatchWinner returns the team that won the match, if it has ended.
func MatchWinner(score TeamTally) (TeamID, bool) {
	switch {
	case score.A >= MatchEndThreshold:
		return TeamA, true
	case score.B >= MatchEndThreshold:
		return TeamB, true
	case score.A <= -MatchEndThreshold:
		return TeamB, true
	case score.B <= -MatchEndThreshold:
		return TeamA, true
	}
	return "", false
}

// DealerChoosingTeam returns the team that picks the next dealer: whichever
// team is behind. At 0-0 team A chooses.
func DealerChoosingTeam(score TeamTally) TeamID {
	if score.A < 0 {
		return TeamA
	}
	if score.B < 0 {
		return TeamB
	}
	return TeamA
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
