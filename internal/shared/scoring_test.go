package shared

import "testing"

func TestApplyScoreIsZeroSum(t *testing.T) {
	score := TeamTally{}
	awards := []struct {
		team   TeamID
		points int
	}{
		{TeamA, TrumpTeamWinPoints},
		{TeamB, DealerTeamWinPoints},
		{TeamB, VakkaiFailurePoints},
		{TeamA, VakkaiSuccessPoints},
	}
	for _, a := range awards {
		next := ApplyScore(score, a.team, a.points)
		if (next.A-score.A)+(next.B-score.B) != 0 {
			t.Fatalf("award %+v is not zero-sum: %+v -> %+v", a, score, next)
		}
		if next.Get(a.team)-score.Get(a.team) != a.points {
			t.Fatalf("winner did not gain %d: %+v -> %+v", a.points, score, next)
		}
		score = next
	}
	if score.A != -13 || score.B != 13 {
		t.Errorf("expected A=-13 B=13, got %+v", score)
	}
}

func TestCheckHandWinner(t *testing.T) {
	tests := []struct {
		name       string
		counts     TeamTally
		trumpTeam  TeamID
		dealerTeam TeamID
		wantOK     bool
		wantTeam   TeamID
		wantPoints int
	}{
		{"undecided", TeamTally{A: 3, B: 3}, TeamA, TeamB, false, "", 0},
		{"trump team at five", TeamTally{A: 5, B: 2}, TeamA, TeamB, true, TeamA, TrumpTeamWinPoints},
		{"dealer team at four", TeamTally{A: 3, B: 4}, TeamA, TeamB, true, TeamB, DealerTeamWinPoints},
		{"trump team at four is not enough", TeamTally{A: 4, B: 3}, TeamA, TeamB, false, "", 0},
		{"trump team checked first", TeamTally{A: 5, B: 4}, TeamA, TeamB, true, TeamA, TrumpTeamWinPoints},
		{"roles swapped", TeamTally{A: 4, B: 1}, TeamB, TeamA, true, TeamA, DealerTeamWinPoints},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CheckHandWinner(tt.counts, tt.trumpTeam, tt.dealerTeam)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v (%+v)", tt.wantOK, ok, got)
			}
			if !ok {
				return
			}
			if got.Team != tt.wantTeam || got.Points != tt.wantPoints {
				t.Errorf("expected %s +%d, got %s +%d", tt.wantTeam, tt.wantPoints, got.Team, got.Points)
			}
			if got.Reason == "" {
				t.Errorf("expected a reason")
			}
		})
	}
}

func TestCalculateVakkaiResult(t *testing.T) {
	win := CalculateVakkaiResult(4, TeamB)
	if !win.Success || win.WinnerTeam != TeamB || win.Points != VakkaiSuccessPoints {
		t.Errorf("unexpected success result %+v", win)
	}
	for wins := 0; wins < VakkaiTarget; wins++ {
		lose := CalculateVakkaiResult(wins, TeamB)
		if lose.Success || lose.WinnerTeam != TeamA || lose.Points != VakkaiFailurePoints {
			t.Errorf("%d wins: unexpected failure result %+v", wins, lose)
		}
	}
}

func TestIsMatchEnd(t *testing.T) {
	for a := -20; a <= 20; a++ {
		score := TeamTally{A: a, B: -a}
		want := a >= 16 || a <= -16
		if got := IsMatchEnd(score); got != want {
			t.Errorf("score %+v: expected %v, got %v", score, want, got)
		}
	}
}

func TestMatchWinner(t *testing.T) {
	if _, ok := MatchWinner(TeamTally{A: 15, B: -15}); ok {
		t.Errorf("match should not be over at 15")
	}
	if w, _ := MatchWinner(TeamTally{A: 16, B: -16}); w != TeamA {
		t.Errorf("expected A, got %s", w)
	}
	if w, _ := MatchWinner(TeamTally{A: -18, B: 18}); w != TeamB {
		t.Errorf("expected B, got %s", w)
	}
}

func TestDealerChoosingTeam(t *testing.T) {
	tests := []struct {
		score    TeamTally
		expected TeamID
	}{
		{TeamTally{A: -5, B: 5}, TeamA},
		{TeamTally{A: 10, B: -10}, TeamB},
		{TeamTally{}, TeamA},
	}
	for _, tt := range tests {
		if got := DealerChoosingTeam(tt.score); got != tt.expected {
			t.Errorf("score %+v: expected %s, got %s", tt.score, tt.expected, got)
		}
	}
	if OppositeTeam(TeamA) != TeamB || OppositeTeam(TeamB) != TeamA {
		t.Errorf("OppositeTeam is not a complement")
	}
}
