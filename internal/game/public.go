package game

import "hukum-game/internal/shared"

// PublicPlayer is what every client may know about a seat.
type PublicPlayer struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Seat        int           `json:"seat"`
	Team        shared.TeamID `json:"team"`
	CardCount   int           `json:"card_count"`
	IsReady     bool          `json:"is_ready"`
	IsConnected bool          `json:"is_connected"`
	WantsSwitch bool          `json:"wants_switch"`
}

// PublicState is the broadcast view of a game. Hands are reduced to counts
// and the undealt cards are never exposed.
type PublicState struct {
	GameID         string           `json:"game_id"`
	Phase          Phase            `json:"phase"`
	Players        []PublicPlayer   `json:"players"`
	DealerID       string           `json:"dealer_id"`
	TrumpChooserID string           `json:"trump_chooser_id"`
	CurrentTurnID  string           `json:"current_turn_id"`
	TrumpSuit      shared.Suit      `json:"trump_suit"`
	Vakkai         VakkaiState      `json:"vakkai"`
	CurrentTrick   *shared.Trick    `json:"current_trick"`
	LastTrick      *shared.Trick    `json:"last_trick"`
	TrickCounts    shared.TeamTally `json:"trick_counts"`
	Score          shared.TeamTally `json:"score"`
	DealerTeam     shared.TeamID    `json:"dealer_team"`
	TrumpTeam      shared.TeamID    `json:"trump_team"`
	HandsPlayed    int              `json:"hands_played"`
}

// PublicState builds the view sent to all players in the room.
func (g *Game) PublicState() PublicState {
	seated := g.seated()
	players := make([]PublicPlayer, 0, len(seated))
	for _, p := range seated {
		players = append(players, PublicPlayer{
			ID:          p.ID,
			Name:        p.Name,
			Seat:        p.Seat,
			Team:        p.Team,
			CardCount:   len(p.Hand),
			IsReady:     p.IsReady,
			IsConnected: p.IsConnected,
			WantsSwitch: p.WantsSwitch,
		})
	}

	return PublicState{
		GameID:         g.ID,
		Phase:          g.phase(),
		Players:        players,
		DealerID:       g.state.DealerID,
		TrumpChooserID: g.state.TrumpChooserID,
		CurrentTurnID:  g.state.CurrentTurnID,
		TrumpSuit:      g.state.TrumpSuit,
		Vakkai:         g.state.Vakkai,
		CurrentTrick:   g.state.CurrentTrick.Clone(),
		LastTrick:      g.state.LastTrick.Clone(),
		TrickCounts:    g.state.TrickCounts,
		Score:          g.state.Score,
		DealerTeam:     g.state.DealerTeam,
		TrumpTeam:      g.state.TrumpTeam,
		HandsPlayed:    g.state.HandsPlayed,
	}
}
