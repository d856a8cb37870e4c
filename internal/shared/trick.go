package shared

// Trick represents a single trick.
type Trick struct {
	Cards    []PlayedCard `json:"cards"`     // Cards played in the current trick, in play order
	LeadSuit Suit         `json:"lead_suit"` // Suit of the first card ("" until a card is played)
	WinnerID string       `json:"winner_id"` // Set once the trick is resolved
}

// NewTrick creates an empty trick.
func NewTrick() *Trick {
	return &Trick{
		Cards: []PlayedCard{},
	}
}

// AddCard adds a card and the id of the player who played it. The first card sets the lead suit.
func (t *Trick) AddCard(playerID string, card Card) {
	if len(t.Cards) == 0 {
		t.LeadSuit = card.Suit
	}
	t.Cards = append(t.Cards, PlayedCard{PlayerID: playerID, Card: card})
}

// IsComplete reports whether every active player has played. Vakkai tricks
// have three cards because the declarer's partner sits out.
func (t *Trick) IsComplete(vakkai bool) bool {
	required := NumPlayers
	if vakkai {
		required = NumPlayers - 1
	}
	return len(t.Cards) >= required
}

// ResolveWinner determines and records the winner of the trick.
func (t *Trick) ResolveWinner(trump Suit) (string, bool) {
	winner, ok := DetermineWinner(t.Cards, trump)
	if ok {
		t.WinnerID = winner
	}
	return winner, ok
}

// Clone returns a copy that shares no memory with t.
func (t *Trick) Clone() *Trick {
	if t == nil {
		return nil
	}
	cards := make([]PlayedCard, len(t.Cards))
	copy(cards, t.Cards)
	return &Trick{Cards: cards, LeadSuit: t.LeadSuit, WinnerID: t.WinnerID}
}

// NextSeat returns the seat that plays after current. In Vakkai the
// declarer's partner is skipped.
func NextSeat(current int, vakkai bool, declarerSeat int) int {
	next := (current + 1) % NumPlayers
	if vakkai && next == PartnerSeat(declarerSeat) {
		next = (next + 1) % NumPlayers
	}
	return next
}

// TurnOrder lists the seats of a trick in play order. Normal tricks start at
// the leader and cover all four seats; Vakkai tricks always start at the
// declarer and omit the partner.
func TurnOrder(leaderSeat int, vakkai bool, declarerSeat int) []int {
	if !vakkai {
		order := make([]int, 0, NumPlayers)
		for i := 0; i < NumPlayers; i++ {
			order = append(order, (leaderSeat+i)%NumPlayers)
		}
		return order
	}

	partner := PartnerSeat(declarerSeat)
	order := []int{declarerSeat}
	for i := 1; i < NumPlayers; i++ {
		seat := (declarerSeat + i) % NumPlayers
		if seat != partner {
			order = append(order, seat)
		}
	}
	return order
}
