package shared

// Player represents a seated player.
type Player struct {
	ID          string `json:"id"`           // Unique identifier for the player
	Name        string `json:"name"`         // Player's chosen name
	Seat        int    `json:"seat"`         // 0..3, clockwise
	Team        TeamID `json:"team"`         // Derived from seat parity
	Hand        []Card `json:"hand"`         // Cards currently held by the player
	IsReady     bool   `json:"is_ready"`     // Ready-check flag
	IsConnected bool   `json:"is_connected"` // False while the socket is gone
	WantsSwitch bool   `json:"wants_switch"` // Pending team switch request
}

// NewPlayer creates a new connected player at the given seat.
func NewPlayer(id, name string, seat int) *Player {
	return &Player{
		ID:          id,
		Name:        name,
		Seat:        seat,
		Team:        TeamForSeat(seat),
		Hand:        []Card{},
		IsConnected: true,
	}
}

// SetSeat moves the player and updates the derived team.
func (p *Player) SetSeat(seat int) {
	p.Seat = seat
	p.Team = TeamForSeat(seat)
}

// AddCards appends cards to the player's hand.
func (p *Player) AddCards(cards ...Card) {
	p.Hand = append(p.Hand, cards...)
}

// RemoveCard removes a card from the player's hand.
func (p *Player) RemoveCard(card Card) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// FindCard looks a card up in the hand by its id.
func (p *Player) FindCard(cardID string) (Card, bool) {
	for _, card := range p.Hand {
		if card.ID == cardID {
			return card, true
		}
	}
	return Card{}, false
}

// HandCopy returns a copy of the hand.
func (p *Player) HandCopy() []Card {
	hand := make([]Card, len(p.Hand))
	copy(hand, p.Hand)
	return hand
}
