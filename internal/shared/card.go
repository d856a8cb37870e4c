package shared

import (
	"errors"
	"fmt"
)

// Suit represents the suit of a card.
type Suit string

const (
	Spade   Suit = "SPADE"
	Heart   Suit = "HEART"
	Diamond Suit = "DIAMOND"
	Club    Suit = "CLUB"
)

// Suits lists the four suits in deck-building order.
var Suits = []Suit{Spade, Heart, Diamond, Club}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	switch s {
	case Spade, Heart, Diamond, Club:
		return true
	}
	return false
}

// Symbol returns the unicode pip for the suit.
func (s Suit) Symbol() string {
	switch s {
	case Spade:
		return "♠"
	case Heart:
		return "♥"
	case Diamond:
		return "♦"
	case Club:
		return "♣"
	}
	return "?"
}

// Rank represents the rank of a card.
type Rank string

const (
	Ace   Rank = "A"
	King  Rank = "K"
	Queen Rank = "Q"
	Jack  Rank = "J"
	Ten   Rank = "10"
	Nine  Rank = "9"
	Eight Rank = "8"
	Seven Rank = "7"
)

// Ranks lists the eight ranks in deck-building order (strongest first).
var Ranks = []Rank{Ace, King, Queen, Jack, Ten, Nine, Eight, Seven}

// Define rank order for easier comparison (higher is better)
var rankOrder = map[Rank]int{
	Seven: 1,
	Eight: 2,
	Nine:  3,
	Ten:   4,
	Jack:  5,
	Queen: 6,
	King:  7,
	Ace:   8,
}

// Card represents a single card. Two cards are the same card iff suit and rank match.
type Card struct {
	ID   string `json:"id"` // e.g. "SPADE_A"
	Suit Suit   `json:"suit"`
	Rank Rank   `json:"rank"`
}

// NewCard creates a card with its canonical id.
func NewCard(suit Suit, rank Rank) Card {
	return Card{
		ID:   CardID(suit, rank),
		Suit: suit,
		Rank: rank,
	}
}

// CardID returns the canonical "<SUIT>_<RANK>" identifier.
func CardID(suit Suit, rank Rank) string {
	return fmt.Sprintf("%s_%s", suit, rank)
}

func (c Card) String() string {
	return string(c.Rank) + c.Suit.Symbol()
}

// RankValue maps a card's rank to 1..8 (7 lowest, A highest).
func RankValue(c Card) int {
	return rankOrder[c.Rank]
}

// Compare returns a positive number if a outranks b, negative if b outranks a.
// Only meaningful for cards of the same suit.
func Compare(a, b Card) int {
	return RankValue(a) - RankValue(b)
}

// PlayedCard stores a card along with the id of the player who played it.
type PlayedCard struct {
	PlayerID string `json:"player_id"`
	Card     Card   `json:"card"`
}

// DetermineWinner returns the id of the player who wins the played cards.
// The highest trump wins if any trump was played, otherwise the highest card
// of the suit that was led. An empty trump suit means no trump.
func DetermineWinner(played []PlayedCard, trump Suit) (string, bool) {
	if len(played) == 0 {
		return "", false
	}
	leadSuit := played[0].Card.Suit

	var best *PlayedCard
	if trump != "" {
		best = highestOfSuit(played, trump)
	}
	if best == nil {
		best = highestOfSuit(played, leadSuit)
	}
	return best.PlayerID, true
}

func highestOfSuit(played []PlayedCard, suit Suit) *PlayedCard {
	var best *PlayedCard
	for i := range played {
		pc := &played[i]
		if pc.Card.Suit != suit {
			continue
		}
		if best == nil || Compare(pc.Card, best.Card) > 0 {
			best = pc
		}
	}
	return best
}

var (
	ErrCardNotInHand  = errors.New("you do not have this card")
	ErrMustFollowSuit = errors.New("must follow suit")
)

// FollowSuitError is returned when a player holding the lead suit plays another suit.
type FollowSuitError struct {
	LeadSuit Suit
}

func (e *FollowSuitError) Error() string {
	return fmt.Sprintf("you must follow suit (%s)", e.LeadSuit)
}

func (e *FollowSuitError) Is(target error) bool {
	return target == ErrMustFollowSuit
}

// ValidatePlay checks if playing card from hand is legal when leadSuit was led.
// An empty leadSuit means the card opens the trick.
func ValidatePlay(card Card, hand []Card, leadSuit Suit) error {
	if !containsCard(hand, card) {
		return ErrCardNotInHand
	}
	if leadSuit == "" {
		return nil // Can lead with any card
	}
	if card.Suit != leadSuit && HasSuit(hand, leadSuit) {
		return &FollowSuitError{LeadSuit: leadSuit}
	}
	return nil
}

// HasSuit reports whether any card in hand is of the given suit.
func HasSuit(hand []Card, suit Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

func containsCard(hand []Card, card Card) bool {
	for _, c := range hand {
		if c.Suit == card.Suit && c.Rank == card.Rank {
			return true
		}
	}
	return false
}
