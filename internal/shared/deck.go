package shared

import (
	"log"
	"math/rand/v2"
)

const (
	DeckSize      = 32
	NumPlayers    = 4
	CardsPerDeal  = 4 // cards dealt to each player in each half of a hand
	lcgModulusMax = 0x7fffffff
)

// Deck represents a collection of cards.
type Deck struct {
	Cards []Card
}

// NewDeck creates the 32-card deck: every suit crossed with A..7.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return &Deck{Cards: cards}
}

// Shuffle randomizes the order of cards in the deck.
func (d *Deck) Shuffle() {
	fisherYates(d.Cards, func(n int) int { return rand.IntN(n) })
}

// ShuffleSeeded permutes the deck with a linear-congruential generator so the
// same seed always yields the same order. Intended for tests and replays.
func (d *Deck) ShuffleSeeded(seed int64) {
	state := seed
	next := func(n int) int {
		state = (state*1103515245 + 12345) & lcgModulusMax
		j := int(float64(state) / float64(lcgModulusMax) * float64(n))
		if j >= n {
			j = n - 1
		}
		return j
	}
	fisherYates(d.Cards, next)
}

// fisherYates walks from the last index down to 1, swapping with an index
// drawn from [0, i].
func fisherYates(cards []Card, intn func(n int) int) {
	for i := len(cards) - 1; i > 0; i-- {
		j := intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deal distributes cards round-robin, one per player per round, in deck
// order. Dealt cards are removed from the deck; the remainder stays in it.
// Returns nil if not enough cards.
func (d *Deck) Deal(numPlayers, cardsPerPlayer int) [][]Card {
	totalCardsNeeded := numPlayers * cardsPerPlayer
	if len(d.Cards) < totalCardsNeeded {
		log.Printf("Error: Not enough cards in deck (%d) to deal %d cards to %d players.", len(d.Cards), cardsPerPlayer, numPlayers)
		return nil
	}

	dealt := make([][]Card, numPlayers)
	for i := range dealt {
		dealt[i] = make([]Card, 0, cardsPerPlayer)
	}
	idx := 0
	for round := 0; round < cardsPerPlayer; round++ {
		for p := 0; p < numPlayers; p++ {
			dealt[p] = append(dealt[p], d.Cards[idx])
			idx++
		}
	}

	remainder := make([]Card, len(d.Cards)-idx)
	copy(remainder, d.Cards[idx:])
	d.Cards = remainder
	return dealt
}

// DrawToss draws one card per player from a freshly shuffled deck.
func DrawToss(numPlayers int, shuffle func(*Deck)) []Card {
	deck := NewDeck()
	shuffle(deck)
	toss := make([]Card, numPlayers)
	copy(toss, deck.Cards[:numPlayers])
	return toss
}

// Toss points use the same scale as rank strength: A=8 down to 7=1.
func tossPoints(c Card) int {
	return RankValue(c)
}

// TossPoints totals the toss cards per team. Toss index follows seat order,
// so even indices count for team A and odd indices for team B.
func TossPoints(tossCards []Card) TeamTally {
	var tally TeamTally
	for i, c := range tossCards {
		tally.Add(TeamForSeat(i), tossPoints(c))
	}
	return tally
}
