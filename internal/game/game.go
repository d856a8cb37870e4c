package game

import (
	"fmt"
	"log"

	"hukum-game/internal/shared"

	"github.com/google/uuid"
)

// VakkaiState tracks a Vakkai gambit during the current hand.
type VakkaiState struct {
	Active          bool   `json:"active"`
	DeclarerID      string `json:"declarer_id"`
	ConsecutiveWins int    `json:"consecutive_wins"`
}

// State is the authoritative aggregate for one match.
type State struct {
	Phase          Phase
	DealerID       string
	TrumpChooserID string
	CurrentTurnID  string
	TrumpSuit      shared.Suit // "" when no trump is in force
	Vakkai         VakkaiState
	CurrentTrick   *shared.Trick
	LastTrick      *shared.Trick // most recently resolved trick, nil at the start of a hand
	TrickCounts    shared.TeamTally
	Score          shared.TeamTally
	TossCards      map[string]shared.Card
	DealerTeam     shared.TeamID
	TrumpTeam      shared.TeamID
	// Number of players who have acted on the Vakkai offer this hand.
	VakkaiDecisionIndex int
	HandsPlayed         int
}

func newState() State {
	return State{
		Phase:        WaitingForPlayers,
		CurrentTrick: shared.NewTrick(),
		TossCards:    map[string]shared.Card{},
	}
}

// TossResult is the outcome of the match-opening toss.
type TossResult struct {
	Cards      map[string]shared.Card
	Points     shared.TeamTally
	DealerTeam shared.TeamID
	TrumpTeam  shared.TeamID
}

// HandResult describes how a hand ended.
type HandResult struct {
	Team      shared.TeamID
	Points    int
	Reason    string
	Vakkai    bool
	MatchOver bool
}

// PlayResult reports what a successful card play caused.
type PlayResult struct {
	TrickComplete   bool
	TrickWinnerID   string
	TrickWinnerTeam shared.TeamID
	Hand            *HandResult // non-nil when the play ended the hand
}

// SwapResult reports whether a switch request completed a seat swap.
type SwapResult struct {
	Swapped   bool
	PartnerID string
}

// Option configures a Game.
type Option func(*Game)

// WithSeed makes every shuffle reproducible. Each successive shuffle uses the next seed.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		next := seed
		g.shuffle = func(d *shared.Deck) {
			d.ShuffleSeeded(next)
			next++
		}
	}
}

// WithID sets the game id instead of generating one.
func WithID(id string) Option {
	return func(g *Game) {
		g.ID = id
	}
}

// Game is the rules engine for one room. It is a plain synchronous state
// mutator and is not safe for concurrent use: the owner of the room must
// serialize every call.
type Game struct {
	ID        string
	players   [shared.NumPlayers]*shared.Player // indexed by seat
	machine   *PhaseMachine
	state     State
	remaining *shared.Deck // second half of the deal, held back until hukum is chosen
	shuffle   func(*shared.Deck)
}

// NewGame initializes an empty game waiting for players.
func NewGame(opts ...Option) *Game {
	g := &Game{
		ID:      uuid.NewString(),
		machine: NewPhaseMachine(WaitingForPlayers),
		state:   newState(),
		shuffle: func(d *shared.Deck) { d.Shuffle() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// --- Players ---

// AddPlayer seats a new player in the first free seat.
func (g *Game) AddPlayer(id, name string) (shared.Player, error) {
	if _, ok := g.playerByID(id); ok {
		return shared.Player{}, ErrDuplicatePlayer
	}
	seat := -1
	for i, p := range g.players {
		if p == nil {
			seat = i
			break
		}
	}
	if seat == -1 {
		return shared.Player{}, ErrRoomFull
	}
	if g.phase() != WaitingForPlayers {
		return shared.Player{}, ErrWrongPhase
	}

	p := shared.NewPlayer(id, name, seat)
	g.players[seat] = p
	log.Printf("Game %s: Player %s (%s) took seat %d (team %s).", g.ID, id, name, seat, p.Team)
	return *p, nil
}

// RemovePlayer frees a seat before the match starts. Leaving during the
// ready check sends the room back to waiting for players.
func (g *Game) RemovePlayer(id string) bool {
	phase := g.phase()
	if phase != WaitingForPlayers && phase != ReadyCheck {
		return false
	}
	p, ok := g.playerByID(id)
	if !ok {
		return false
	}
	g.players[p.Seat] = nil
	if phase == ReadyCheck {
		g.transition(WaitingForPlayers)
		for _, other := range g.seated() {
			other.IsReady = false
		}
	}
	log.Printf("Game %s: Player %s left seat %d.", g.ID, id, p.Seat)
	return true
}

// SetConnected records whether the player's connection is alive.
func (g *Game) SetConnected(id string, connected bool) bool {
	p, ok := g.playerByID(id)
	if !ok {
		return false
	}
	p.IsConnected = connected
	return true
}

// SetReady marks a player ready for the match to start.
func (g *Game) SetReady(id string) error {
	phase := g.phase()
	if phase != WaitingForPlayers && phase != ReadyCheck {
		return ErrWrongPhase
	}
	p, ok := g.playerByID(id)
	if !ok {
		return ErrUnknownPlayer
	}
	p.IsReady = true
	return nil
}

// AllReady reports whether four players are seated and all are ready.
func (g *Game) AllReady() bool {
	seated := g.seated()
	if len(seated) != shared.NumPlayers {
		return false
	}
	for _, p := range seated {
		if !p.IsReady {
			return false
		}
	}
	return true
}

// ToggleSwitchRequest flips a player's wish to change teams. When the flag
// turns on and someone on the other team already wants to switch, the two
// trade seats.
func (g *Game) ToggleSwitchRequest(id string) (SwapResult, error) {
	phase := g.phase()
	if phase != WaitingForPlayers && phase != ReadyCheck {
		return SwapResult{}, ErrWrongPhase
	}
	p, ok := g.playerByID(id)
	if !ok {
		return SwapResult{}, ErrUnknownPlayer
	}
	p.WantsSwitch = !p.WantsSwitch
	if !p.WantsSwitch {
		return SwapResult{}, nil
	}

	for _, other := range g.seated() {
		if other.Team == p.Team || !other.WantsSwitch {
			continue
		}
		mySeat, theirSeat := p.Seat, other.Seat
		g.players[mySeat], g.players[theirSeat] = other, p
		p.SetSeat(theirSeat)
		other.SetSeat(mySeat)
		for _, swapped := range []*shared.Player{p, other} {
			swapped.WantsSwitch = false
			swapped.IsReady = false
		}
		log.Printf("Game %s: Players %s and %s swapped seats %d and %d.", g.ID, p.ID, other.ID, mySeat, theirSeat)
		return SwapResult{Swapped: true, PartnerID: other.ID}, nil
	}
	return SwapResult{}, nil
}

// --- Match flow ---

// StartReadyCheck moves a full room into the ready check.
func (g *Game) StartReadyCheck() error {
	if g.phase() != WaitingForPlayers {
		return ErrWrongPhase
	}
	if len(g.seated()) != shared.NumPlayers {
		return ErrNotEnoughPlayers
	}
	g.transition(ReadyCheck)
	return nil
}

// PerformInitialToss draws one card per seat to decide the first dealer and
// trump teams. The team with the lower total deals; ties go to team A.
func (g *Game) PerformInitialToss() (TossResult, error) {
	if g.phase() != ReadyCheck {
		return TossResult{}, ErrWrongPhase
	}
	if !g.AllReady() {
		return TossResult{}, ErrNotAllReady
	}
	g.transition(InitialToss)

	tossCards := shared.DrawToss(shared.NumPlayers, g.shuffle)
	cards := make(map[string]shared.Card, shared.NumPlayers)
	for seat, p := range g.players {
		cards[p.ID] = tossCards[seat]
	}
	points := shared.TossPoints(tossCards)

	dealerTeam := shared.TeamA
	if points.A > points.B {
		dealerTeam = shared.TeamB
	}
	g.state.TossCards = cards
	g.state.DealerTeam = dealerTeam
	g.state.TrumpTeam = shared.OppositeTeam(dealerTeam)

	// Default dealer: first dealer-team player by seat.
	for _, p := range g.players {
		if p.Team == dealerTeam {
			g.setDealer(p)
			break
		}
	}

	log.Printf("Game %s: Toss A=%d B=%d. Dealer team %s, trump team %s.", g.ID, points.A, points.B, dealerTeam, g.state.TrumpTeam)
	return TossResult{
		Cards:      cards,
		Points:     points,
		DealerTeam: dealerTeam,
		TrumpTeam:  g.state.TrumpTeam,
	}, nil
}

// DealFirstHalf starts a hand: fresh shuffled deck, four cards per seat,
// the rest held back. The seat after the dealer decides on Vakkai first.
func (g *Game) DealFirstHalf() error {
	phase := g.phase()
	if phase != InitialToss && phase != DealerSelection {
		return ErrWrongPhase
	}
	g.transition(DealingFirst)
	g.resetHand()

	deck := shared.NewDeck()
	g.shuffle(deck)
	hands := deck.Deal(shared.NumPlayers, shared.CardsPerDeal)
	if hands == nil {
		log.Panicf("Game %s: fresh deck could not cover the first deal", g.ID)
	}
	g.remaining = deck
	for seat, p := range g.players {
		p.Hand = hands[seat]
	}

	g.transition(VakkaiDecision)
	g.state.CurrentTurnID = g.seatAfter(g.state.DealerID).ID
	g.state.VakkaiDecisionIndex = 0
	log.Printf("Game %s: Hand %d dealt. %s decides on Vakkai first.", g.ID, g.state.HandsPlayed+1, g.state.CurrentTurnID)
	return nil
}

// PassVakkai declines the Vakkai offer. After all four pass, the trump
// chooser picks hukum.
func (g *Game) PassVakkai(id string) error {
	if err := g.checkTurn(id, VakkaiDecision); err != nil {
		return err
	}
	g.state.VakkaiDecisionIndex++
	if g.state.VakkaiDecisionIndex >= shared.NumPlayers {
		g.transition(HukumSelection)
		g.state.CurrentTurnID = g.state.TrumpChooserID
		return nil
	}
	g.state.CurrentTurnID = g.seatAfter(id).ID
	return nil
}

// DeclareVakkai starts the gambit: no trump, the partner sits out, and the
// second half of the deck is never dealt.
func (g *Game) DeclareVakkai(id string) error {
	if err := g.checkTurn(id, VakkaiDecision); err != nil {
		return err
	}
	g.state.Vakkai = VakkaiState{Active: true, DeclarerID: id}
	g.state.TrumpSuit = ""
	g.transition(VakkaiPlay)
	g.state.CurrentTurnID = id
	g.state.CurrentTrick = shared.NewTrick()
	g.remaining = nil
	log.Printf("Game %s: Player %s declared Vakkai.", g.ID, id)
	return nil
}

// ChooseHukum sets the trump suit, deals the held-back cards and opens trick
// play with the seat after the trump chooser.
func (g *Game) ChooseHukum(id string, suit shared.Suit) error {
	if g.phase() != HukumSelection {
		return ErrWrongPhase
	}
	chooser, ok := g.playerByID(id)
	if !ok {
		return ErrUnknownPlayer
	}
	if id != g.state.TrumpChooserID {
		return ErrNotTrumpChooser
	}
	if !suit.Valid() {
		return ErrInvalidSuit
	}

	g.state.TrumpSuit = suit
	g.transition(DealingSecond)
	g.dealSecondHalf()
	g.transition(TrickPlay)

	g.state.CurrentTurnID = g.seatAfter(chooser.ID).ID
	g.state.CurrentTrick = shared.NewTrick()
	log.Printf("Game %s: Hukum is %s. %s leads.", g.ID, suit, g.state.CurrentTurnID)
	return nil
}

func (g *Game) dealSecondHalf() {
	hands := g.remaining.Deal(shared.NumPlayers, shared.CardsPerDeal)
	if hands == nil {
		log.Panicf("Game %s: second half of the deck is missing", g.ID)
	}
	for seat, p := range g.players {
		p.AddCards(hands[seat]...)
	}
	g.remaining = nil
}

// PlayCard plays a card by id for the player whose turn it is.
func (g *Game) PlayCard(id, cardID string) (PlayResult, error) {
	if !g.machine.IsPlaying() {
		return PlayResult{}, ErrNotPlayPhase
	}
	player, ok := g.playerByID(id)
	if !ok {
		return PlayResult{}, ErrUnknownPlayer
	}
	if g.state.CurrentTurnID != id {
		return PlayResult{}, ErrNotYourTurn
	}
	card, ok := player.FindCard(cardID)
	if !ok {
		return PlayResult{}, shared.ErrCardNotInHand
	}
	if err := shared.ValidatePlay(card, player.Hand, g.state.CurrentTrick.LeadSuit); err != nil {
		return PlayResult{}, err
	}

	player.RemoveCard(card)
	g.state.CurrentTrick.AddCard(id, card)

	vakkai := g.state.Vakkai.Active
	if g.state.CurrentTrick.IsComplete(vakkai) {
		return g.resolveTrick(), nil
	}

	declarerSeat := 0
	if vakkai {
		declarerSeat = g.mustPlayer(g.state.Vakkai.DeclarerID).Seat
	}
	g.state.CurrentTurnID = g.players[shared.NextSeat(player.Seat, vakkai, declarerSeat)].ID
	return PlayResult{}, nil
}

func (g *Game) resolveTrick() PlayResult {
	winnerID, ok := g.state.CurrentTrick.ResolveWinner(g.state.TrumpSuit)
	if !ok {
		log.Panicf("Game %s: resolved an empty trick", g.ID)
	}
	team := g.mustPlayer(winnerID).Team
	g.state.TrickCounts.Add(team, 1)
	g.state.LastTrick = g.state.CurrentTrick.Clone()

	result := PlayResult{
		TrickComplete:   true,
		TrickWinnerID:   winnerID,
		TrickWinnerTeam: team,
	}
	if g.state.Vakkai.Active {
		result.Hand = g.resolveVakkaiTrick(winnerID)
	} else {
		result.Hand = g.resolveNormalTrick(winnerID)
	}
	return result
}

func (g *Game) resolveVakkaiTrick(winnerID string) *HandResult {
	vakkai := &g.state.Vakkai
	declarerTeam := g.mustPlayer(vakkai.DeclarerID).Team

	if winnerID != vakkai.DeclarerID {
		// A single lost trick ends the gambit.
		res := shared.CalculateVakkaiResult(vakkai.ConsecutiveWins, declarerTeam)
		return g.endHand(res.WinnerTeam, res.Points, "Vakkai failure - lost a trick", true)
	}

	vakkai.ConsecutiveWins++
	if vakkai.ConsecutiveWins >= shared.VakkaiTarget {
		res := shared.CalculateVakkaiResult(vakkai.ConsecutiveWins, declarerTeam)
		return g.endHand(res.WinnerTeam, res.Points, fmt.Sprintf("Vakkai success - won %d consecutive tricks", shared.VakkaiTarget), true)
	}

	g.transition(VakkaiPlay)
	g.state.CurrentTrick = shared.NewTrick()
	g.state.CurrentTurnID = vakkai.DeclarerID
	return nil
}

func (g *Game) resolveNormalTrick(winnerID string) *HandResult {
	outcome, won := shared.CheckHandWinner(g.state.TrickCounts, g.state.TrumpTeam, g.state.DealerTeam)
	if won {
		return g.endHand(outcome.Team, outcome.Points, outcome.Reason, false)
	}

	g.transition(TrickPlay)
	g.state.CurrentTrick = shared.NewTrick()
	g.state.CurrentTurnID = winnerID // Winner leads next
	return nil
}

// endHand applies the award and moves to HAND_END, or MATCH_END when the
// score crossed the threshold. Next hand's dealer and trump teams are fixed here.
func (g *Game) endHand(team shared.TeamID, points int, reason string, vakkai bool) *HandResult {
	g.state.Score = shared.ApplyScore(g.state.Score, team, points)
	g.state.HandsPlayed++
	g.state.CurrentTurnID = ""
	result := &HandResult{Team: team, Points: points, Reason: reason, Vakkai: vakkai}

	log.Printf("Game %s: Hand %d won by team %s (+%d): %s. Score A=%d B=%d.",
		g.ID, g.state.HandsPlayed, team, points, reason, g.state.Score.A, g.state.Score.B)

	if shared.IsMatchEnd(g.state.Score) {
		g.transition(MatchEnd)
		result.MatchOver = true
		winner, _ := shared.MatchWinner(g.state.Score)
		log.Printf("Game %s: Match over. Team %s wins.", g.ID, winner)
		return result
	}

	g.transition(HandEnd)
	g.state.DealerTeam = shared.DealerChoosingTeam(g.state.Score)
	g.state.TrumpTeam = shared.OppositeTeam(g.state.DealerTeam)
	return result
}

// TransitionToDealerSelection is driven by the hand-end timer. It does
// nothing unless the game still sits in HAND_END.
func (g *Game) TransitionToDealerSelection() bool {
	if g.phase() != HandEnd {
		return false
	}
	g.transition(DealerSelection)
	return true
}

// SelectDealer picks the next dealer from the dealer-choosing team and deals
// the next hand.
func (g *Game) SelectDealer(dealerID string) error {
	phase := g.phase()
	if phase != HandEnd && phase != DealerSelection {
		return ErrWrongPhase
	}
	dealer, ok := g.playerByID(dealerID)
	if !ok {
		return ErrUnknownPlayer
	}
	if dealer.Team != g.state.DealerTeam {
		return ErrDealerNotEligible
	}
	if phase == HandEnd {
		g.transition(DealerSelection)
	}
	g.setDealer(dealer)
	return g.DealFirstHalf()
}

// AutoSelectDealer picks the lowest-seat player of the dealer-choosing team.
func (g *Game) AutoSelectDealer() error {
	options := g.DealerOptions()
	if len(options) == 0 {
		return ErrWrongPhase
	}
	return g.SelectDealer(options[0])
}

// DealerOptions lists, in seat order, the players who may be picked as the
// next dealer. Empty outside HAND_END and DEALER_SELECTION.
func (g *Game) DealerOptions() []string {
	phase := g.phase()
	if phase != HandEnd && phase != DealerSelection {
		return nil
	}
	var ids []string
	for _, p := range g.seated() {
		if p.Team == g.state.DealerTeam {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// ResetMatch starts a new match with the same seating once the previous one
// has ended. Score and per-hand state are cleared, ready flags reset.
func (g *Game) ResetMatch() error {
	if g.phase() != MatchEnd {
		return ErrWrongPhase
	}
	g.state = newState()
	g.remaining = nil
	g.machine.Force(ReadyCheck)
	g.state.Phase = ReadyCheck
	for _, p := range g.seated() {
		p.Hand = []shared.Card{}
		p.IsReady = false
		p.WantsSwitch = false
	}
	log.Printf("Game %s: Match reset.", g.ID)
	return nil
}

// --- Reads ---

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase()
}

// State returns a snapshot of the full state, hidden information included.
// It must not be broadcast.
func (g *Game) State() State {
	s := g.state
	s.Phase = g.phase()
	s.CurrentTrick = g.state.CurrentTrick.Clone()
	s.LastTrick = g.state.LastTrick.Clone()
	s.TossCards = make(map[string]shared.Card, len(g.state.TossCards))
	for id, c := range g.state.TossCards {
		s.TossCards[id] = c
	}
	return s
}

// PhaseHistory returns every phase the match has passed through.
func (g *Game) PhaseHistory() []Phase {
	return g.machine.History()
}

// PlayerHand returns a copy of a player's hand.
func (g *Game) PlayerHand(id string) []shared.Card {
	p, ok := g.playerByID(id)
	if !ok {
		return nil
	}
	return p.HandCopy()
}

// Players returns copies of the seated players in seat order.
func (g *Game) Players() []shared.Player {
	seated := g.seated()
	out := make([]shared.Player, 0, len(seated))
	for _, p := range seated {
		cp := *p
		cp.Hand = p.HandCopy()
		out = append(out, cp)
	}
	return out
}

// Player returns a copy of one player.
func (g *Game) Player(id string) (shared.Player, bool) {
	p, ok := g.playerByID(id)
	if !ok {
		return shared.Player{}, false
	}
	cp := *p
	cp.Hand = p.HandCopy()
	return cp, true
}

// --- Helpers ---

func (g *Game) phase() Phase {
	return g.machine.Phase()
}

func (g *Game) transition(next Phase) {
	g.machine.Transition(next)
	g.state.Phase = next
}

func (g *Game) checkTurn(id string, phase Phase) error {
	if g.phase() != phase {
		return ErrWrongPhase
	}
	if _, ok := g.playerByID(id); !ok {
		return ErrUnknownPlayer
	}
	if g.state.CurrentTurnID != id {
		return ErrNotYourTurn
	}
	return nil
}

func (g *Game) resetHand() {
	g.state.Vakkai = VakkaiState{}
	g.state.VakkaiDecisionIndex = 0
	g.state.TrumpSuit = ""
	g.state.CurrentTrick = shared.NewTrick()
	g.state.LastTrick = nil
	g.state.TrickCounts = shared.TeamTally{}
	g.remaining = nil
	for _, p := range g.seated() {
		p.Hand = []shared.Card{}
	}
}

func (g *Game) setDealer(dealer *shared.Player) {
	g.state.DealerID = dealer.ID
	g.state.TrumpChooserID = g.seatAfter(dealer.ID).ID
}

// seatAfter returns the player clockwise of the given one.
func (g *Game) seatAfter(id string) *shared.Player {
	p := g.mustPlayer(id)
	return g.players[(p.Seat+1)%shared.NumPlayers]
}

func (g *Game) seated() []*shared.Player {
	out := make([]*shared.Player, 0, shared.NumPlayers)
	for _, p := range g.players {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (g *Game) playerByID(id string) (*shared.Player, bool) {
	for _, p := range g.players {
		if p != nil && p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// mustPlayer is for ids the engine itself stored; a miss means corrupted state.
func (g *Game) mustPlayer(id string) *shared.Player {
	p, ok := g.playerByID(id)
	if !ok {
		log.Panicf("Game %s: unknown player %q in game state", g.ID, id)
	}
	return p
}
