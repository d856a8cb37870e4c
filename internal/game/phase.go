package game

import (
	"log"
	"strings"
)

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	WaitingForPlayers Phase = "WAITING_FOR_PLAYERS"
	ReadyCheck        Phase = "READY_CHECK"
	InitialToss       Phase = "INITIAL_TOSS"
	DealingFirst      Phase = "DEALING_FIRST"
	VakkaiDecision    Phase = "VAKKAI_DECISION"
	HukumSelection    Phase = "HUKUM_SELECTION"
	DealingSecond     Phase = "DEALING_SECOND"
	TrickPlay         Phase = "TRICK_PLAY"
	VakkaiPlay        Phase = "VAKKAI_PLAY"
	HandEnd           Phase = "HAND_END"
	DealerSelection   Phase = "DEALER_SELECTION"
	MatchEnd          Phase = "MATCH_END" // terminal
)

var validTransitions = map[Phase][]Phase{
	WaitingForPlayers: {ReadyCheck},
	ReadyCheck:        {InitialToss, WaitingForPlayers},
	InitialToss:       {DealingFirst},
	DealingFirst:      {VakkaiDecision},
	VakkaiDecision:    {HukumSelection, VakkaiPlay},
	HukumSelection:    {DealingSecond},
	DealingSecond:     {TrickPlay},
	TrickPlay:         {TrickPlay, HandEnd, MatchEnd},
	VakkaiPlay:        {VakkaiPlay, HandEnd, MatchEnd},
	HandEnd:           {DealerSelection, MatchEnd},
	DealerSelection:   {DealingFirst},
	MatchEnd:          {},
}

// PhaseMachine guards phase changes against the transition table.
type PhaseMachine struct {
	current Phase
	history []Phase
}

// NewPhaseMachine creates a machine sitting in the given phase.
func NewPhaseMachine(initial Phase) *PhaseMachine {
	return &PhaseMachine{current: initial, history: []Phase{initial}}
}

// Phase returns the current phase.
func (m *PhaseMachine) Phase() Phase {
	return m.current
}

// CanTransitionTo reports whether next is reachable from the current phase.
func (m *PhaseMachine) CanTransitionTo(next Phase) bool {
	for _, p := range validTransitions[m.current] {
		if p == next {
			return true
		}
	}
	return false
}

// Transition moves to next. A move outside the table is an engine bug and panics.
func (m *PhaseMachine) Transition(next Phase) {
	if !m.CanTransitionTo(next) {
		allowed := make([]string, 0, len(validTransitions[m.current]))
		for _, p := range validTransitions[m.current] {
			allowed = append(allowed, string(p))
		}
		log.Panicf("invalid phase transition: %s -> %s (valid: %s)", m.current, next, strings.Join(allowed, ", "))
	}
	m.current = next
	m.history = append(m.history, next)
}

// Force jumps to a phase without consulting the table. Only the engine's own
// reset logic uses it.
func (m *PhaseMachine) Force(phase Phase) {
	m.current = phase
	m.history = append(m.history, phase)
}

// History returns every phase visited, oldest first.
func (m *PhaseMachine) History() []Phase {
	h := make([]Phase, len(m.history))
	copy(h, m.history)
	return h
}

// IsTerminal reports whether the match is over.
func (m *PhaseMachine) IsTerminal() bool {
	return m.current == MatchEnd
}

// IsPlaying reports whether cards are being played.
func (m *PhaseMachine) IsPlaying() bool {
	return m.current == TrickPlay || m.current == VakkaiPlay
}
