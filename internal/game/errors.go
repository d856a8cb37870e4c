package game

import "errors"

// Rejections of player actions. The text is relayed to the client as-is.
var (
	ErrRoomFull          = errors.New("room is full")
	ErrUnknownPlayer     = errors.New("player not in this game")
	ErrDuplicatePlayer   = errors.New("player already in this game")
	ErrWrongPhase        = errors.New("action not allowed in the current phase")
	ErrNotPlayPhase      = errors.New("not in trick play phase")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrNotTrumpChooser   = errors.New("only the trump chooser can choose hukum")
	ErrInvalidSuit       = errors.New("invalid suit")
	ErrDealerNotEligible = errors.New("dealer must come from the dealer-choosing team")
	ErrNotDealerChooser  = errors.New("only the dealer-choosing team can pick the dealer")
	ErrNotEnoughPlayers  = errors.New("need exactly 4 players")
	ErrNotAllReady       = errors.New("not all players are ready")
)
