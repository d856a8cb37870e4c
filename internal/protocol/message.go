package protocol

import (
	"encoding/json"

	"hukum-game/internal/game"
	"hukum-game/internal/shared"
)

// Message represents a generic WebSocket message structure.
type Message struct {
	Type    string          `json:"type"`              // e.g. "join_room", "play_card"
	Payload json.RawMessage `json:"payload,omitempty"` // Raw JSON payload, decoded per type
}

// Client -> server message types.
const (
	TypeCreateRoom          = "create_room"
	TypeJoinRoom            = "join_room"
	TypeToggleSwitchRequest = "toggle_switch_request"
	TypeReady               = "ready"
	TypePassVakkai          = "pass_vakkai"
	TypeDeclareVakkai       = "declare_vakkai"
	TypeChooseHukum         = "choose_hukum"
	TypePlayCard            = "play_card"
	TypeSelectDealer        = "select_dealer"
	TypeSendMessage         = "send_message"
	TypePing                = "ping"
)

// Server -> client message types.
const (
	TypeRoomCreated             = "room_created"
	TypeRoomJoined              = "room_joined"
	TypePlayerJoined            = "player_joined"
	TypePlayerLeft              = "player_left"
	TypePlayerReady             = "player_ready"
	TypeSwitchRequestUpdated    = "switch_request_updated"
	TypeTeamsSwapped            = "teams_swapped"
	TypeTossResult              = "toss_result"
	TypeGameState               = "game_state"
	TypePrivateCards            = "private_cards"
	TypeVakkaiDeclared          = "vakkai_declared"
	TypeVakkaiPassed            = "vakkai_passed"
	TypeHukumChosen             = "hukum_chosen"
	TypeCardPlayed              = "card_played"
	TypeTrickWinner             = "trick_winner"
	TypeHandEnd                 = "hand_end"
	TypeMatchEnd                = "match_end"
	TypeDealerSelectionRequired = "dealer_selection_required"
	TypeChatMessage             = "chat_message"
	TypeError                   = "error"
	TypePong                    = "pong"
)

// --- Client -> Server Payload Structs ---

type CreateRoomPayload struct {
	Name string `json:"name"`
}

type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
	Name     string `json:"name"`
}

type ChooseHukumPayload struct {
	Suit shared.Suit `json:"suit"`
}

type PlayCardPayload struct {
	CardID string `json:"card_id"`
}

type SelectDealerPayload struct {
	DealerID string `json:"dealer_id"`
}

type SendMessagePayload struct {
	Text string `json:"text"`
}

// --- Server -> Client Payload Structs ---

// RoomJoinedPayload answers both create_room and join_room.
type RoomJoinedPayload struct {
	RoomCode string `json:"room_code"`
	PlayerID string `json:"player_id"`
	Seat     int    `json:"seat"`
}

type PlayerInfo struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Seat int           `json:"seat"`
	Team shared.TeamID `json:"team"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
}

type PlayerReadyPayload struct {
	PlayerID string `json:"player_id"`
}

type SwitchRequestPayload struct {
	PlayerID    string `json:"player_id"`
	WantsSwitch bool   `json:"wants_switch"`
}

type TeamsSwappedPayload struct {
	Players []PlayerInfo `json:"players"`
}

type TossResultPayload struct {
	Cards      map[string]shared.Card `json:"cards"`
	Points     shared.TeamTally       `json:"points"`
	DealerTeam shared.TeamID          `json:"dealer_team"`
	TrumpTeam  shared.TeamID          `json:"trump_team"`
	DealerID   string                 `json:"dealer_id"`
}

type PrivateCardsPayload struct {
	Cards []shared.Card `json:"cards"`
}

type VakkaiPayload struct {
	PlayerID string `json:"player_id"`
}

type HukumChosenPayload struct {
	PlayerID string      `json:"player_id"`
	Suit     shared.Suit `json:"suit"`
}

type CardPlayedPayload struct {
	PlayerID string      `json:"player_id"`
	Card     shared.Card `json:"card"`
}

type TrickWinnerPayload struct {
	WinnerID    string           `json:"winner_id"`
	Team        shared.TeamID    `json:"team"`
	Trick       *shared.Trick    `json:"trick"`
	TrickCounts shared.TeamTally `json:"trick_counts"`
}

type HandEndPayload struct {
	WinnerTeam shared.TeamID    `json:"winner_team"`
	Points     int              `json:"points"`
	Reason     string           `json:"reason"`
	Vakkai     bool             `json:"vakkai"`
	Score      shared.TeamTally `json:"score"`
}

type MatchEndPayload struct {
	WinnerTeam  shared.TeamID    `json:"winner_team"`
	Score       shared.TeamTally `json:"score"`
	HandsPlayed int              `json:"hands_played"`
}

type DealerSelectionPayload struct {
	Team    shared.TeamID `json:"team"`
	Options []string      `json:"options"`
}

type ChatMessagePayload struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Text     string `json:"text"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// GameStatePayload is the public view of the room's game.
type GameStatePayload = game.PublicState

// NewPlayerInfo extracts the public identity of a player.
func NewPlayerInfo(p shared.Player) PlayerInfo {
	return PlayerInfo{ID: p.ID, Name: p.Name, Seat: p.Seat, Team: p.Team}
}

// NewMessage encodes a message with its payload. A nil payload is omitted.
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	if payload == nil {
		return json.Marshal(Message{Type: msgType})
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg := Message{
		Type:    msgType,
		Payload: payloadBytes,
	}
	return json.Marshal(msg)
}

// Decode unmarshals a message payload into v. An absent payload leaves v untouched.
func (m Message) Decode(v interface{}) error {
	if len(m.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}
