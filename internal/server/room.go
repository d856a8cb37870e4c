package server

import (
	"log"

	"hukum-game/internal/game"
	"hukum-game/internal/protocol"
)

// Room binds a game to the connections of its players.
type Room struct {
	Code    string
	Game    *game.Game
	clients map[string]*Client // by player id
}

func newRoom(code string) *Room {
	return &Room{
		Code:    code,
		Game:    game.NewGame(),
		clients: make(map[string]*Client),
	}
}

// hasName reports whether a seated player already uses the name.
func (r *Room) hasName(name string) bool {
	for _, p := range r.Game.Players() {
		if p.Name == name {
			return true
		}
	}
	return false
}

// broadcast sends a message to every connected client in the room.
func (r *Room) broadcast(msgType string, payload interface{}) {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		log.Printf("Room %s: error creating %s message: %v", r.Code, msgType, err)
		return
	}
	for _, c := range r.clients {
		c.deliver(msg)
	}
}

// syncState broadcasts the public state and sends each player their own hand.
func (r *Room) syncState() {
	r.broadcast(protocol.TypeGameState, r.Game.PublicState())
	for id, c := range r.clients {
		c.sendMessage(protocol.TypePrivateCards, protocol.PrivateCardsPayload{Cards: r.Game.PlayerHand(id)})
	}
}

func (r *Room) playerInfos() []protocol.PlayerInfo {
	players := r.Game.Players()
	infos := make([]protocol.PlayerInfo, len(players))
	for i, p := range players {
		infos[i] = protocol.NewPlayerInfo(p)
	}
	return infos
}
