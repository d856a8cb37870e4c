package server

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"hukum-game/internal/database"
	"hukum-game/internal/game"
	"hukum-game/internal/protocol"
	"hukum-game/internal/shared"

	"github.com/google/uuid"
)

// clientMessage is a helper struct to pass messages along with the client reference.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

type timerKind int

const (
	handEndTimer timerKind = iota
	matchRestartTimer
)

// timerEvent is posted back into the run loop when a delay elapses.
type timerEvent struct {
	roomCode    string
	kind        timerKind
	handsPlayed int // hands played when the timer was armed
}

const (
	roomCodeLength = 6 // Length of the unique room code
	maxChatLength  = 300
)

// ResultStore records finished matches.
type ResultStore interface {
	Insert(result database.MatchResult) (database.MatchResult, error)
}

// HubConfig holds the room timing settings.
type HubConfig struct {
	HandEndDelay      time.Duration
	MatchRestartDelay time.Duration
	AutoDealer        bool
}

// Hub owns every room. All game engine calls happen on the Run goroutine, so
// a game is never touched by two goroutines at once.
type Hub struct {
	clients        map[*Client]bool
	rooms          map[string]*Room
	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client
	timerFired     chan timerEvent
	done           chan struct{}
	cfg            HubConfig
	results        ResultStore
	timer          Timer
	rng            *rand.Rand
}

// NewHub creates a new Hub instance. results may be nil.
func NewHub(cfg HubConfig, results ResultStore, timer Timer) *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		rooms:          make(map[string]*Room),
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		timerFired:     make(chan timerEvent),
		done:           make(chan struct{}),
		cfg:            cfg,
		results:        results,
		timer:          timer,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run starts the Hub's main loop and returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			log.Printf("Hub stopping: %d rooms, %d clients", len(h.rooms), len(h.clients))
			return

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case clientMsg := <-h.processMessage:
			h.handleMessage(clientMsg.client, clientMsg.message)

		case ev := <-h.timerFired:
			h.handleTimer(ev)
		}
	}
}

// join, submit and leave hand work to the run loop. They give up once the
// loop has stopped.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) submit(m clientMessage) bool {
	select {
	case h.processMessage <- m:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) addClient(client *Client) {
	client.ID = uuid.NewString() // Assign a unique ID upon registration
	h.clients[client] = true
	log.Printf("Client %s connected", client.ID)
}

func (h *Hub) removeClient(client *Client) {
	if !h.clients[client] {
		return
	}
	delete(h.clients, client)
	close(client.send)
	log.Printf("Client %s (%s) disconnected", client.ID, client.Name)

	room, ok := h.rooms[client.RoomCode]
	if !ok {
		return
	}
	delete(room.clients, client.ID)

	if room.Game.RemovePlayer(client.ID) {
		log.Printf("Room %s: %s left before the match started.", room.Code, client.Name)
	} else {
		room.Game.SetConnected(client.ID, false)
		log.Printf("Room %s: %s disconnected mid-match.", room.Code, client.Name)
	}

	if len(room.clients) == 0 {
		delete(h.rooms, room.Code)
		log.Printf("Room %s: last client left. Room deleted.", room.Code)
		return
	}
	room.broadcast(protocol.TypePlayerLeft, protocol.PlayerLeftPayload{PlayerID: client.ID})
	room.syncState()
}

// generateRoomCode creates a unique room code of capital letters.
func (h *Hub) generateRoomCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for {
		var sb strings.Builder
		for i := 0; i < roomCodeLength; i++ {
			sb.WriteByte(letters[h.rng.Intn(len(letters))])
		}
		code := sb.String()
		if _, exists := h.rooms[code]; !exists {
			return code
		}
		log.Printf("Generated room code %s collided, retrying...", code)
	}
}

// handleMessage processes a message received from a client.
func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	switch msg.Type {
	case protocol.TypeCreateRoom:
		h.handleCreateRoom(client, msg)
	case protocol.TypeJoinRoom:
		h.handleJoinRoom(client, msg)
	case protocol.TypePing:
		client.sendMessage(protocol.TypePong, nil)
	case protocol.TypeToggleSwitchRequest,
		protocol.TypeReady,
		protocol.TypePassVakkai,
		protocol.TypeDeclareVakkai,
		protocol.TypeChooseHukum,
		protocol.TypePlayCard,
		protocol.TypeSelectDealer,
		protocol.TypeSendMessage:
		room, ok := h.rooms[client.RoomCode]
		if !ok {
			client.sendError("You are not in a room.")
			return
		}
		if err := h.handleRoomAction(room, client, msg); err != nil {
			log.Printf("Room %s: rejected '%s' from %s: %v", room.Code, msg.Type, client.ID, err)
			client.sendError(err.Error())
		}
	default:
		log.Printf("Received unknown message type '%s' from client %s (%s)", msg.Type, client.ID, client.Name)
		client.sendError("Unknown message type.")
	}
}

// handleCreateRoom opens a new room with the client in seat 0.
func (h *Hub) handleCreateRoom(client *Client, msg protocol.Message) {
	if client.RoomCode != "" {
		client.sendError("Already in a room.")
		return
	}
	var payload protocol.CreateRoomPayload
	if err := msg.Decode(&payload); err != nil {
		client.sendError("Invalid create_room message format.")
		return
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		client.sendError("Name cannot be empty.")
		return
	}

	room := newRoom(h.generateRoomCode())
	player, err := room.Game.AddPlayer(client.ID, name)
	if err != nil {
		client.sendError(err.Error())
		return
	}
	h.rooms[room.Code] = room
	h.seat(room, client, name)
	log.Printf("Room %s: created by %s (%s)", room.Code, client.ID, name)

	client.sendMessage(protocol.TypeRoomCreated, protocol.RoomJoinedPayload{
		RoomCode: room.Code,
		PlayerID: client.ID,
		Seat:     player.Seat,
	})
	room.syncState()
}

// handleJoinRoom seats the client in an existing room. The fourth player
// starts the ready check.
func (h *Hub) handleJoinRoom(client *Client, msg protocol.Message) {
	if client.RoomCode != "" {
		client.sendError("Already in a room.")
		return
	}
	var payload protocol.JoinRoomPayload
	if err := msg.Decode(&payload); err != nil {
		client.sendError("Invalid join_room message format.")
		return
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		client.sendError("Name cannot be empty.")
		return
	}
	code := strings.ToUpper(strings.TrimSpace(payload.RoomCode))
	room, ok := h.rooms[code]
	if !ok {
		client.sendError("Room not found.")
		return
	}
	if room.hasName(name) {
		client.sendError("Name already taken in this room.")
		return
	}

	player, err := room.Game.AddPlayer(client.ID, name)
	if err != nil {
		client.sendError(err.Error())
		return
	}
	h.seat(room, client, name)
	log.Printf("Room %s: %s (%s) joined seat %d", room.Code, client.ID, name, player.Seat)

	client.sendMessage(protocol.TypeRoomJoined, protocol.RoomJoinedPayload{
		RoomCode: room.Code,
		PlayerID: client.ID,
		Seat:     player.Seat,
	})
	room.broadcast(protocol.TypePlayerJoined, protocol.NewPlayerInfo(player))

	if len(room.Game.Players()) == shared.NumPlayers {
		if err := room.Game.StartReadyCheck(); err != nil {
			log.Printf("Room %s: could not start ready check: %v", room.Code, err)
		}
		h.maybeStartMatch(room)
	}
	room.syncState()
}

func (h *Hub) seat(room *Room, client *Client, name string) {
	client.Name = name
	client.RoomCode = room.Code
	room.clients[client.ID] = client
}

// handleRoomAction forwards an in-room action to the game. The returned
// error is relayed to the client.
func (h *Hub) handleRoomAction(room *Room, client *Client, msg protocol.Message) error {
	g := room.Game
	id := client.ID

	switch msg.Type {
	case protocol.TypeToggleSwitchRequest:
		res, err := g.ToggleSwitchRequest(id)
		if err != nil {
			return err
		}
		if res.Swapped {
			room.broadcast(protocol.TypeTeamsSwapped, protocol.TeamsSwappedPayload{Players: room.playerInfos()})
		} else {
			p, _ := g.Player(id)
			room.broadcast(protocol.TypeSwitchRequestUpdated, protocol.SwitchRequestPayload{PlayerID: id, WantsSwitch: p.WantsSwitch})
		}

	case protocol.TypeReady:
		if err := g.SetReady(id); err != nil {
			return err
		}
		room.broadcast(protocol.TypePlayerReady, protocol.PlayerReadyPayload{PlayerID: id})
		h.maybeStartMatch(room)

	case protocol.TypePassVakkai:
		if err := g.PassVakkai(id); err != nil {
			return err
		}
		room.broadcast(protocol.TypeVakkaiPassed, protocol.VakkaiPayload{PlayerID: id})

	case protocol.TypeDeclareVakkai:
		if err := g.DeclareVakkai(id); err != nil {
			return err
		}
		room.broadcast(protocol.TypeVakkaiDeclared, protocol.VakkaiPayload{PlayerID: id})

	case protocol.TypeChooseHukum:
		var payload protocol.ChooseHukumPayload
		if err := msg.Decode(&payload); err != nil {
			return errInvalidPayload
		}
		if err := g.ChooseHukum(id, payload.Suit); err != nil {
			return err
		}
		room.broadcast(protocol.TypeHukumChosen, protocol.HukumChosenPayload{PlayerID: id, Suit: payload.Suit})

	case protocol.TypePlayCard:
		var payload protocol.PlayCardPayload
		if err := msg.Decode(&payload); err != nil {
			return errInvalidPayload
		}
		return h.playCard(room, id, payload.CardID)

	case protocol.TypeSelectDealer:
		var payload protocol.SelectDealerPayload
		if err := msg.Decode(&payload); err != nil {
			return errInvalidPayload
		}
		if p, _ := g.Player(id); p.Team != g.State().DealerTeam {
			return game.ErrNotDealerChooser
		}
		if err := g.SelectDealer(payload.DealerID); err != nil {
			return err
		}
		log.Printf("Room %s: %s picked %s as dealer.", room.Code, id, payload.DealerID)

	case protocol.TypeSendMessage:
		var payload protocol.SendMessagePayload
		if err := msg.Decode(&payload); err != nil {
			return errInvalidPayload
		}
		text := strings.TrimSpace(payload.Text)
		if text == "" {
			return nil
		}
		text = truncateChat(text)
		room.broadcast(protocol.TypeChatMessage, protocol.ChatMessagePayload{PlayerID: id, Name: client.Name, Text: text})
		return nil
	}

	room.syncState()
	return nil
}

var errInvalidPayload = errors.New("invalid message payload")

// truncateChat cuts text to at most maxChatLength bytes without splitting a
// UTF-8 sequence.
func truncateChat(text string) string {
	if len(text) <= maxChatLength {
		return text
	}
	cut := maxChatLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// maybeStartMatch runs the toss and the first deal once everyone is ready.
func (h *Hub) maybeStartMatch(room *Room) {
	g := room.Game
	if g.Phase() != game.ReadyCheck || !g.AllReady() {
		return
	}
	toss, err := g.PerformInitialToss()
	if err != nil {
		log.Printf("Room %s: toss failed: %v", room.Code, err)
		return
	}
	room.broadcast(protocol.TypeTossResult, protocol.TossResultPayload{
		Cards:      toss.Cards,
		Points:     toss.Points,
		DealerTeam: toss.DealerTeam,
		TrumpTeam:  toss.TrumpTeam,
		DealerID:   g.State().DealerID,
	})
	if err := g.DealFirstHalf(); err != nil {
		log.Printf("Room %s: first deal failed: %v", room.Code, err)
	}
}

func (h *Hub) playCard(room *Room, playerID, cardID string) error {
	g := room.Game
	var card shared.Card
	for _, c := range g.PlayerHand(playerID) {
		if c.ID == cardID {
			card = c
			break
		}
	}

	res, err := g.PlayCard(playerID, cardID)
	if err != nil {
		return err
	}
	room.broadcast(protocol.TypeCardPlayed, protocol.CardPlayedPayload{PlayerID: playerID, Card: card})

	if res.TrickComplete {
		s := g.State()
		room.broadcast(protocol.TypeTrickWinner, protocol.TrickWinnerPayload{
			WinnerID:    res.TrickWinnerID,
			Team:        res.TrickWinnerTeam,
			Trick:       s.LastTrick,
			TrickCounts: s.TrickCounts,
		})
	}
	if res.Hand != nil {
		h.finishHand(room, res.Hand)
	}
	room.syncState()
	return nil
}

// finishHand announces the hand result and arms the follow-up timer.
func (h *Hub) finishHand(room *Room, hand *game.HandResult) {
	s := room.Game.State()
	room.broadcast(protocol.TypeHandEnd, protocol.HandEndPayload{
		WinnerTeam: hand.Team,
		Points:     hand.Points,
		Reason:     hand.Reason,
		Vakkai:     hand.Vakkai,
		Score:      s.Score,
	})

	if !hand.MatchOver {
		h.schedule(room, handEndTimer, h.cfg.HandEndDelay)
		return
	}

	winner, _ := shared.MatchWinner(s.Score)
	room.broadcast(protocol.TypeMatchEnd, protocol.MatchEndPayload{
		WinnerTeam:  winner,
		Score:       s.Score,
		HandsPlayed: s.HandsPlayed,
	})
	h.recordResult(room, winner)
	h.schedule(room, matchRestartTimer, h.cfg.MatchRestartDelay)
}

func (h *Hub) recordResult(room *Room, winner shared.TeamID) {
	if h.results == nil {
		return
	}
	s := room.Game.State()
	players := room.Game.Players()
	if len(players) != shared.NumPlayers {
		log.Printf("Room %s: cannot record result with %d players", room.Code, len(players))
		return
	}
	stored, err := h.results.Insert(database.MatchResult{
		Player1:     players[0].Name,
		Player2:     players[1].Name,
		Player3:     players[2].Name,
		Player4:     players[3].Name,
		Player1Team: string(players[0].Team),
		Player2Team: string(players[1].Team),
		Player3Team: string(players[2].Team),
		Player4Team: string(players[3].Team),
		TeamAScore:  s.Score.A,
		TeamBScore:  s.Score.B,
		WinnerTeam:  string(winner),
		HandsPlayed: s.HandsPlayed,
	})
	if err != nil {
		log.Printf("Room %s: failed to record match result: %v", room.Code, err)
		return
	}
	log.Printf("Room %s: match result %s recorded.", room.Code, stored.ID)
}

// schedule arms a timer whose callback is posted back into the run loop.
func (h *Hub) schedule(room *Room, kind timerKind, delay time.Duration) {
	ev := timerEvent{roomCode: room.Code, kind: kind, handsPlayed: room.Game.State().HandsPlayed}
	err := h.timer.After(delay, func() {
		select {
		case h.timerFired <- ev:
		case <-h.done:
		}
	})
	if err != nil {
		log.Printf("Room %s: failed to schedule timer: %v", room.Code, err)
	}
}

func (h *Hub) handleTimer(ev timerEvent) {
	room, ok := h.rooms[ev.roomCode]
	if !ok {
		return
	}
	g := room.Game
	if g.State().HandsPlayed != ev.handsPlayed {
		return
	}

	switch ev.kind {
	case handEndTimer:
		if !g.TransitionToDealerSelection() {
			return
		}
		if h.cfg.AutoDealer {
			if err := g.AutoSelectDealer(); err != nil {
				log.Printf("Room %s: auto dealer selection failed: %v", room.Code, err)
				return
			}
			log.Printf("Room %s: dealer %s picked automatically.", room.Code, g.State().DealerID)
		} else {
			room.broadcast(protocol.TypeDealerSelectionRequired, protocol.DealerSelectionPayload{
				Team:    g.State().DealerTeam,
				Options: g.DealerOptions(),
			})
		}

	case matchRestartTimer:
		if err := g.ResetMatch(); err != nil {
			return
		}
		log.Printf("Room %s: match reset, waiting for players to ready up.", room.Code)
		// Seats of players who dropped during the match are freed for newcomers.
		for _, p := range g.Players() {
			if !p.IsConnected && g.RemovePlayer(p.ID) {
				log.Printf("Room %s: freed seat %d of offline player %s.", room.Code, p.Seat, p.Name)
			}
		}
	}
	room.syncState()
}
