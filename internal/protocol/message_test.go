package protocol

import (
	"encoding/json"
	"strings"
	"testing"

	"hukum-game/internal/shared"
)

func TestNewMessageWithoutPayload(t *testing.T) {
	b, err := NewMessage(TypePong, nil)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if string(b) != `{"type":"pong"}` {
		t.Errorf("unexpected encoding %s", b)
	}
}

func TestNewMessageDecodes(t *testing.T) {
	b, err := NewMessage(TypePlayCard, PlayCardPayload{CardID: shared.CardID(shared.Heart, shared.Ace)})
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if !strings.Contains(string(b), `"card_id":"HEART_A"`) {
		t.Errorf("payload not encoded with snake_case keys: %s", b)
	}

	var msg Message
	if err := json.Unmarshal(b, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var p PlayCardPayload
	if err := msg.Decode(&p); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if msg.Type != TypePlayCard || p.CardID != "HEART_A" {
		t.Errorf("unexpected round trip %+v %+v", msg, p)
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	msg := Message{Type: TypeReady}
	p := ChooseHukumPayload{Suit: shared.Club}
	if err := msg.Decode(&p); err != nil || p.Suit != shared.Club {
		t.Errorf("empty payload should leave the target untouched, got %+v %v", p, err)
	}
	bad := Message{Type: TypeChooseHukum, Payload: json.RawMessage(`{"suit":`)}
	if err := bad.Decode(&p); err == nil {
		t.Errorf("expected an error for truncated JSON")
	}
}
