// Package protocol is the viewer sync wire format and the algorithms on both
// ends of it: privileged outbound broadcasts and receive-side reconciliation.
//
// The channel underneath is best effort and does not exclude the sender, so
// every message carries the sender's identity and every receiver self-filters.
// There are no sequence numbers and no delivery guarantees: a lost message
// leaves a peer stale until the next broadcast, and nothing protects against
// cross-sender reordering. Last message wins.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Wire type tags.
const (
	typeShow   = "show"
	typeUpdate = "update"
	typeClose  = "close"
)

// ErrUnknownType reports a payload without a recognized type tag. Receivers
// drop these silently.
var ErrUnknownType = errors.New("unknown sync message type")

// Message is one decoded sync broadcast. Exactly the three concrete types in
// this package implement it.
type Message interface {
	Sender() string
	isMessage()
}

// Show (re)initializes the whole viewer on every peer: full image list,
// backdrop and starting position. It is the only message that may create a
// viewer where none existed.
type Show struct {
	Images     []string
	Background string
	Index      int
	SenderID   string
}

// Update carries only what changed. Nil fields mean "unchanged"; a
// Background pointing at an empty string is an explicit clear. A non-empty
// Images list makes the update behave like a Show, so a peer that joined
// late still ends up with a full viewer.
type Update struct {
	Images     []string
	Background *string
	Index      *int
	SenderID   string
}

// Close tears the viewer down on every peer.
type Close struct {
	SenderID string
}

func (m Show) Sender() string   { return m.SenderID }
func (m Update) Sender() string { return m.SenderID }
func (m Close) Sender() string  { return m.SenderID }

func (Show) isMessage()   {}
func (Update) isMessage() {}
func (Close) isMessage()  {}

// wire is the transport shape. Background stays raw so an explicit null can
// be told apart from an absent field, and the index tolerates any JSON
// number.
type wire struct {
	Type       string          `json:"type"`
	SenderID   string          `json:"senderId"`
	Images     []string        `json:"images,omitempty"`
	Background json.RawMessage `json:"background,omitempty"`
	Index      *float64        `json:"index,omitempty"`
}

// Decode parses one raw payload into its message variant. Unknown type tags
// come back as ErrUnknownType; anything unparseable is an error the caller
// logs and drops.
func Decode(raw []byte) (Message, error) {
	var w wire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("malformed sync payload: %w", err)
	}
	switch w.Type {
	case typeShow:
		msg := Show{Images: w.Images, SenderID: w.SenderID}
		if bg, ok := decodeBackground(w.Background); ok {
			msg.Background = bg
		}
		if w.Index != nil {
			msg.Index = int(*w.Index)
		}
		return msg, nil
	case typeUpdate:
		msg := Update{Images: w.Images, SenderID: w.SenderID}
		if len(w.Background) > 0 {
			if bg, ok := decodeBackground(w.Background); ok {
				msg.Background = &bg
			}
		}
		if w.Index != nil {
			i := int(*w.Index)
			msg.Index = &i
		}
		return msg, nil
	case typeClose:
		return Close{SenderID: w.SenderID}, nil
	default:
		return nil, ErrUnknownType
	}
}

// decodeBackground turns the raw field into a backdrop path. An explicit
// null is a valid, empty backdrop; a non-string value is not a backdrop at
// all.
func decodeBackground(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	if string(raw) == "null" {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Encode serializes a message for the channel. A Show with no images is
// refused: it would be discarded by every receiver anyway.
func Encode(m Message) ([]byte, error) {
	var w wire
	switch m := m.(type) {
	case Show:
		if len(m.Images) == 0 {
			return nil, errors.New("show requires a non-empty image list")
		}
		w = wire{Type: typeShow, SenderID: m.SenderID, Images: m.Images}
		w.Background = encodeBackground(m.Background)
		idx := float64(m.Index)
		w.Index = &idx
	case Update:
		w = wire{Type: typeUpdate, SenderID: m.SenderID, Images: m.Images}
		if m.Background != nil {
			w.Background = encodeBackground(*m.Background)
		}
		if m.Index != nil {
			idx := float64(*m.Index)
			w.Index = &idx
		}
	case Close:
		w = wire{Type: typeClose, SenderID: m.SenderID}
	default:
		return nil, fmt.Errorf("cannot encode %T", m)
	}
	return json.Marshal(&w)
}

func encodeBackground(bg string) json.RawMessage {
	if bg == "" {
		return json.RawMessage("null")
	}
	raw, err := json.Marshal(bg)
	if err != nil {
		return json.RawMessage("null")
	}
	return raw
}
