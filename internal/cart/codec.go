package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/cart-tracker/internal/models"
)

var (
	// ErrUnknownAction is returned when an envelope carries a type that is not a Kind.
	ErrUnknownAction = errors.New("unknown action type")
	// ErrInvalidPayload is returned when an envelope payload does not match its type.
	ErrInvalidPayload = errors.New("invalid action payload")
)

// Envelope is the wire form of an Action: {"type": "...", "payload": ...}.
type Envelope struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type quantityPayload struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

// DecodeAction parses an envelope into an Action.
func DecodeAction(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return env.Action()
}

// Action converts the envelope into the Action it describes.
func (e Envelope) Action() (Action, error) {
	switch e.Type {
	case KindAddItem:
		var p models.Product
		if err := unmarshalPayload(e.Payload, &p); err != nil {
			return nil, err
		}
		return AddItem{Product: p}, nil
	case KindRemoveItem:
		var id int
		if err := unmarshalPayload(e.Payload, &id); err != nil {
			return nil, err
		}
		return RemoveItem{ProductID: id}, nil
	case KindUpdateQuantity:
		var q quantityPayload
		if err := unmarshalPayload(e.Payload, &q); err != nil {
			return nil, err
		}
		return UpdateQuantity{ProductID: q.ID, Quantity: q.Quantity}, nil
	case KindClearCart:
		return ClearCart{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, e.Type)
	}
}

// EncodeAction returns the envelope form of a.
func EncodeAction(a Action) (Envelope, error) {
	var payload any
	switch a := a.(type) {
	case AddItem:
		payload = a.Product
	case RemoveItem:
		payload = a.ProductID
	case UpdateQuantity:
		payload = quantityPayload{ID: a.ProductID, Quantity: a.Quantity}
	case ClearCart:
		return Envelope{Type: KindClearCart}, nil
	default:
		return Envelope{}, ErrUnknownAction
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode payload: %w", err)
	}
	return Envelope{Type: a.Kind(), Payload: raw}, nil
}

func unmarshalPayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing payload", ErrInvalidPayload)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
