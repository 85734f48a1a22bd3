package webhook

import (
	"errors"

	go_json "github.com/goccy/go-json"
)

var ErrUnknownEventShape = errors.New("event body missing id")

// PaymentEvent is the minimal envelope the downstream collaborator needs.
// The gateway never acts on these fields beyond recording them.
type PaymentEvent struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ParseEvent decodes an accepted body. It runs after verification only;
// decode failures are a downstream concern, never a verification verdict.
func ParseEvent(body []byte) (*PaymentEvent, error) {
	var event PaymentEvent
	if err := go_json.Unmarshal(body, &event); err != nil {
		return nil, err
	}
	if event.ID == "" {
		return nil, ErrUnknownEventShape
	}
	return &event, nil
}
