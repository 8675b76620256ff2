package amqp

import (
	"encoding/json"
	"time"
)

// Event actions published when the register mutates.
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionDeleted       = "deleted"
	ActionStatusChanged = "status_changed"
)

// ReceiptEvent is a lightweight change notification. It carries only the
// receipt id and the register version; consumers fetch the full record from
// the configured storage backend.
type ReceiptEvent struct {
	ReceiptID string    `json:"receipt_id"`
	Action    string    `json:"action"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReceiptEvent(receiptID, action string, version int64) *ReceiptEvent {
	return &ReceiptEvent{
		ReceiptID: receiptID,
		Action:    action,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (e *ReceiptEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ReceiptEventFromJSON(data []byte) (*ReceiptEvent, error) {
	var e ReceiptEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
