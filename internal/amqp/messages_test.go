package amqp

import (
	"testing"
	"time"
)

func TestReceiptEventRoundTrip(t *testing.T) {
	e := NewReceiptEvent("abc-123", ActionStatusChanged, 7)

	body, err := e.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := ReceiptEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ReceiptID != "abc-123" || got.Action != ActionStatusChanged || got.Version != 7 {
		t.Fatalf("event mismatch: %+v", got)
	}
	if got.Timestamp.IsZero() || time.Since(got.Timestamp) > time.Minute {
		t.Fatalf("timestamp not set: %v", got.Timestamp)
	}
}

func TestReceiptEventFromJSONInvalid(t *testing.T) {
	if _, err := ReceiptEventFromJSON([]byte("{bad")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
