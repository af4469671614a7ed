package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RecordSyncMessage asks the sync worker to mirror one stored transaction to
// the export sheet. It carries only the record's position in the document;
// the worker fetches the full record from storage.
type RecordSyncMessage struct {
	MessageID string    `json:"message_id"`
	Position  int       `json:"position"`
	ChatID    string    `json:"chat_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordSyncMessage creates a sync message for the record at position.
func NewRecordSyncMessage(position int, chatID string) *RecordSyncMessage {
	return &RecordSyncMessage{
		MessageID: uuid.NewString(),
		Position:  position,
		ChatID:    chatID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordSyncMessageFromJSON creates a message from JSON bytes.
func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
