package amqp

import (
	"encoding/json"
	"time"
)

// NotificationMessage is the queue payload for a pending notification.
// It carries only the row ID; the worker fetches the full notification from
// the database so the queue never holds stale copies.
type NotificationMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewNotificationMessage(id, userID string) *NotificationMessage {
	return &NotificationMessage{
		ID:        id,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func (m *NotificationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func NotificationMessageFromJSON(data []byte) (*NotificationMessage, error) {
	var msg NotificationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
