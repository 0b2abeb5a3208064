package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "question-bank-service"
	EventVersion = "1.0"
)

// Event types published by the service
const (
	BankCreated        = "bank.created"
	BankDeleted        = "bank.deleted"
	TopicCreated       = "topic.created"
	TopicDeleted       = "topic.deleted"
	QuestionCreated    = "question.created"
	QuestionUpdated    = "question.updated"
	QuestionDeleted    = "question.deleted"
	QuestionsActivated = "question.activated"
)

// Event is the envelope for every message published to the broker.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope with a fresh id and timestamp.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}
