package events

import (
	"encoding/json"

	"api/internal/messaging"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

type EventType string

const (
	EventTypeTempPasswordIssued EventType = "temp_password_issued"
	EventTypeWeeklyDigest       EventType = "weekly_digest"
)

// Envelope wraps every message on the notifications queue so consumers
// can dispatch on the event type before decoding the payload.
type Envelope struct {
	Type    EventType       `json:"event_type"`
	Payload json.RawMessage `json:"payload"`
}

func publish(publisher messaging.IPublisher, eventType EventType, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("Failed to marshal event payload",
			zap.String("event_type", string(eventType)), zap.Error(err))
		return
	}

	envelope, err := json.Marshal(Envelope{Type: eventType, Payload: raw})
	if err != nil {
		zap.L().Error("Failed to marshal event envelope",
			zap.String("event_type", string(eventType)), zap.Error(err))
		return
	}

	if err = publisher.Publish(message.NewMessage(watermill.NewUUID(), envelope)); err != nil {
		zap.L().Error("Failed to publish event",
			zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

type TempPasswordIssuedEvent struct {
	publisher messaging.IPublisher

	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	TempPassword string `json:"temp_password"`
	WebURL       string `json:"web_url"`
}

func NewTempPasswordIssued(
	publisher messaging.IPublisher,
	email string,
	nickname string,
	tempPassword string,
	webURL string,
) *TempPasswordIssuedEvent {
	return &TempPasswordIssuedEvent{
		publisher:    publisher,
		Email:        email,
		Nickname:     nickname,
		TempPassword: tempPassword,
		WebURL:       webURL,
	}
}

func (e *TempPasswordIssuedEvent) Trigger() {
	publish(e.publisher, EventTypeTempPasswordIssued, e)
}

type WeeklyDigestEvent struct {
	publisher messaging.IPublisher

	Email      string `json:"email"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	LoginCount int64  `json:"login_count"`
	ChatCount  int64  `json:"chat_count"`
	TotalUsers int64  `json:"total_users"`
	TotalPosts int64  `json:"total_posts"`
	WebURL     string `json:"web_url"`
}

func NewWeeklyDigest(
	publisher messaging.IPublisher,
	email string,
	startDate string,
	endDate string,
	loginCount int64,
	chatCount int64,
	totalUsers int64,
	totalPosts int64,
	webURL string,
) *WeeklyDigestEvent {
	return &WeeklyDigestEvent{
		publisher:  publisher,
		Email:      email,
		StartDate:  startDate,
		EndDate:    endDate,
		LoginCount: loginCount,
		ChatCount:  chatCount,
		TotalUsers: totalUsers,
		TotalPosts: totalPosts,
		WebURL:     webURL,
	}
}

func (e *WeeklyDigestEvent) Trigger() {
	publish(e.publisher, EventTypeWeeklyDigest, e)
}
