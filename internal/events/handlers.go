package events

import (
	"encoding/json"

	"api/internal/activity"
	"api/internal/notifier"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// EventParams carries the collaborators event handlers need.
type EventParams struct {
	WebURL         string
	Notifier       notifier.INotifier
	ActivityLogger activity.IActivityLogger
}

// HandleEvents consumes the notifications queue until the channel closes.
// Malformed or failed messages are logged and acked so the queue keeps
// draining; notification delivery is best effort.
func HandleEvents(params *EventParams, messages <-chan *message.Message) {
	for msg := range messages {
		var envelope Envelope
		if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
			zap.L().Error("Failed to decode event envelope", zap.Error(err))
			msg.Ack()
			continue
		}

		switch envelope.Type {
		case EventTypeTempPasswordIssued:
			handleTempPasswordIssued(params, envelope.Payload)
		case EventTypeWeeklyDigest:
			handleWeeklyDigest(params, envelope.Payload)
		default:
			zap.L().Warn("Unknown event type", zap.String("event_type", string(envelope.Type)))
		}

		msg.Ack()
	}
}

func handleTempPasswordIssued(params *EventParams, payload json.RawMessage) {
	var event TempPasswordIssuedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		zap.L().Error("Failed to decode temp password event", zap.Error(err))
		return
	}

	err := params.Notifier.NotifyFromTemplate(
		event.Email,
		"Your temporary password",
		"temp_password",
		map[string]string{
			"Nickname":     event.Nickname,
			"TempPassword": event.TempPassword,
			"WebURL":       params.WebURL,
		},
	)
	if err != nil {
		zap.L().Error("Failed to send temp password notification",
			zap.String("email", event.Email), zap.Error(err))
	}
}

func handleWeeklyDigest(params *EventParams, payload json.RawMessage) {
	var event WeeklyDigestEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		zap.L().Error("Failed to decode weekly digest event", zap.Error(err))
		return
	}

	err := params.Notifier.NotifyFromTemplate(
		event.Email,
		"Weekly activity digest",
		"weekly_digest",
		map[string]any{
			"StartDate":  event.StartDate,
			"EndDate":    event.EndDate,
			"LoginCount": event.LoginCount,
			"ChatCount":  event.ChatCount,
			"TotalUsers": event.TotalUsers,
			"TotalPosts": event.TotalPosts,
			"WebURL":     params.WebURL,
		},
	)
	if err != nil {
		zap.L().Error("Failed to send weekly digest",
			zap.String("email", event.Email), zap.Error(err))
	}
}
