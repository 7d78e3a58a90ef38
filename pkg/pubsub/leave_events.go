package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
)

const publishTimeout = 15 * time.Second

// Leave event actions emitted on the leave-events topic.
const (
	LeaveEventCreated  = "created"
	LeaveEventExtended = "extended"
	LeaveEventDeleted  = "deleted"
)

// LeavePeriodEvent is the payload published whenever a leave period is
// created or changed, whether by hand or by the attendance reconciler.
type LeavePeriodEvent struct {
	EventID    string    `json:"event_id"`
	Action     string    `json:"action"`
	PeriodID   string    `json:"period_id"`
	EmployeeID string    `json:"employee_id"`
	FromDate   string    `json:"from_date"`
	ToDate     string    `json:"to_date"`
	LeaveType  string    `json:"leave_type"`
	Reason     string    `json:"reason,omitempty"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LeaveEventPublisher is the publishing surface services depend on.
// *Client satisfies it; a nil *Client is a silent no-op so deployments
// without Pub/Sub still work.
type LeaveEventPublisher interface {
	PublishLeavePeriodEvent(ctx context.Context, evt LeavePeriodEvent) error
}

// PublishLeavePeriodEvent marshals and publishes the event to the
// configured leave-events topic.
func (c *Client) PublishLeavePeriodEvent(ctx context.Context, evt LeavePeriodEvent) error {
	if c == nil || c.client == nil {
		return nil
	}
	pub := c.LeaveEventsPublisher()
	if pub == nil {
		return errors.New("leave events topic not configured")
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal leave event: %w", err)
	}

	msg := &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_id":    evt.EventID,
			"action":      evt.Action,
			"employee_id": evt.EmployeeID,
			"source":      evt.Source,
			"occurred_at": evt.OccurredAt.Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	result := pub.Publish(publishCtx, msg)
	if result == nil {
		return errors.New("publisher returned nil result")
	}
	if _, err := result.Get(publishCtx); err != nil {
		return fmt.Errorf("publish leave event: %w", err)
	}
	return nil
}
