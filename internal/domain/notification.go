package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeReceipt = "receipt"
	NotificationTypeDue     = "due"
	NotificationTypeOverdue = "overdue"

	NotificationChannelSMS = "sms"

	NotificationStatusSent   = "sent"
	NotificationStatusFailed = "failed"
)

// Notification is a persisted outbound message. Delivery is stubbed:
// rows are written as "sent" until an SMS provider is integrated.
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Type      string    `json:"type" db:"type"`
	Channel   string    `json:"channel" db:"channel"`
	Message   string    `json:"message" db:"message"`
	Status    string    `json:"status" db:"status"`
	RefEntity *string   `json:"ref_entity" db:"ref_entity"`
	SentAt    time.Time `json:"sent_at" db:"sent_at"`
}
