package models

// NotifyAudience selects the delivery target of a notification.
type NotifyAudience string

const (
	AudienceGuest NotifyAudience = "guest"
	AudienceAdmin NotifyAudience = "admin"
)

// NotifyPayload is the best-effort message handed to the notification queue.
type NotifyPayload struct {
	Audience      NotifyAudience `json:"audience"`
	Email         string         `json:"email,omitempty"`
	Subject       string         `json:"subject"`
	Body          string         `json:"body"`
	ReservationID string         `json:"reservationId,omitempty"`
}
