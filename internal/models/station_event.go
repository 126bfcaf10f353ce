package models

import "time"

// Journal event types.
const (
	EventAPConfigured  = "AP_CONFIGURED"
	EventAPStarted     = "AP_STARTED"
	EventLinkUp        = "LINK_UP"
	EventBringupFailed = "BRINGUP_FAILED"
	EventStoreDegraded = "STORE_DEGRADED"
	EventUpdateSkipped = "UPDATE_SKIPPED"
)

// StationEvent is a single journal entry.
type StationEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // AP_CONFIGURED | AP_STARTED | LINK_UP | BRINGUP_FAILED | STORE_DEGRADED | UPDATE_SKIPPED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
