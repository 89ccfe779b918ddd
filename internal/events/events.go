package events

// Billing event types recorded in the outbox.
const (
	EventCycleCreated     = "cycle.created"
	EventAnnouncementSent = "announcement.sent"
)

// CyclePayload captures the minimal data describing a cycle event.
type CyclePayload struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Rows     int    `json:"rows"`
	Trigger  string `json:"trigger,omitempty"`
	Announce bool   `json:"announce,omitempty"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p CyclePayload) ToMap() map[string]any {
	payload := map[string]any{
		"year":  p.Year,
		"month": p.Month,
		"rows":  p.Rows,
	}
	if p.Trigger != "" {
		payload["trigger"] = p.Trigger
	}
	if p.Announce {
		payload["announce"] = true
	}
	return payload
}
