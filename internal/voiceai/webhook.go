package voiceai

import "encoding/json"

// Webhook event kinds this service reacts to. Anything else is acked and
// ignored; the sender cannot usefully retry.
const (
	EventStatusUpdate    = "status-update"
	EventEndOfCallReport = "end-of-call-report"
)

// WebhookEvent is the provider's event envelope, reduced to the fields this
// service consumes. Delivery guarantees are unreliable, so every field is
// optional and missing values are defaulted downstream, never rejected.
type WebhookEvent struct {
	Message struct {
		Type string `json:"type"`

		Call struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"call"`

		Status string `json:"status"`

		StartedAt       string  `json:"startedAt"`
		EndedAt         string  `json:"endedAt"`
		DurationSeconds float64 `json:"durationSeconds"`

		Analysis struct {
			Summary        string         `json:"summary"`
			StructuredData StructuredData `json:"structuredData"`
		} `json:"analysis"`
	} `json:"message"`
}

// StructuredData is the post-call analysis payload produced by the assistant.
type StructuredData struct {
	Outcome            string `json:"outcome"`
	InterestLevel      string `json:"interestLevel"`
	MainObjection      string `json:"mainObjection"`
	CustomerBackground string `json:"customerBackground"`
	WhatsappSent       bool   `json:"whatsappSent"`
	HasBDIIssue        bool   `json:"hasBDIIssue"`
}

// ParseWebhook decodes a raw webhook body. A decode failure is the caller's
// signal to ack and drop; there is nothing to salvage from a bad payload.
func ParseWebhook(body []byte) (WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return WebhookEvent{}, err
	}
	return ev, nil
}

// EventType returns the dispatch key of the event.
func (ev WebhookEvent) EventType() string { return ev.Message.Type }

// CallID returns the provider call identifier, empty when absent.
func (ev WebhookEvent) CallID() string { return ev.Message.Call.ID }

// RecordID returns the CRM back-reference echoed through call metadata.
func (ev WebhookEvent) RecordID() string { return ev.Message.Call.Metadata["recordId"] }
