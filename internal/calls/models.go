package calls

import "time"

// Status is the call lifecycle state.
//
// Lifecycle invariant: status moves monotonically toward StatusEnded. Once a
// record is ended it stops accepting status transitions; outcome fields may
// still be attached, but status never regresses. The store enforces this.
type Status string

const (
	StatusInitiated  Status = "initiated"
	StatusRinging    Status = "ringing"
	StatusInProgress Status = "in-progress"
	StatusEnded      Status = "ended"

	// StatusUnknown is a response-only pseudostatus used when neither the
	// store nor the provider can say anything. It is never persisted.
	StatusUnknown Status = "unknown"
)

// providerStatusTable translates the provider's status vocabulary into ours.
// Unrecognized provider statuses pass through verbatim rather than being
// rejected; the provider adds vocabulary faster than we ship.
var providerStatusTable = map[string]Status{
	"queued":      StatusInitiated,
	"ringing":     StatusRinging,
	"in-progress": StatusInProgress,
	"forwarding":  StatusInProgress,
	"ended":       StatusEnded,
}

// TranslateProviderStatus maps a provider status string into a Status.
func TranslateProviderStatus(s string) Status {
	if mapped, ok := providerStatusTable[s]; ok {
		return mapped
	}
	return Status(s)
}

// Record is the server-side lifecycle state for one outbound call, keyed by
// the provider-assigned call id.
//
// The context snapshot fields (LeadName, Phone, Campaign, City, StartedAt)
// are fixed at initiation. The outcome fields are populated once, at terminal
// status, by webhook ingestion and are absent before then.
type Record struct {
	CallID   string `json:"callId"`
	RecordID string `json:"recordId,omitempty"`

	Status Status `json:"status"`

	LeadName  string    `json:"leadName,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Campaign  string    `json:"campaign,omitempty"`
	City      string    `json:"city,omitempty"`
	StartedAt time.Time `json:"startedAt"`

	Outcome            string     `json:"outcome,omitempty"`
	InterestLevel      string     `json:"interestLevel,omitempty"`
	MainObjection      string     `json:"mainObjection,omitempty"`
	CustomerBackground string     `json:"customerBackground,omitempty"`
	Summary            string     `json:"summary,omitempty"`
	DurationSeconds    int        `json:"durationSeconds,omitempty"`
	WhatsappSent       bool       `json:"whatsappSent,omitempty"`
	HasBDIIssue        bool       `json:"hasBDIIssue,omitempty"`
	EndedAt            *time.Time `json:"endedAt,omitempty"`
}

// Ended reports whether the record reached the terminal status.
func (r Record) Ended() bool { return r.Status == StatusEnded }
