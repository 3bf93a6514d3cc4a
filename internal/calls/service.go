package calls

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"callbridge/internal/leads"
	"callbridge/internal/outcome"
	"callbridge/internal/phone"
	"callbridge/internal/voiceai"
)

// CRMWriter is the slice of the CRM client the write-back path needs.
type CRMWriter interface {
	UpdateLead(ctx context.Context, recordID string, fields map[string]string) error
}

// Service orchestrates the call lifecycle: initiation, status polling,
// webhook ingestion, and CRM write-back.
//
// Eventual consistency: the store is authoritative for call state; the CRM
// write-back is best-effort and its failure never rolls back or blocks a
// store update.
type Service struct {
	store    *Store
	provider voiceai.Provider
	crm      CRMWriter
	log      *slog.Logger

	// writeBackTimeout bounds the asynchronous CRM patch.
	writeBackTimeout time.Duration

	// clock and spawn are injectable for deterministic tests.
	clock func() time.Time
	spawn func(fn func())
}

func NewService(store *Store, provider voiceai.Provider, crm CRMWriter, log *slog.Logger, writeBackTimeout time.Duration) *Service {
	if writeBackTimeout <= 0 {
		writeBackTimeout = 15 * time.Second
	}
	return &Service{
		store:            store,
		provider:         provider,
		crm:              crm,
		log:              log,
		writeBackTimeout: writeBackTimeout,
		clock:            time.Now,
		spawn:            func(fn func()) { go fn() },
	}
}

// StartResult is what the initiation endpoint returns to the caller.
type StartResult struct {
	CallID string `json:"callId"`
	Status Status `json:"status"`
}

// Start normalizes the lead's phone, builds the assistant context, places
// the outbound call, and records it as initiated.
//
// phone.ErrNotAPhone from here means caller error; a *voiceai.UpstreamError
// means the provider refused and its status should be mirrored.
func (s *Service) Start(ctx context.Context, lead leads.Lead) (StartResult, error) {
	number, err := phone.Normalize(lead.Phone)
	if err != nil {
		return StartResult{}, err
	}

	metadata := map[string]string{}
	if lead.RecordID != "" {
		metadata["recordId"] = lead.RecordID
	}

	created, err := s.provider.CreateCall(ctx, voiceai.CreateCallRequest{
		CustomerNumber: number,
		CustomerName:   lead.Name,
		Overrides:      voiceai.BuildOverrides(lead),
		Metadata:       metadata,
	})
	if err != nil {
		return StartResult{}, err
	}

	s.store.Put(Record{
		CallID:    created.CallID,
		RecordID:  lead.RecordID,
		Status:    StatusInitiated,
		LeadName:  lead.Name,
		Phone:     number,
		Campaign:  lead.Campaign,
		City:      lead.City,
		StartedAt: s.clock().UTC(),
	})

	s.log.Info("call initiated", "call_id", created.CallID, "record_id", lead.RecordID)
	return StartResult{CallID: created.CallID, Status: StatusInitiated}, nil
}

// View is the public status projection of one call.
type View struct {
	CallID          string `json:"callId"`
	Status          Status `json:"status"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
}

// Status answers a lifecycle poll. A stored terminal record is authoritative
// and short-circuits the provider query; otherwise the live status is
// fetched, translated, merged, and returned. Provider failures degrade to
// the unknown pseudostatus, never to an error.
func (s *Service) Status(ctx context.Context, callID string) View {
	rec, found := s.store.Get(callID)
	if found && rec.Ended() {
		return View{CallID: callID, Status: rec.Status, DurationSeconds: rec.DurationSeconds}
	}

	info, err := s.provider.GetCall(ctx, callID)
	if err != nil {
		s.log.Warn("live status query failed", "call_id", callID, "err", err)
		if found {
			return View{CallID: callID, Status: rec.Status, DurationSeconds: rec.DurationSeconds}
		}
		return View{CallID: callID, Status: StatusUnknown}
	}

	status := TranslateProviderStatus(info.Status)
	duration := durationBetween(info.StartedAt, info.EndedAt)

	merged := s.store.Merge(callID, func(r Record) Record {
		r.Status = status
		if duration > 0 {
			r.DurationSeconds = duration
		}
		if status == StatusEnded && r.EndedAt == nil {
			if t, ok := parseTime(info.EndedAt); ok {
				r.EndedAt = &t
			}
		}
		return r
	})

	return View{CallID: callID, Status: merged.Status, DurationSeconds: merged.DurationSeconds}
}

// HandleStatusUpdate merges a bare status change from a webhook event.
// Events without a call id are ignored silently; webhook delivery is
// unreliable and defensive ignoring is the correct response.
func (s *Service) HandleStatusUpdate(ev voiceai.WebhookEvent) {
	callID := ev.CallID()
	if callID == "" {
		s.log.Debug("status-update without call id ignored")
		return
	}

	s.store.Merge(callID, func(r Record) Record {
		if ev.Message.Status != "" {
			r.Status = TranslateProviderStatus(ev.Message.Status)
		}
		if r.RecordID == "" {
			r.RecordID = ev.RecordID()
		}
		return r
	})
}

// HandleEndOfCall performs the terminal merge for an end-of-call report and
// triggers the asynchronous CRM write-back when the record carries a CRM
// back-reference.
func (s *Service) HandleEndOfCall(ev voiceai.WebhookEvent) {
	callID := ev.CallID()
	if callID == "" {
		s.log.Debug("end-of-call-report without call id ignored")
		return
	}

	sd := ev.Message.Analysis.StructuredData
	if sd.Outcome == "" {
		sd.Outcome = outcome.CodeUnknown
	}
	if sd.InterestLevel == "" {
		sd.InterestLevel = "none"
	}

	duration := durationBetween(ev.Message.StartedAt, ev.Message.EndedAt)
	if duration == 0 {
		duration = int(ev.Message.DurationSeconds)
	}

	endedAt, ok := parseTime(ev.Message.EndedAt)
	if !ok {
		endedAt = s.clock().UTC()
	}

	rec := s.store.Merge(callID, func(r Record) Record {
		r.Status = StatusEnded
		r.Outcome = sd.Outcome
		r.InterestLevel = sd.InterestLevel
		r.MainObjection = sd.MainObjection
		r.CustomerBackground = sd.CustomerBackground
		r.Summary = ev.Message.Analysis.Summary
		r.DurationSeconds = duration
		r.WhatsappSent = sd.WhatsappSent
		r.HasBDIIssue = sd.HasBDIIssue
		r.EndedAt = &endedAt
		if r.RecordID == "" {
			r.RecordID = ev.RecordID()
		}
		return r
	})

	s.log.Info("call ended", "call_id", callID, "outcome", rec.Outcome, "duration_s", rec.DurationSeconds)

	if rec.RecordID == "" {
		return
	}
	s.spawn(func() { s.writeBack(rec) })
}

// writeBack patches the CRM record with the mapped outcome. Errors are
// logged and swallowed: no caller waits on this path and the event source
// cannot be made to retry usefully.
func (s *Service) writeBack(rec Record) {
	res := outcome.Map(outcome.Input{
		Code:            rec.Outcome,
		InterestLevel:   rec.InterestLevel,
		MainObjection:   rec.MainObjection,
		HasBDIIssue:     rec.HasBDIIssue,
		WhatsappSent:    rec.WhatsappSent,
		Summary:         rec.Summary,
		DurationSeconds: rec.DurationSeconds,
	}, s.clock())

	ctx, cancel := context.WithTimeout(context.Background(), s.writeBackTimeout)
	defer cancel()

	fields := leads.UpdateFields(res.CRMStatus, res.CRMStatusDetail, res.Note)
	if err := s.crm.UpdateLead(ctx, rec.RecordID, fields); err != nil {
		s.log.Error("crm write-back failed", "call_id", rec.CallID, "record_id", rec.RecordID, "err", err)
		return
	}
	s.log.Info("crm write-back done", "call_id", rec.CallID, "record_id", rec.RecordID)
}

// Overview is the call listing with summary counts.
type Overview struct {
	Total     int            `json:"total"`
	ByStatus  map[Status]int `json:"byStatus"`
	ByOutcome map[string]int `json:"byOutcome"`
	Records   []Record       `json:"records"`
}

// List returns all held records, newest first, with aggregate counts.
func (s *Service) List() Overview {
	records := s.store.List()
	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})

	out := Overview{
		Total:     len(records),
		ByStatus:  map[Status]int{},
		ByOutcome: map[string]int{},
		Records:   records,
	}
	for _, r := range records {
		out.ByStatus[r.Status]++
		if r.Outcome != "" {
			out.ByOutcome[r.Outcome]++
		}
	}
	return out
}

func durationBetween(startedAt, endedAt string) int {
	start, okStart := parseTime(startedAt)
	end, okEnd := parseTime(endedAt)
	if !okStart || !okEnd || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Seconds())
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Providers occasionally emit fractional seconds without a zone.
		t, err = time.Parse("2006-01-02T15:04:05.999999999", s)
		if err != nil {
			return time.Time{}, false
		}
	}
	return t, true
}
