// Package outcome maps a call's terminal outcome onto CRM fields and builds
// the Hebrew call note written back to the record.
package outcome

import (
	"fmt"
	"strings"
	"time"
)

// Outcome codes produced by the voice assistant's post-call analysis.
// The set is fixed by the assistant's structured-output schema; an
// unrecognized code still yields a usable note (fail-open, never dropped).
const (
	CodeEnrolled      = "ENROLLED"
	CodeInterested    = "INTERESTED"
	CodeCallback      = "CALLBACK"
	CodeNotInterested = "NOT_INTERESTED"
	CodeNoAnswer      = "NO_ANSWER"
	CodeVoicemail     = "VOICEMAIL"
	CodeWrongNumber   = "WRONG_NUMBER"
	CodeDoNotCall     = "DO_NOT_CALL"

	// CodeUnknown is the sentinel attached when the analysis payload carries
	// no outcome at all.
	CodeUnknown = "UNKNOWN"
)

type crmPair struct {
	status string
	detail string
}

// statusTable is the fixed outcome-to-CRM mapping. Values are CRM display
// strings in the record's locale.
var statusTable = map[string]crmPair{
	CodeEnrolled:      {status: "נרשם", detail: "נרשם בשיחת AI"},
	CodeInterested:    {status: "מעוניין", detail: "מעוניין - ממתין להמשך טיפול"},
	CodeCallback:      {status: "בטיפול", detail: "ביקש שיחה חוזרת"},
	CodeNotInterested: {status: "לא מעוניין", detail: "לא מעוניין - שיחת AI"},
	CodeNoAnswer:      {status: "אין מענה", detail: "אין מענה - שיחת AI"},
	CodeVoicemail:     {status: "אין מענה", detail: "הושאר תא קולי"},
	CodeWrongNumber:   {status: "לא רלוונטי", detail: "מספר שגוי"},
	CodeDoNotCall:     {status: "הסרה", detail: "ביקש לא להתקשר"},
}

// Input is everything the mapper needs about one concluded call.
type Input struct {
	Code            string
	InterestLevel   string
	MainObjection   string
	HasBDIIssue     bool
	WhatsappSent    bool
	Summary         string
	DurationSeconds int
}

// Result is the CRM-facing projection of a call outcome. CRMStatus is empty
// for unrecognized codes (no status change); Note is always present.
type Result struct {
	CRMStatus       string
	CRMStatusDetail string
	Note            string
}

// Map translates a structured call outcome into CRM status fields and a
// multi-line note. Deterministic and pure except for reading the wall-clock
// date for the note header via now.
func Map(in Input, now time.Time) Result {
	res := Result{}
	if pair, ok := statusTable[in.Code]; ok {
		res.CRMStatus = pair.status
		res.CRMStatusDetail = pair.detail
	} else {
		// Fail open: unrecognized codes change no status but still surface
		// the raw code on the record.
		res.CRMStatusDetail = "שיחה הסתיימה - " + in.Code
	}
	res.Note = buildNote(in, now)
	return res
}

// buildNote renders the note with a fixed line order. Optional lines are
// included only when their source value is present; omitted lines leave no
// blank-line artifacts.
func buildNote(in Input, now time.Time) string {
	// "none" is the ingestion sentinel for an absent interest level; render
	// both it and a bare empty value as the explicit unknown marker.
	interest := in.InterestLevel
	if interest == "" || interest == "none" {
		interest = "לא ידועה"
	}

	lines := []string{
		"סיכום שיחת AI - " + now.Format("02.01.2006"),
		"משך שיחה: " + FormatDuration(in.DurationSeconds),
		"תוצאה: " + in.Code,
		"רמת עניין: " + interest,
	}
	if in.MainObjection != "" {
		lines = append(lines, "התנגדות עיקרית: "+in.MainObjection)
	}
	if in.HasBDIIssue {
		lines = append(lines, "שים לב: ללקוח בעיית BDI")
	}
	if in.WhatsappSent {
		lines = append(lines, "נשלחה הודעת וואטסאפ ללקוח")
	}
	if in.Summary != "" {
		lines = append(lines, "סיכום: "+in.Summary)
	}
	return strings.Join(lines, "\n")
}

// FormatDuration renders seconds as m:ss with zero-padded seconds.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
