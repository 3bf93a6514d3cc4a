package voiceai

import (
	"strings"

	"callbridge/internal/leads"
)

// AssistantOverrides is the per-call override bag sent to the provider.
//
// Deliberately narrow: the assistant's system prompt carries externally
// managed conversational policy and is NOT owned by this service, so no
// model or prompt field exists here. Only the opening line and supplementary
// variables may differ per call.
type AssistantOverrides struct {
	FirstMessage   string            `json:"firstMessage,omitempty"`
	VariableValues map[string]string `json:"variableValues,omitempty"`
}

// Course hints, in the customer's spoken language.
const (
	hintBookkeeping = "הליד התעניין בקורס הנהלת חשבונאות"
	hintQA          = "הליד התעניין בקורס בדיקות תוכנה QA"
	hintFullStack   = "הליד התעניין בקורס פיתוח Full Stack"
)

// BuildOverrides derives the per-call assistant context from a lead.
// Pure function of its input; no I/O.
func BuildOverrides(lead leads.Lead) AssistantOverrides {
	firstName := FirstName(lead.Name)
	hint := CourseHint(lead.Campaign, lead.Company)

	greeting := "שלום, מדברת מיה מטעם המכללה. מתאים לך לדבר כמה דקות?"
	if firstName != "" {
		greeting = "שלום " + firstName + ", מדברת מיה מטעם המכללה. מתאים לך לדבר כמה דקות?"
	}

	return AssistantOverrides{
		FirstMessage: greeting,
		VariableValues: map[string]string{
			"firstName":  firstName,
			"fullName":   lead.Name,
			"courseHint": hint,
			"campaign":   lead.Campaign,
			"adset":      lead.Adset,
			"city":       lead.City,
			"company":    lead.Company,
			"source":     lead.Source,
		},
	}
}

// FirstName is the first whitespace-delimited token of a full name.
func FirstName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// CourseHint classifies a lead into at most one course-interest category by
// substring search over the campaign and company text. Priority is fixed:
// bookkeeping, then QA, then full stack.
func CourseHint(campaign, company string) string {
	text := strings.ToLower(campaign + " " + company)
	switch {
	case containsAny(text, "חשבונ", "bookkeeping", "finance"):
		return hintBookkeeping
	case containsAny(text, "qa", "בדיקות"):
		return hintQA
	case containsAny(text, "full stack", "fullstack", "פיתוח"):
		return hintFullStack
	}
	return ""
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
