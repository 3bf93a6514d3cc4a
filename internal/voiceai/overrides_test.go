package voiceai

import (
	"strings"
	"testing"

	"callbridge/internal/leads"
)

func TestFirstName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"דנה כהן", "דנה"},
		{"Dana", "Dana"},
		{"  Dana   Cohen ", "Dana"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := FirstName(tc.in); got != tc.want {
			t.Fatalf("FirstName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCourseHint_PriorityOrder(t *testing.T) {
	cases := []struct {
		campaign string
		company  string
		want     string
	}{
		{"קורס הנהלת חשבונאות", "", hintBookkeeping},
		{"Bookkeeping Basics", "", hintBookkeeping},
		{"QA Automation", "", hintQA},
		{"קורס בדיקות תוכנה", "", hintQA},
		{"Full Stack Intro", "", hintFullStack},
		{"", "FullStack Academy", hintFullStack},
		// Bookkeeping wins over QA when both match.
		{"Finance QA", "", hintBookkeeping},
		{"Summer Sale", "Acme", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		if got := CourseHint(tc.campaign, tc.company); got != tc.want {
			t.Fatalf("CourseHint(%q, %q) = %q, want %q", tc.campaign, tc.company, got, tc.want)
		}
	}
}

func TestBuildOverrides_PersonalizedGreeting(t *testing.T) {
	o := BuildOverrides(leads.Lead{Name: "דנה כהן", Campaign: "Full Stack Intro", City: "חיפה"})
	if !strings.Contains(o.FirstMessage, "דנה") {
		t.Fatalf("greeting not personalized: %q", o.FirstMessage)
	}
	if o.VariableValues["firstName"] != "דנה" {
		t.Fatalf("firstName = %q", o.VariableValues["firstName"])
	}
	if o.VariableValues["courseHint"] != hintFullStack {
		t.Fatalf("courseHint = %q", o.VariableValues["courseHint"])
	}
	if o.VariableValues["city"] != "חיפה" {
		t.Fatalf("city = %q", o.VariableValues["city"])
	}
}

func TestBuildOverrides_GenericGreetingWithoutName(t *testing.T) {
	o := BuildOverrides(leads.Lead{})
	if o.FirstMessage == "" {
		t.Fatalf("greeting must always be present")
	}
	if strings.Contains(o.FirstMessage, "  ") {
		t.Fatalf("generic greeting has a name hole: %q", o.FirstMessage)
	}
	if o.VariableValues["firstName"] != "" {
		t.Fatalf("firstName should be empty, got %q", o.VariableValues["firstName"])
	}
}
