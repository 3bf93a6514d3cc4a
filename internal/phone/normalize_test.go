package phone

import (
	"errors"
	"testing"
)

func TestNormalize_AcceptedShapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+972501234567", "+972501234567"},
		{"972501234567", "+972501234567"},
		{"0501234567", "+972501234567"},
		{"501234567", "+972501234567"},
		{"050-1234567", "+972501234567"},
		{"050 123 4567", "+972501234567"},
		{"(050) 123.4567", "+972501234567"},
		{"0521234567", "+972521234567"},
		// Landline with area trunk prefix.
		{"03-5551234", "+97235551234"},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.in)
		if err != nil {
			t.Fatalf("Normalize(%q) unexpected err: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"0501234567", "+972501234567", "972521234567", "501234567"}
	for _, in := range inputs {
		once, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q) unexpected err: %v", in, err)
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(Normalize(%q)) unexpected err: %v", in, err)
		}
		if once != twice {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_Unparsable(t *testing.T) {
	inputs := []string{"", "1234", "not-a-number", "abc-def", "+1", "99999"}
	for _, in := range inputs {
		// Same signal every time; normalization is total.
		for i := 0; i < 2; i++ {
			if _, err := Normalize(in); !errors.Is(err, ErrNotAPhone) {
				t.Fatalf("Normalize(%q) = %v, want ErrNotAPhone", in, err)
			}
		}
	}
}
