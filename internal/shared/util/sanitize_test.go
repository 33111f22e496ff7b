package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "plan.pdf", want: "plan.pdf"},
		{in: " plan.pdf ", want: "plan.pdf"},
		{in: "a/b.pdf", want: "a_b.pdf"},
		{in: "a\\b.pdf", want: "a_b.pdf"},
		{in: "../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("SanitizeFileName(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SanitizeFileName(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestProposalNamespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"prop-123", "staging/prop-123"},
		{"Prop 123", "staging/prop_123"},
		{"../evil", "staging/___evil"},
		{"", "staging/unscoped"},
		{"  ", "staging/unscoped"},
	}
	for _, tc := range cases {
		if got := ProposalNamespace(tc.in); got != tc.want {
			t.Fatalf("ProposalNamespace(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
