package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  Bus Station  ", want: "Bus Station"},
		{name: "multiple spaces between words", input: "Bus    Station", want: "Bus Station"},
		{name: "tabs and newlines", input: "Bus\t\nStation", want: "Bus Station"},
		{name: "empty string", input: "", want: ""},
		{name: "only whitespace", input: "   \t\n  ", want: ""},
		{name: "preserve special characters", input: " Café & Spa™ ", want: "Café & Spa™"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Head <b>north</b> on <b>Jorissen St</b>", want: "Head north on Jorissen St"},
		{input: `Turn left<div style="font-size:0.9em">Destination will be on the right</div>`, want: "Turn left Destination will be on the right"},
		{input: "plain", want: "plain"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := StripTags(tt.input); got != tt.want {
			t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestReplaceFold(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Walk north", want: "proceed north"},
		{input: "WALK to the WALKway", want: "proceed to the proceedway"},
		{input: "Turn left", want: "Turn left"},
		{input: "wAlK $1", want: "proceed $1"},
	}

	for _, tt := range tests {
		if got := ReplaceFold(tt.input, "walk", "proceed"); got != tt.want {
			t.Errorf("ReplaceFold(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if got := ReplaceFold("abc", "", "x"); got != "abc" {
		t.Errorf("ReplaceFold with empty needle = %q, want %q", got, "abc")
	}
}

func TestNormalizeClientID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "  3f1c-aa_01.b ", want: "3f1c-aa_01.b"},
		{input: "client/../../etc", want: "client....etc"},
		{input: "a b\tc", want: "abc"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := NormalizeClientID(tt.input); got != tt.want {
			t.Errorf("NormalizeClientID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	if got := NormalizeClientID(string(long)); len(got) != maxClientIDLength {
		t.Errorf("NormalizeClientID length = %d, want %d", len(got), maxClientIDLength)
	}
}

func TestNormalizeID(t *testing.T) {
	if got := NormalizeID("  bike-01 "); got != "bike-01" {
		t.Errorf("NormalizeID = %q, want %q", got, "bike-01")
	}
}
