package jsonx

import "testing"

type entry struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

func TestParseOrDefault(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLen int
	}{
		{name: "valid list", raw: `[{"date":"2025-01-01","status":"closed"}]`, wantLen: 1},
		{name: "empty input falls back", raw: "", wantLen: 0},
		{name: "corrupt json falls back", raw: `[{"date":`, wantLen: 0},
		{name: "wrong shape falls back", raw: `{"date":"x"}`, wantLen: 0},
		{name: "empty list stays empty", raw: `[]`, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOrDefault(tt.raw, []entry{})
			if len(got) != tt.wantLen {
				t.Errorf("ParseOrDefault(%q) len = %d, want %d", tt.raw, len(got), tt.wantLen)
			}
		})
	}
}

func TestParseOrDefaultScalar(t *testing.T) {
	if got := ParseOrDefault(`"hello"`, "fallback"); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
	if got := ParseOrDefault("not-json", "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestMustStringRoundTrip(t *testing.T) {
	in := []entry{{Date: "2025-12-31", Status: "open"}}
	raw := MustString(in)
	out := ParseOrDefault(raw, []entry{})
	if len(out) != 1 || out[0] != in[0] {
		t.Errorf("round trip failed: %q -> %+v", raw, out)
	}
}
