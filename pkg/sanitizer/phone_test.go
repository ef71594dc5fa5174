package sanitizer

import "testing"

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "hyphenated", input: "081-234-5678", want: "0812345678"},
		{name: "plain", input: "0812345678", want: "0812345678"},
		{name: "leading and trailing space", input: " 081-234-5678 ", want: "0812345678"},
		{name: "empty", input: "", want: ""},
		{name: "only hyphens", input: "---", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanPhone(tt.input); got != tt.want {
				t.Errorf("CleanPhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSamePhone(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "hyphen insensitive match", a: "081-234-5678", b: "0812345678", want: true},
		{name: "both hyphenated", a: "081-234-5678", b: "0812-345-678", want: true},
		{name: "different numbers", a: "0812345678", b: "0899999999", want: false},
		{name: "empty never matches", a: "", b: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SamePhone(tt.a, tt.b); got != tt.want {
				t.Errorf("SamePhone(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTrimAndNormalize(t *testing.T) {
	if got := TrimAndNormalize("  a   b \t c "); got != "a b c" {
		t.Errorf("got %q", got)
	}
}

func TestSplitCSV(t *testing.T) {
	got := SplitCSV(" 10:00, 11:30 ,,13:00 ")
	want := []string{"10:00", "11:30", "13:00"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
