package gallery

import (
	"testing"
)

func TestDecodeImageStripsDataURLPrefix(t *testing.T) {
	// "hi" base64-encoded.
	tests := []struct {
		name  string
		input string
	}{
		{"bare base64", "aGk="},
		{"data url prefix", "data:image/png;base64,aGk="},
		{"whitespace", "  aGk= "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeImage(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != "hi" {
				t.Errorf("expected %q, got %q", "hi", got)
			}
		})
	}
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	if _, err := decodeImage("not base64 at all!!!"); err == nil {
		t.Error("expected decode error")
	}
}

func TestDerivedURLs(t *testing.T) {
	if got := ViewURL("abc123"); got != "https://drive.google.com/uc?id=abc123" {
		t.Errorf("unexpected view url %q", got)
	}
	if got := ThumbURL("abc123"); got != "https://drive.google.com/thumbnail?id=abc123&sz=w400" {
		t.Errorf("unexpected thumb url %q", got)
	}
}
