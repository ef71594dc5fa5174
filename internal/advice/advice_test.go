package advice

import (
	"context"
	"strings"
	"testing"

	"nailbook/pkg/config"
	apperrors "nailbook/pkg/errors"
	"nailbook/pkg/logger"
)

func TestAdviseWithoutKeyServesCannedAnswer(t *testing.T) {
	svc := New(&config.Config{Log: logger.Discard()})

	got, err := svc.Advise(context.Background(), &Request{
		Question:      "How do I stop my gel from chipping?",
		NailCondition: "Brittle",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsAI {
		t.Error("canned answer must report isAI=false")
	}
	if got.Advice == "" {
		t.Fatal("expected non-empty advice")
	}
	if !strings.Contains(got.Advice, "brittle") {
		t.Errorf("canned advice should echo the nail condition, got %q", got.Advice)
	}
}

func TestAdviseRequiresQuestion(t *testing.T) {
	svc := New(&config.Config{Log: logger.Discard()})

	if _, err := svc.Advise(context.Background(), &Request{}); !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected missing field error, got %v", err)
	}
}

func TestBuildPromptIncludesContext(t *testing.T) {
	prompt := buildPrompt(&Request{
		Question:       "What design suits short nails?",
		NailCondition:  "healthy",
		PreferredStyle: "minimal",
	})

	for _, want := range []string{"short nails", "healthy", "minimal"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q: %s", want, prompt)
		}
	}
}
