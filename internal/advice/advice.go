// Package advice generates nail-care suggestions with Gemini, falling back
// to canned guidance whenever the model is unconfigured or unreachable. The
// action never fails: the customer always gets an answer.
package advice

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"nailbook/pkg/client"
	"nailbook/pkg/config"
	apperrors "nailbook/pkg/errors"
)

type Request struct {
	Question       string
	NailCondition  string
	PreferredStyle string
}

type Result struct {
	Advice string
	IsAI   bool
}

type Service interface {
	Advise(ctx context.Context, req *Request) (*Result, error)
}

type adviceService struct {
	http *client.HttpClient
	cfg  *config.Config
}

func New(cfg *config.Config) Service {
	var httpClient *client.HttpClient
	if cfg.GeminiAPIKey != "" {
		httpClient = client.NewHttpClient(cfg.GeminiBaseURL, nil)
	}
	return &adviceService{http: httpClient, cfg: cfg}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (s *adviceService) Advise(ctx context.Context, req *Request) (*Result, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, apperrors.MissingField("question")
	}

	if s.http == nil {
		return &Result{Advice: cannedAdvice(req), IsAI: false}, nil
	}

	answer, err := s.generate(ctx, req)
	if err != nil {
		s.cfg.Log.Warn("Gemini request failed, serving canned advice", "error", err)
		return &Result{Advice: cannedAdvice(req), IsAI: false}, nil
	}
	return &Result{Advice: answer, IsAI: true}, nil
}

func (s *adviceService) generate(ctx context.Context, req *Request) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: buildPrompt(req)}}}},
	}

	path := "/v1beta/models/gemini-pro:generateContent?key=" + url.QueryEscape(s.cfg.GeminiAPIKey)
	resp, err := s.http.POST(ctx, path, body)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", fmt.Errorf("gemini returned %d: %s", resp.StatusCode, resp.Body)
	}

	var out geminiResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	answer := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if answer == "" {
		return "", fmt.Errorf("gemini returned an empty answer")
	}
	return answer, nil
}

func buildPrompt(req *Request) string {
	var b strings.Builder
	b.WriteString("You are a professional nail technician. Answer the customer briefly and warmly.\n")
	fmt.Fprintf(&b, "Question: %s\n", req.Question)
	if req.NailCondition != "" {
		fmt.Fprintf(&b, "Nail condition: %s\n", req.NailCondition)
	}
	if req.PreferredStyle != "" {
		fmt.Fprintf(&b, "Preferred style: %s\n", req.PreferredStyle)
	}
	return b.String()
}

// cannedAdvice is the offline answer. It acknowledges whatever context the
// customer gave so the fallback still reads personal.
func cannedAdvice(req *Request) string {
	var b strings.Builder
	b.WriteString("Thanks for your question! ")
	if req.NailCondition != "" {
		fmt.Fprintf(&b, "For %s nails, keep them hydrated with cuticle oil daily and avoid harsh removers. ", strings.ToLower(req.NailCondition))
	} else {
		b.WriteString("Keep your nails hydrated with cuticle oil and give them a rest week between gel sets. ")
	}
	if req.PreferredStyle != "" {
		fmt.Fprintf(&b, "A %s look works best on a well-prepped base, so book a manicure first. ", strings.ToLower(req.PreferredStyle))
	}
	b.WriteString("For advice specific to you, our technicians are happy to take a look at your next visit.")
	return b.String()
}
