package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/genai"

	"docremedy/internal/model"
)

const systemPrompt = `You are an accessibility remediation assistant for Word documents.
Given a WCAG issue as JSON, respond with exactly one JSON object and nothing else:
{"suggested_text": "...", "confidence": 0.0, "fix_type": "...", "old_value": "...", "new_value": "..."}
fix_type must be one of: color_change, heading_structure_change, heading_level_change,
alt_text_addition, table_header_addition, link_text_change, font_size_change, manual_review.
confidence is between 0 and 1. Do not wrap the object in markdown fences.`

// geminiSuggester asks a Gemini model for a fix and falls back to the rule
// table whenever the model fails or answers with something unusable. The
// service must keep working without network access to the model.
type geminiSuggester struct {
	client   *genai.Client
	model    string
	fallback Suggester
}

// NewGemini creates a Gemini-backed suggester. fallback must not be nil.
func NewGemini(ctx context.Context, apiKey, modelName string, fallback Suggester) (Suggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
		HTTPClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &geminiSuggester{client: client, model: modelName, fallback: fallback}, nil
}

func (g *geminiSuggester) Suggest(ctx context.Context, issue *model.AccessibilityIssue) (*Suggestion, error) {
	payload, err := json.Marshal(issue)
	if err != nil {
		return g.fallback.Suggest(ctx, issue)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text("Suggest a fix for this accessibility issue:\n"+string(payload)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return g.fallback.Suggest(ctx, issue)
	}

	s, err := parseSuggestion(resp.Text())
	if err != nil {
		return g.fallback.Suggest(ctx, issue)
	}

	s.IssueID = issue.ID
	s.ElementXPath = issue.ElementXPath
	snippets, err := BuildSnippets(issue, s)
	if err != nil {
		return g.fallback.Suggest(ctx, issue)
	}
	s.Snippets = snippets
	return s, nil
}

// parseSuggestion decodes the model's JSON answer, tolerating markdown
// fences the prompt forbids but models still emit.
func parseSuggestion(raw string) (*Suggestion, error) {
	cleaned := stripFences(raw)
	var s Suggestion
	if err := json.Unmarshal([]byte(cleaned), &s); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}
	if s.SuggestedText == "" {
		return nil, fmt.Errorf("model response missing suggested_text")
	}
	if !validFixType(s.FixType) {
		return nil, fmt.Errorf("model response has unknown fix_type %q", s.FixType)
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return nil, fmt.Errorf("model response confidence %v out of range", s.Confidence)
	}
	return &s, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func validFixType(t string) bool {
	switch t {
	case FixColorChange, FixHeadingStructure, FixHeadingLevel, FixAltText,
		FixTableHeader, FixLinkText, FixFontSize, FixManualReview:
		return true
	}
	return false
}
