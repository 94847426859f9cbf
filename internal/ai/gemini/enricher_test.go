package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/advisor-kit/agent-advisor/internal/ai"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastSystem string
	lastMsg    string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, message string) (string, error) {
	s.lastSystem = system
	s.lastMsg = message
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func payloadWith(names ...string) ai.EnrichmentPayload {
	payload := ai.EnrichmentPayload{UseCaseText: "document search over wikis"}
	for _, n := range names {
		payload.Frameworks = append(payload.Frameworks, ai.FrameworkContext{
			Framework: n,
			AgentType: "Daten-Agent",
		})
	}
	return payload
}

func TestEnricherParsesTextsByName(t *testing.T) {
	stub := &stubGenerator{response: `{
		"framework_texts": [
			{"framework": "LangChain", "description": "RAG toolkit", "match_reason": "fits document search", "pros": ["ecosystem"], "cons": ["complexity"], "recommendation": "use it"},
			{"framework": "n8n", "description": "workflow tool", "match_reason": "low code", "pros": [], "cons": [], "recommendation": "maybe"}
		]
	}`}
	enricher := NewEnricher(stub, zap.NewNop(), 0)

	texts, err := enricher.Enrich(context.Background(), payloadWith("LangChain", "n8n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(texts) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(texts))
	}

	lc := texts["LangChain"]
	if lc.Description != "RAG toolkit" {
		t.Fatalf("unexpected description: %s", lc.Description)
	}
	if len(lc.Pros) != 1 || lc.Pros[0] != "ecosystem" {
		t.Fatalf("unexpected pros: %v", lc.Pros)
	}

	if stub.lastSystem == "" || !strings.Contains(stub.lastSystem, "framework_texts") {
		t.Fatalf("expected system prompt to be set, got %q", stub.lastSystem)
	}
	if !strings.Contains(stub.lastMsg, "document search over wikis") {
		t.Fatalf("expected payload in message, got %q", stub.lastMsg)
	}
}

func TestEnricherHandlesCodeFences(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"framework_texts\":[{\"framework\":\"CrewAI\",\"description\":\"crews\"}]}\n```"}
	enricher := NewEnricher(stub, zap.NewNop(), 0)

	texts, err := enricher.Enrich(context.Background(), payloadWith("CrewAI"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if texts["CrewAI"].Description != "crews" {
		t.Fatalf("unexpected texts: %+v", texts)
	}
}

func TestEnricherInvalidJSONDegradesToEmpty(t *testing.T) {
	stub := &stubGenerator{response: "Sorry, I cannot answer that."}
	enricher := NewEnricher(stub, zap.NewNop(), 0)

	texts, err := enricher.Enrich(context.Background(), payloadWith("LangChain"))
	if err != nil {
		t.Fatalf("expected defensive parsing, got error: %v", err)
	}
	if len(texts) != 0 {
		t.Fatalf("expected empty map, got %v", texts)
	}
}

func TestEnricherGeneratorErrorPropagates(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exhausted")}
	enricher := NewEnricher(stub, zap.NewNop(), 0)

	if _, err := enricher.Enrich(context.Background(), payloadWith("LangChain")); err == nil {
		t.Fatal("expected generator error to propagate")
	}
}

func TestEnricherEmptyPayloadSkipsModelCall(t *testing.T) {
	stub := &stubGenerator{err: errors.New("must not be called")}
	enricher := NewEnricher(stub, zap.NewNop(), 0)

	texts, err := enricher.Enrich(context.Background(), ai.EnrichmentPayload{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(texts) != 0 {
		t.Fatalf("expected empty map, got %v", texts)
	}
	if stub.lastMsg != "" {
		t.Fatal("expected no model call for empty payload")
	}
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced without language", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"backticks", "`{\"a\":1}`", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extractJSON(tt.input); got != tt.expect {
				t.Fatalf("extractJSON(%q) = %q, expected %q", tt.input, got, tt.expect)
			}
		})
	}
}
