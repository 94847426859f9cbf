package advisor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/advisor-kit/agent-advisor/internal/ai"
	"github.com/advisor-kit/agent-advisor/internal/docstore"
)

type snippetCall struct {
	framework string
	n         int
}

type fakeStore struct {
	useCaseDocs  []docstore.Document
	useCaseErr   error
	snippetDocs  []docstore.Document
	snippetErr   error
	factsheets   map[string]*docstore.Factsheet
	factsheetErr error
	listed       []docstore.Factsheet
	listErr      error

	useCaseQueries []string
	snippetCalls   []snippetCall
}

func (f *fakeStore) SearchUseCases(_ context.Context, query string, _ int) ([]docstore.Document, error) {
	f.useCaseQueries = append(f.useCaseQueries, query)
	return f.useCaseDocs, f.useCaseErr
}

func (f *fakeStore) SearchFrameworkDocs(_ context.Context, _ string, filters docstore.Filters, n int) ([]docstore.Document, error) {
	f.snippetCalls = append(f.snippetCalls, snippetCall{framework: filters.Framework, n: n})
	return f.snippetDocs, f.snippetErr
}

func (f *fakeStore) GetFactsheet(_ context.Context, framework string) (*docstore.Factsheet, error) {
	if f.factsheetErr != nil {
		return nil, f.factsheetErr
	}
	return f.factsheets[framework], nil
}

func (f *fakeStore) ListFactsheets(_ context.Context) ([]docstore.Factsheet, error) {
	return f.listed, f.listErr
}

// echoEnricher produces deterministic texts for every framework it is asked
// about, so tests do not depend on which frameworks rank on top.
type echoEnricher struct {
	err      error
	payloads []ai.EnrichmentPayload
}

func (e *echoEnricher) Enrich(_ context.Context, payload ai.EnrichmentPayload) (map[string]ai.FrameworkTexts, error) {
	e.payloads = append(e.payloads, payload)
	if e.err != nil {
		return nil, e.err
	}
	texts := make(map[string]ai.FrameworkTexts, len(payload.Frameworks))
	for _, fw := range payload.Frameworks {
		texts[fw.Framework] = ai.FrameworkTexts{Description: "about " + fw.Framework}
	}
	return texts, nil
}

func useCaseDoc(title, text string, distance float64) docstore.Document {
	d := distance
	return docstore.Document{
		Text: text,
		Metadata: map[string]any{
			"title":               title,
			"tags":                "rag,tools",
			"experience_level":    "beginner",
			"learning_preference": "simple",
			"maturity":            "production",
		},
		Distance: &d,
	}
}

func snippetDoc(text string, distance float64) docstore.Document {
	d := distance
	return docstore.Document{Text: text, Distance: &d}
}

func validRequest() Request {
	return Request{
		AgentType:          "Chatbot",
		Priorities:         []string{"rag", "tools"},
		UseCase:            "Interner FAQ-Chatbot mit Wissensdatenbank",
		ExperienceLevel:    "beginner",
		LearningPreference: "simple",
	}
}

func TestRecommendRequiresAgentTypeAndUseCase(t *testing.T) {
	a := New(nil, &fakeStore{}, nil, zap.NewNop())

	for _, req := range []Request{
		{UseCase: "something"},
		{AgentType: "Chatbot"},
		{AgentType: "   ", UseCase: "   "},
	} {
		_, err := a.Recommend(context.Background(), req)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest for %+v, got %v", req, err)
		}
	}
}

func TestRecommendAgentsModeWhenUseCasesMatch(t *testing.T) {
	store := &fakeStore{
		useCaseDocs: []docstore.Document{
			useCaseDoc("FAQ Bot", "Beantwortet interne FAQs", 0.5),
			useCaseDoc("Doc Search", "Durchsucht Dokumente", 1.0),
			useCaseDoc("", "Ohne Titel", 1.5),
		},
	}
	a := New(nil, store, &echoEnricher{}, zap.NewNop())

	result, err := a.Recommend(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Mode != ModeAgents {
		t.Fatalf("expected agents mode, got %q", result.Mode)
	}

	if len(result.AgentRecommendations) != 3 {
		t.Fatalf("expected 3 agent recommendations, got %d", len(result.AgentRecommendations))
	}

	if result.FrameworkRecommendations == nil || len(result.FrameworkRecommendations) != 0 {
		t.Fatalf("expected empty framework list, got %+v", result.FrameworkRecommendations)
	}

	if result.AgentRecommendations[0].MatchPercent != 100 {
		t.Fatalf("expected top recommendation at 100 percent, got %d", result.AgentRecommendations[0].MatchPercent)
	}

	for _, rec := range result.AgentRecommendations {
		if rec.Title == "" {
			t.Fatal("expected every recommendation to carry a title")
		}
		if rec.Score < 0 || rec.Score > 1 {
			t.Fatalf("score out of range: %v", rec.Score)
		}
		if rec.BlendScore < 0 || rec.BlendScore > 1 {
			t.Fatalf("blend score out of range: %v", rec.BlendScore)
		}
	}

	// The document without a title falls back to the default.
	found := false
	for _, rec := range result.AgentRecommendations {
		if rec.Title == defaultUseCaseTitle {
			found = true
		}
	}
	if !found {
		t.Fatal("expected default title for the untitled use case")
	}

	if len(store.snippetCalls) != 0 {
		t.Fatalf("expected no framework retrieval in agents mode, got %d calls", len(store.snippetCalls))
	}
}

func TestRecommendFrameworksWhenGateNotCleared(t *testing.T) {
	store := &fakeStore{
		useCaseDocs: []docstore.Document{useCaseDoc("Weak Match", "kaum relevant", 10.0)},
		snippetDocs: []docstore.Document{snippetDoc("framework doc snippet", 0.4)},
	}
	enricher := &echoEnricher{}
	a := New(nil, store, enricher, zap.NewNop())

	result, err := a.Recommend(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Mode != ModeFrameworks {
		t.Fatalf("expected frameworks mode, got %q", result.Mode)
	}

	if len(result.FrameworkRecommendations) != topFrameworks {
		t.Fatalf("expected %d framework recommendations, got %d", topFrameworks, len(result.FrameworkRecommendations))
	}

	if len(result.AgentRecommendations) != 0 {
		t.Fatalf("expected empty agent list, got %d", len(result.AgentRecommendations))
	}

	for _, rec := range result.FrameworkRecommendations {
		if rec.Description != "about "+rec.Framework {
			t.Fatalf("expected enrichment text merged by name, got %q for %q", rec.Description, rec.Framework)
		}
	}
}

func TestRecommendForceFrameworksSkipsProbe(t *testing.T) {
	store := &fakeStore{
		useCaseDocs: []docstore.Document{useCaseDoc("Strong Match", "passt perfekt", 0.1)},
		snippetDocs: []docstore.Document{snippetDoc("snippet", 0.4)},
	}
	a := New(nil, store, &echoEnricher{}, zap.NewNop())

	req := validRequest()
	req.ForceFrameworks = true

	result, err := a.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Mode != ModeFrameworks {
		t.Fatalf("expected frameworks mode, got %q", result.Mode)
	}

	if len(store.useCaseQueries) != 0 {
		t.Fatalf("expected use case probe to be skipped, got %d queries", len(store.useCaseQueries))
	}
}

func TestRecommendEnrichmentNeverAltersRanking(t *testing.T) {
	store := &fakeStore{
		snippetDocs: []docstore.Document{snippetDoc("snippet", 0.4)},
	}
	a := New(nil, store, &echoEnricher{}, zap.NewNop())

	req := validRequest()
	req.ForceFrameworks = true

	result, err := a.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	ranked := a.RankCapability(req)
	for i, rec := range result.FrameworkRecommendations {
		if rec.Framework != ranked[i].Name {
			t.Fatalf("position %d: expected %q, got %q", i, ranked[i].Name, rec.Framework)
		}
		if rec.Score != ranked[i].Score || rec.MatchPercent != ranked[i].MatchPercent {
			t.Fatalf("scores for %q diverge from deterministic ranking", rec.Framework)
		}
	}
}

func TestRecommendPropagatesStoreFailure(t *testing.T) {
	storeErr := errors.New("store down")
	a := New(nil, &fakeStore{useCaseErr: storeErr}, &echoEnricher{}, zap.NewNop())

	_, err := a.Recommend(context.Background(), validRequest())
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestRecommendPropagatesEnricherFailure(t *testing.T) {
	enricherErr := errors.New("llm down")
	store := &fakeStore{snippetDocs: []docstore.Document{snippetDoc("snippet", 0.4)}}
	a := New(nil, store, &echoEnricher{err: enricherErr}, zap.NewNop())

	req := validRequest()
	req.ForceFrameworks = true

	_, err := a.Recommend(context.Background(), req)
	if !errors.Is(err, enricherErr) {
		t.Fatalf("expected enricher error to propagate, got %v", err)
	}
}

func TestRecommendWithoutEnricher(t *testing.T) {
	store := &fakeStore{snippetDocs: []docstore.Document{snippetDoc("snippet", 0.4)}}
	a := New(nil, store, nil, zap.NewNop())

	req := validRequest()
	req.ForceFrameworks = true

	result, err := a.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, rec := range result.FrameworkRecommendations {
		if rec.Description != "" {
			t.Fatalf("expected empty texts without enricher, got %q", rec.Description)
		}
	}
}

func TestEnsureShape(t *testing.T) {
	shaped := EnsureShape(Result{Mode: "bogus"})
	if shaped.Mode != ModeFrameworks {
		t.Fatalf("expected frameworks default, got %q", shaped.Mode)
	}
	if shaped.AgentRecommendations == nil || shaped.FrameworkRecommendations == nil {
		t.Fatal("expected nil lists to be normalized")
	}

	agents := EnsureShape(Result{Mode: ModeAgents})
	if agents.Mode != ModeAgents {
		t.Fatalf("expected agents mode to survive, got %q", agents.Mode)
	}
}

func TestFallbackResult(t *testing.T) {
	result := FallbackResult(errors.New("boom"))
	if result.Mode != ModeFrameworks {
		t.Fatalf("expected frameworks mode, got %q", result.Mode)
	}
	if result.Error != "boom" {
		t.Fatalf("expected error string, got %q", result.Error)
	}
	if len(result.AgentRecommendations) != 0 || len(result.FrameworkRecommendations) != 0 {
		t.Fatal("expected empty recommendation lists")
	}
}

func TestBuildQuery(t *testing.T) {
	req := Request{
		AgentType:  "Chatbot",
		Priorities: []string{"rag", "tools"},
		UseCase:    "FAQ bot",
	}

	expected := fmt.Sprintf(
		"Use Case: %s\nAgententyp: %s\nPrioritäten: %s\nExperience Level: %s\nLearning Preference: %s",
		"FAQ bot", "Chatbot", "rag, tools", "unknown", "unknown",
	)
	if got := buildQuery(req); got != expected {
		t.Fatalf("unexpected query:\n%s", got)
	}

	req.Priorities = nil
	req.ExperienceLevel = "beginner"
	got := buildQuery(req)
	expected = fmt.Sprintf(
		"Use Case: %s\nAgententyp: %s\nPrioritäten: %s\nExperience Level: %s\nLearning Preference: %s",
		"FAQ bot", "Chatbot", "keine", "beginner", "unknown",
	)
	if got != expected {
		t.Fatalf("unexpected query:\n%s", got)
	}
}
