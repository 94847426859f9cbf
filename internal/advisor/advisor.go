package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/advisor-kit/agent-advisor/internal/ai"
	"github.com/advisor-kit/agent-advisor/internal/docstore"
	"github.com/advisor-kit/agent-advisor/internal/scoring"
)

// Result modes.
const (
	ModeAgents     = "agents"
	ModeFrameworks = "frameworks"
)

const (
	// useCaseProbeResults is how many use-case templates the probe retrieves.
	useCaseProbeResults = 3
	// useCaseGateScore is the minimum best similarity for switching into
	// agents mode instead of recommending frameworks.
	useCaseGateScore = 0.35

	defaultUseCaseTitle = "Bosch Use Case"
)

// ErrInvalidRequest marks client errors caused by missing required inputs.
var ErrInvalidRequest = errors.New("invalid request")

// Request carries the user's inputs for one recommendation run.
type Request struct {
	AgentType          string   `json:"agent_type"`
	Priorities         []string `json:"priorities,omitempty"`
	UseCase            string   `json:"use_case"`
	ExperienceLevel    string   `json:"experience_level,omitempty"`
	LearningPreference string   `json:"learning_preference,omitempty"`
	ForceFrameworks    bool     `json:"force_frameworks,omitempty"`
}

// Validate reports whether the required inputs are present.
func (r Request) Validate() error {
	if strings.TrimSpace(r.AgentType) == "" {
		return fmt.Errorf("%w: agent_type is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.UseCase) == "" {
		return fmt.Errorf("%w: use_case is required", ErrInvalidRequest)
	}
	return nil
}

// AgentRecommendation is one matched use-case template.
type AgentRecommendation struct {
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	Tags         []string `json:"tags,omitempty"`
	Score        float64  `json:"score"`
	MatchPercent int      `json:"match_percent"`
	Similarity   float64  `json:"similarity"`
	BlendScore   float64  `json:"blend_score"`
}

// FrameworkRecommendation is one ranked framework with its retrieval context
// and the enrichment prose merged in by name.
type FrameworkRecommendation struct {
	Framework    string   `json:"framework"`
	Score        float64  `json:"score"`
	MatchPercent int      `json:"match_percent"`
	URL          string   `json:"url,omitempty"`
	Snippets     []string `json:"snippets,omitempty"`
	ai.FrameworkTexts
}

// Result is the pipeline output. Exactly one of the recommendation lists is
// populated, selected by Mode.
type Result struct {
	Mode                     string                    `json:"mode"`
	AgentRecommendations     []AgentRecommendation     `json:"agent_recommendations"`
	FrameworkRecommendations []FrameworkRecommendation `json:"framework_recommendations"`
	Error                    string                    `json:"error,omitempty"`
}

// EnsureShape normalizes a possibly partial result: unknown modes default to
// frameworks and nil recommendation lists become empty ones.
func EnsureShape(r Result) Result {
	if r.Mode != ModeAgents && r.Mode != ModeFrameworks {
		r.Mode = ModeFrameworks
	}
	if r.AgentRecommendations == nil {
		r.AgentRecommendations = []AgentRecommendation{}
	}
	if r.FrameworkRecommendations == nil {
		r.FrameworkRecommendations = []FrameworkRecommendation{}
	}
	return r
}

// FallbackResult is the best-effort payload returned to the user when the
// pipeline fails on an external collaborator.
func FallbackResult(err error) Result {
	r := EnsureShape(Result{Mode: ModeFrameworks})
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Advisor runs the recommendation pipeline: use-case probe first, framework
// ranking with retrieval refinement and LLM enrichment otherwise.
type Advisor struct {
	catalog  *scoring.Catalog
	store    docstore.Store
	enricher ai.Enricher
	logger   *zap.Logger
}

// New creates an Advisor. A nil catalog falls back to the built-in one and a
// nil logger to a no-op logger; the enricher may be nil to skip enrichment.
func New(catalog *scoring.Catalog, store docstore.Store, enricher ai.Enricher, logger *zap.Logger) *Advisor {
	if catalog == nil {
		catalog = scoring.DefaultCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Advisor{
		catalog:  catalog,
		store:    store,
		enricher: enricher,
		logger:   logger,
	}
}

// Recommend runs the full pipeline for one request. Missing required inputs
// yield an error wrapping ErrInvalidRequest; external collaborator failures
// propagate to the caller.
func (a *Advisor) Recommend(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	query := buildQuery(req)

	if !req.ForceFrameworks {
		recs, matched, err := a.probeUseCases(ctx, req, query)
		if err != nil {
			return Result{}, err
		}
		if matched {
			return EnsureShape(Result{Mode: ModeAgents, AgentRecommendations: recs}), nil
		}
	}

	top, _, err := a.refine(ctx, req, query)
	if err != nil {
		return Result{}, err
	}

	recs, err := a.enrichFrameworks(ctx, req, top)
	if err != nil {
		return Result{}, err
	}

	return EnsureShape(Result{Mode: ModeFrameworks, FrameworkRecommendations: recs}), nil
}

// probeUseCases searches the use-case collection and, when the best match
// clears the similarity gate, ranks the retrieved templates.
func (a *Advisor) probeUseCases(ctx context.Context, req Request, query string) ([]AgentRecommendation, bool, error) {
	docs, err := a.store.SearchUseCases(ctx, query, useCaseProbeResults)
	if err != nil {
		return nil, false, fmt.Errorf("search use cases: %w", err)
	}
	if len(docs) == 0 {
		return nil, false, nil
	}

	best := 0.0
	for _, doc := range docs {
		if s := doc.Score(); s > best {
			best = s
		}
	}
	if best < useCaseGateScore {
		a.logger.Debug("use case probe below gate", zap.Float64("best_score", best))
		return nil, false, nil
	}

	candidates := make([]scoring.UseCaseCandidate, 0, len(docs))
	for _, doc := range docs {
		meta, err := docstore.DecodeUseCaseMeta(doc.Metadata)
		if err != nil {
			a.logger.Warn("skipping use case with bad metadata", zap.Error(err))
			continue
		}
		candidates = append(candidates, scoring.UseCaseCandidate{
			Title:              meta.Title,
			Summary:            doc.Text,
			Tags:               meta.Tags,
			ExperienceLevel:    meta.ExperienceLevel,
			LearningPreference: meta.LearningPreference,
			Maturity:           meta.Maturity,
			Similarity:         doc.Score(),
		})
	}
	if len(candidates) == 0 {
		return nil, false, nil
	}

	ranked := scoring.RankUseCases(a.catalog, req.AgentType, req.Priorities, req.ExperienceLevel, req.LearningPreference, candidates, useCaseProbeResults)

	recs := make([]AgentRecommendation, 0, len(ranked))
	for _, r := range ranked {
		c := r.Candidate
		blend := scoring.BlendScore(
			c.Similarity,
			strings.EqualFold(c.ExperienceLevel, req.ExperienceLevel),
			strings.EqualFold(c.LearningPreference, req.LearningPreference),
			scoring.TagOverlap(req.Priorities, c.Tags),
		)

		title := strings.TrimSpace(c.Title)
		if title == "" {
			title = defaultUseCaseTitle
		}

		recs = append(recs, AgentRecommendation{
			Title:        title,
			Summary:      c.Summary,
			Tags:         c.Tags,
			Score:        r.Score,
			MatchPercent: r.MatchPercent,
			Similarity:   c.Similarity,
			BlendScore:   blend,
		})
	}

	return recs, true, nil
}

// enrichFrameworks asks the LLM for prose about the top frameworks and merges
// the texts back strictly by name. Ranking and percentages stay untouched.
func (a *Advisor) enrichFrameworks(ctx context.Context, req Request, top []frameworkCandidate) ([]FrameworkRecommendation, error) {
	texts := map[string]ai.FrameworkTexts{}
	if a.enricher != nil && len(top) > 0 {
		contexts := make([]ai.FrameworkContext, 0, len(top))
		for _, fw := range top {
			contexts = append(contexts, ai.FrameworkContext{
				Framework:          fw.Name,
				Snippets:           fw.Snippets,
				URL:                fw.URL,
				Priorities:         req.Priorities,
				AgentType:          req.AgentType,
				ExperienceLevel:    req.ExperienceLevel,
				LearningPreference: req.LearningPreference,
			})
		}

		var err error
		texts, err = a.enricher.Enrich(ctx, ai.EnrichmentPayload{
			UseCaseText: req.UseCase,
			Frameworks:  contexts,
		})
		if err != nil {
			return nil, fmt.Errorf("enrich frameworks: %w", err)
		}
	}

	recs := make([]FrameworkRecommendation, 0, len(top))
	for _, fw := range top {
		rec := FrameworkRecommendation{
			Framework:    fw.Name,
			Score:        fw.Score,
			MatchPercent: fw.MatchPercent,
			URL:          fw.URL,
			Snippets:     fw.Snippets,
		}
		if t, ok := texts[fw.Name]; ok {
			rec.FrameworkTexts = t
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

// buildQuery composes the retrieval query from the request inputs.
func buildQuery(req Request) string {
	priorities := "keine"
	if len(req.Priorities) > 0 {
		priorities = strings.Join(req.Priorities, ", ")
	}

	experience := req.ExperienceLevel
	if strings.TrimSpace(experience) == "" {
		experience = "unknown"
	}

	learning := req.LearningPreference
	if strings.TrimSpace(learning) == "" {
		learning = "unknown"
	}

	return fmt.Sprintf(
		"Use Case: %s\nAgententyp: %s\nPrioritäten: %s\nExperience Level: %s\nLearning Preference: %s",
		req.UseCase, req.AgentType, priorities, experience, learning,
	)
}
