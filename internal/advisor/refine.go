package advisor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/advisor-kit/agent-advisor/internal/docstore"
	"github.com/advisor-kit/agent-advisor/internal/scoring"
)

const (
	maxRefineAttempts       = 2
	maxSnippetsPerFramework = 8
	sufficientMatchPercent  = 60
	topFrameworks           = 3
)

// snippetWidths is the per-attempt widening sequence for the snippet fetch.
var snippetWidths = []int{3, 6}

type refineState int

const (
	stateScored refineState = iota
	stateFetched
	stateSufficient
	stateExhausted
)

func (s refineState) String() string {
	switch s {
	case stateScored:
		return "scored"
	case stateFetched:
		return "fetched"
	case stateSufficient:
		return "sufficient"
	case stateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// frameworkCandidate is one scored framework with its retrieved snippets.
type frameworkCandidate struct {
	scoring.ScoredCandidate
	Snippets []string
	URL      string
}

// refine scores the frameworks and fetches snippets for the top candidates,
// widening the fetch once when the first attempt is not sufficient. The final
// attempt's results are returned regardless.
func (a *Advisor) refine(ctx context.Context, req Request, query string) ([]frameworkCandidate, []scoring.ScoredCandidate, error) {
	var (
		ranked []scoring.ScoredCandidate
		top    []frameworkCandidate
	)

	for attempt := 1; attempt <= maxRefineAttempts; attempt++ {
		state := stateScored
		ranked = scoring.ScoreFrameworks(a.catalog, req.AgentType, req.Priorities, req.UseCase, req.ExperienceLevel)
		if len(ranked) == 0 {
			a.logger.Warn("no frameworks to score")
			return nil, nil, nil
		}

		limit := topFrameworks
		if limit > len(ranked) {
			limit = len(ranked)
		}

		n := snippetWidth(attempt)
		top = make([]frameworkCandidate, 0, limit)
		for _, cand := range ranked[:limit] {
			snippets, err := a.fetchSnippets(ctx, query, cand.Name, n)
			if err != nil {
				return nil, nil, err
			}
			top = append(top, frameworkCandidate{ScoredCandidate: cand, Snippets: snippets})
		}
		state = stateFetched

		if ranked[0].MatchPercent >= sufficientMatchPercent && anySnippets(top) {
			state = stateSufficient
		} else if attempt == maxRefineAttempts {
			state = stateExhausted
		}

		a.logger.Debug("refinement attempt finished",
			zap.Int("attempt", attempt),
			zap.Int("snippets_requested", n),
			zap.Int("best_match_percent", ranked[0].MatchPercent),
			zap.Stringer("state", state),
		)

		if state == stateSufficient || state == stateExhausted {
			break
		}
	}

	for i := range top {
		fs, err := a.store.GetFactsheet(ctx, top[i].Name)
		if err != nil {
			return nil, nil, fmt.Errorf("factsheet for %s: %w", top[i].Name, err)
		}
		if fs != nil {
			top[i].URL = fs.URL
		}
	}

	return top, ranked, nil
}

func (a *Advisor) fetchSnippets(ctx context.Context, query, framework string, n int) ([]string, error) {
	isFactsheet := false
	docs, err := a.store.SearchFrameworkDocs(ctx, query, docstore.Filters{
		Framework:   framework,
		IsFactsheet: &isFactsheet,
	}, n)
	if err != nil {
		return nil, fmt.Errorf("search framework docs for %s: %w", framework, err)
	}

	snippets := make([]string, 0, len(docs))
	for _, doc := range docs {
		if text := strings.TrimSpace(doc.Text); text != "" {
			snippets = append(snippets, text)
		}
	}
	return snippets, nil
}

func snippetWidth(attempt int) int {
	i := attempt - 1
	if i >= len(snippetWidths) {
		i = len(snippetWidths) - 1
	}
	n := snippetWidths[i]
	if n > maxSnippetsPerFramework {
		n = maxSnippetsPerFramework
	}
	return n
}

func anySnippets(top []frameworkCandidate) bool {
	for _, fw := range top {
		if len(fw.Snippets) > 0 {
			return true
		}
	}
	return false
}
