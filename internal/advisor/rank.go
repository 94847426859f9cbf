package advisor

import (
	"context"
	"fmt"

	"github.com/advisor-kit/agent-advisor/internal/scoring"
)

// Ranking strategies for the full framework ranking.
const (
	StrategyCapability = "capability"
	StrategyFactsheet  = "factsheet"
)

// RankCapability returns the full capability-matrix framework ranking for the
// request. No retrieval or enrichment happens, so partial requests are fine.
func (a *Advisor) RankCapability(req Request) []scoring.ScoredCandidate {
	return scoring.ScoreFrameworks(a.catalog, req.AgentType, req.Priorities, req.UseCase, req.ExperienceLevel)
}

// RankFactsheets ranks the frameworks by their stored factsheet dimension
// scores weighted with the request's priorities and multipliers.
func (a *Advisor) RankFactsheets(ctx context.Context, req Request) ([]scoring.RankedFactsheet, error) {
	stored, err := a.store.ListFactsheets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list factsheets: %w", err)
	}

	facts := make([]scoring.Factsheet, 0, len(stored))
	for _, fs := range stored {
		facts = append(facts, scoring.Factsheet{
			Framework: fs.Framework,
			Dims:      fs.Dims,
			Text:      fs.Text,
			URL:       fs.URL,
		})
	}

	return scoring.RankFactsheets(a.catalog, req.AgentType, req.Priorities, req.ExperienceLevel, facts), nil
}
