package scoring

import (
	"math"
	"sort"
)

// baselineScore keeps frameworks with no matching weights away from a strict
// zero so normalization stays meaningful.
const baselineScore = 0.05

// ScoredCandidate is one framework with its raw and normalized scores for the
// current request batch.
type ScoredCandidate struct {
	Name         string  `json:"framework"`
	RawScore     float64 `json:"raw_score"`
	Score        float64 `json:"score"`
	MatchPercent int     `json:"match_percent"`
}

// ScoreFrameworks ranks every framework in the catalog against the request
// signals: the agent type bucket, the derived flags, the skill level (only
// beginner and expert carry a weight vector) and each de-duplicated priority.
// The result is sorted by score descending. It never fails: unknown agent
// types, priorities and skill levels degrade to neutral behavior, and
// frameworks without a capability vector are excluded.
func ScoreFrameworks(cat *Catalog, agentType string, priorities []string, useCaseText string, skillLevel string) []ScoredCandidate {
	bucket := MapAgentTypeToBucket(agentType)
	flags := DeriveFlags(useCaseText, priorities, bucket)

	active := make([]WeightVector, 0, 4+len(priorities))
	if w, ok := cat.Weight(signalAgentType + bucket); ok {
		active = append(active, w)
	}
	if flags.RAGRequired {
		if w, ok := cat.Weight(signalDerived + "rag_required"); ok {
			active = append(active, w)
		}
	}
	if flags.AutomationHigh {
		if w, ok := cat.Weight(signalDerived + "automation_high"); ok {
			active = append(active, w)
		}
	}
	if flags.MultiAgent {
		if w, ok := cat.Weight(signalDerived + "multi_agent"); ok {
			active = append(active, w)
		}
	}

	switch skillLevel {
	case "beginner", "expert":
		if w, ok := cat.Weight(signalSkill + skillLevel); ok {
			active = append(active, w)
		}
	}

	seen := make(map[string]bool, len(priorities))
	for _, p := range priorities {
		if seen[p] {
			continue
		}
		seen[p] = true
		key, ok := priorityWeightKeys[p]
		if !ok {
			continue
		}
		if w, ok := cat.Weight(key); ok {
			active = append(active, w)
		}
	}

	candidates := make([]ScoredCandidate, 0, len(cat.Frameworks()))
	mx := 0.0
	for _, name := range cat.Frameworks() {
		cap, ok := cat.Capability(name)
		if !ok {
			continue
		}
		raw := baselineScore
		for _, w := range active {
			raw += dot(cap, w)
		}
		if raw > mx {
			mx = raw
		}
		candidates = append(candidates, ScoredCandidate{Name: name, RawScore: raw})
	}

	if mx <= 0 {
		mx = 1.0
	}

	for i := range candidates {
		score := clamp01(candidates[i].RawScore / mx)
		candidates[i].Score = score
		candidates[i].MatchPercent = MatchPercent(score)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}

// MatchPercent converts a normalized score into an integer percentage,
// clamped to [0,100].
func MatchPercent(score float64) int {
	pct := int(math.Round(score * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func dot(cap CapabilityVector, w WeightVector) float64 {
	total := 0.0
	for axis, weight := range w {
		total += cap[axis] * weight
	}
	return total
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
