package scoring

import "sort"

// Factsheet is a static per-framework record of raw D1..D6 dimension scores,
// typically loaded from the document store's factsheet metadata.
type Factsheet struct {
	Framework string
	Dims      map[string]int
	Text      string
	URL       string
}

// Breakdown explains how a dimension-scored total was assembled.
type Breakdown struct {
	PerDim               DimVector      `json:"per_dim"`
	RawDims              map[string]int `json:"raw_dim_scores"`
	Weights              DimVector      `json:"weights"`
	AgentTypeMultipliers DimVector      `json:"agent_type_multipliers"`
	SkillMultipliers     DimVector      `json:"skill_multipliers"`
}

// RankedFactsheet is one framework factsheet with its dimension-scored total,
// normalized against the best total in the batch.
type RankedFactsheet struct {
	Framework    string         `json:"framework"`
	Dims         map[string]int `json:"dims"`
	URL          string         `json:"url,omitempty"`
	ScoreTotal   float64        `json:"score_total"`
	MatchPercent int            `json:"match_percent"`
	Score        float64        `json:"score"`
	Breakdown    Breakdown      `json:"score_breakdown"`
}

// AvgWeights averages the per-priority dimension weight rows across all given
// priorities. Unknown priorities contribute a neutral row; no priorities at
// all yield the neutral row itself.
func AvgWeights(cat *Catalog, priorities []string) DimVector {
	if len(priorities) == 0 {
		return neutralDims()
	}

	out := make(DimVector, len(Dims))
	for _, p := range priorities {
		row := cat.PriorityDimWeights(p)
		for _, d := range Dims {
			out[d] += row[d]
		}
	}

	n := float64(len(priorities))
	for _, d := range Dims {
		out[d] /= n
	}
	return out
}

// ScoreDims combines raw dimension scores with the weight and multiplier rows
// by per-dimension multiplication, returning the total and the per-dimension
// contributions.
func ScoreDims(dims map[string]int, weights, agentMult, skillMult DimVector) (float64, DimVector) {
	perDim := make(DimVector, len(Dims))
	total := 0.0
	for _, d := range Dims {
		contrib := float64(dims[d]) * weights[d] * agentMult[d] * skillMult[d]
		perDim[d] = contrib
		total += contrib
	}
	return total, perDim
}

// RankFactsheets scores every framework factsheet against the request
// signals and returns the full ranking, descending by total. Duplicate
// factsheets for the same framework collapse to the last one seen. The
// match percent is relative to the best total in the batch.
func RankFactsheets(cat *Catalog, agentType string, priorities []string, skillLevel string, facts []Factsheet) []RankedFactsheet {
	if len(facts) == 0 {
		return nil
	}

	dedup := make(map[string]Factsheet, len(facts))
	order := make([]string, 0, len(facts))
	for _, f := range facts {
		if f.Framework == "" {
			continue
		}
		if _, ok := dedup[f.Framework]; !ok {
			order = append(order, f.Framework)
		}
		dedup[f.Framework] = f
	}

	weights := AvgWeights(cat, priorities)
	agentMult := cat.AgentTypeMultipliers(agentType)
	skillMult := cat.SkillMultipliers(skillLevel)

	ranked := make([]RankedFactsheet, 0, len(dedup))
	for _, name := range order {
		f := dedup[name]
		dims := make(map[string]int, len(Dims))
		for _, d := range Dims {
			v, ok := f.Dims[d]
			if !ok {
				v = 3
			}
			dims[d] = v
		}

		total, perDim := ScoreDims(dims, weights, agentMult, skillMult)
		ranked = append(ranked, RankedFactsheet{
			Framework:  f.Framework,
			Dims:       dims,
			URL:        f.URL,
			ScoreTotal: total,
			Breakdown: Breakdown{
				PerDim:               perDim,
				RawDims:              dims,
				Weights:              weights,
				AgentTypeMultipliers: agentMult,
				SkillMultipliers:     skillMult,
			},
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ScoreTotal > ranked[j].ScoreTotal
	})

	best := 1.0
	if len(ranked) > 0 && ranked[0].ScoreTotal > 0 {
		best = ranked[0].ScoreTotal
	}

	for i := range ranked {
		pct := MatchPercent(ranked[i].ScoreTotal / best)
		ranked[i].MatchPercent = pct
		ranked[i].Score = float64(pct) / 100.0
	}

	return ranked
}
