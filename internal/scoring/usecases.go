package scoring

import (
	"sort"
	"strings"
)

// Blended score weights: vector similarity dominates, categorical matches and
// tag overlap nudge.
const (
	blendSimilarity = 0.80
	blendExperience = 0.10
	blendLearning   = 0.10
	blendTags       = 0.05
)

// UseCaseCandidate is one retrieved use-case document plus the metadata the
// scorer consumes.
type UseCaseCandidate struct {
	Title              string
	Summary            string
	Tags               []string
	ExperienceLevel    string
	LearningPreference string
	Maturity           string
	Similarity         float64
}

// RankedUseCase is a use-case candidate with its dimension-scored total.
type RankedUseCase struct {
	Candidate    UseCaseCandidate
	RawDims      map[string]int
	ScoreTotal   float64
	MatchPercent int
	Score        float64
}

// Keyword heuristics for deriving the six raw use-case dimensions.
var (
	timeToValueKeywords = []string{"template", "vorlage", "ready", "fertig", "quick", "schnell", "low-code", "no-code"}
	integrationKeywords = []string{"integration", "api", "tool", "connector", "sap", "sharepoint", "webhook"}
	privacyKeywords     = []string{"privacy", "datenschutz", "dsgvo", "gdpr", "compliance", "on-prem", "onprem"}
)

// DeriveUseCaseDims derives the six raw dimension scores (1..5) for a
// use-case candidate from keyword and tag heuristics: D1 time-to-value,
// D2 integrations, D3 knowledge/RAG, D4 multi-agent/orchestration,
// D5 privacy/compliance, D6 maturity.
func DeriveUseCaseDims(c UseCaseCandidate) map[string]int {
	text := strings.ToLower(c.Title + " " + c.Summary + " " + strings.Join(c.Tags, " "))

	dims := map[string]int{
		"D1": 3 + hit(text, timeToValueKeywords),
		"D2": 3 + hit(text, integrationKeywords),
		"D3": 3 + hit(text, ragKeywords),
		"D4": 3 + hit(text, multiAgentKeywords),
		"D5": 3 + hit(text, privacyKeywords),
		"D6": maturityScore(c.Maturity),
	}
	for _, d := range Dims {
		dims[d] = clampDim(dims[d])
	}
	return dims
}

// RankUseCases scores the retrieved candidates against the request signals
// and returns the top-K, descending by total. Beginner requests bump the
// maturity dimension, a "simple" learning preference bumps time-to-value.
// The top-K scores are normalized against the best total in the full set.
func RankUseCases(cat *Catalog, agentType string, priorities []string, experienceLevel, learningPreference string, candidates []UseCaseCandidate, topK int) []RankedUseCase {
	if len(candidates) == 0 || topK <= 0 {
		return nil
	}

	weights := AvgWeights(cat, priorities)
	agentMult := cat.AgentTypeMultipliers(agentType)
	skillMult := cat.SkillMultipliers(experienceLevel)

	ranked := make([]RankedUseCase, 0, len(candidates))
	for _, c := range candidates {
		dims := DeriveUseCaseDims(c)
		if experienceLevel == "beginner" {
			dims["D6"] = clampDim(dims["D6"] + 1)
		}
		if learningPreference == "simple" {
			dims["D1"] = clampDim(dims["D1"] + 1)
		}

		total, _ := ScoreDims(dims, weights, agentMult, skillMult)
		ranked = append(ranked, RankedUseCase{Candidate: c, RawDims: dims, ScoreTotal: total})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ScoreTotal > ranked[j].ScoreTotal
	})

	best := 1.0
	if ranked[0].ScoreTotal > 0 {
		best = ranked[0].ScoreTotal
	}

	if topK > len(ranked) {
		topK = len(ranked)
	}
	top := ranked[:topK]
	for i := range top {
		pct := MatchPercent(top[i].ScoreTotal / best)
		top[i].MatchPercent = pct
		top[i].Score = float64(pct) / 100.0
	}

	return top
}

// BlendScore combines the vector-similarity score with categorical matches
// for experience level and learning preference and the priority/tag overlap
// ratio. The result is clamped to [0,1].
func BlendScore(similarity float64, experienceMatch, learningMatch bool, tagOverlap float64) float64 {
	score := blendSimilarity * clamp01(similarity)
	if experienceMatch {
		score += blendExperience
	}
	if learningMatch {
		score += blendLearning
	}
	score += blendTags * clamp01(tagOverlap)
	return clamp01(score)
}

// TagOverlap returns |priorities ∩ tags| / |priorities|, or zero when no
// priorities were given.
func TagOverlap(priorities, tags []string) float64 {
	if len(priorities) == 0 {
		return 0
	}
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[strings.ToLower(strings.TrimSpace(t))] = true
	}
	matched := 0
	for _, p := range priorities {
		if set[strings.ToLower(strings.TrimSpace(p))] {
			matched++
		}
	}
	return float64(matched) / float64(len(priorities))
}

func hit(text string, keywords []string) int {
	if containsAny(text, keywords) {
		return 1
	}
	return 0
}

func maturityScore(maturity string) int {
	switch strings.ToLower(strings.TrimSpace(maturity)) {
	case "production", "produktiv":
		return 5
	case "pilot":
		return 4
	case "prototype", "prototyp", "poc":
		return 2
	default:
		return 3
	}
}

func clampDim(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}
