package scoring

import (
	"math"
	"testing"
)

func TestAvgWeights(t *testing.T) {
	t.Parallel()

	cat := DefaultCatalog()

	t.Run("no priorities yields neutral row", func(t *testing.T) {
		t.Parallel()
		w := AvgWeights(cat, nil)
		for _, d := range Dims {
			if w[d] != 1.0 {
				t.Fatalf("expected neutral weight for %s, got %v", d, w[d])
			}
		}
	})

	t.Run("single priority returns its row", func(t *testing.T) {
		t.Parallel()
		w := AvgWeights(cat, []string{"speed"})
		if w["D1"] != 2.5 || w["D6"] != 1.5 {
			t.Fatalf("unexpected speed weights: %v", w)
		}
	})

	t.Run("unknown priority averages in neutral row", func(t *testing.T) {
		t.Parallel()
		w := AvgWeights(cat, []string{"speed", "nonsense"})
		if got, expect := w["D1"], (2.5+1.0)/2; math.Abs(got-expect) > 1e-9 {
			t.Fatalf("expected D1 %v, got %v", expect, got)
		}
	})
}

func TestScoreDims(t *testing.T) {
	t.Parallel()

	dims := map[string]int{"D1": 5, "D2": 1, "D3": 3, "D4": 3, "D5": 3, "D6": 3}
	weights := DimVector{"D1": 2.0, "D2": 1.0, "D3": 1.0, "D4": 1.0, "D5": 1.0, "D6": 1.0}
	neutral := neutralDims()

	total, perDim := ScoreDims(dims, weights, neutral, neutral)
	if expect := 5*2.0 + 1 + 3 + 3 + 3 + 3; math.Abs(total-float64(expect)) > 1e-9 {
		t.Fatalf("expected total %v, got %v", expect, total)
	}
	if perDim["D1"] != 10 {
		t.Fatalf("expected D1 contribution 10, got %v", perDim["D1"])
	}
}

func TestRankFactsheets(t *testing.T) {
	t.Parallel()

	cat := DefaultCatalog()
	facts := []Factsheet{
		{Framework: "LangChain", Dims: map[string]int{"D1": 4, "D2": 4, "D3": 5, "D4": 3, "D5": 3, "D6": 4}, URL: "https://langchain.example"},
		{Framework: "n8n", Dims: map[string]int{"D1": 5, "D2": 4, "D3": 2, "D4": 1, "D5": 3, "D6": 4}},
		{Framework: "CrewAI", Dims: map[string]int{"D4": 5}},
	}

	ranked := RankFactsheets(cat, "Daten-Agent", []string{"rag"}, "beginner", facts)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked factsheets, got %d", len(ranked))
	}

	if ranked[0].MatchPercent != 100 {
		t.Fatalf("top ranked factsheet must be 100%%, got %d", ranked[0].MatchPercent)
	}

	for i, r := range ranked {
		if i > 0 && ranked[i-1].ScoreTotal < r.ScoreTotal {
			t.Fatalf("ordering violated at %d", i)
		}
		if r.Score < 0 || r.Score > 1 {
			t.Fatalf("score out of range: %v", r.Score)
		}
	}

	// Missing dimensions default to 3.
	var crew *RankedFactsheet
	for i := range ranked {
		if ranked[i].Framework == "CrewAI" {
			crew = &ranked[i]
		}
	}
	if crew == nil {
		t.Fatalf("CrewAI missing from ranking")
	}
	if crew.Dims["D1"] != 3 || crew.Dims["D4"] != 5 {
		t.Fatalf("unexpected defaulted dims: %v", crew.Dims)
	}
}

func TestRankFactsheetsDeduplicatesByFramework(t *testing.T) {
	t.Parallel()

	cat := DefaultCatalog()
	facts := []Factsheet{
		{Framework: "LangChain", Dims: map[string]int{"D1": 1}},
		{Framework: "LangChain", Dims: map[string]int{"D1": 5}},
	}

	ranked := RankFactsheets(cat, "unknown", nil, "", facts)
	if len(ranked) != 1 {
		t.Fatalf("expected a single entry, got %d", len(ranked))
	}
	if ranked[0].Dims["D1"] != 5 {
		t.Fatalf("expected last factsheet to win, got D1=%d", ranked[0].Dims["D1"])
	}
}

func TestRankFactsheetsEmptyInput(t *testing.T) {
	t.Parallel()

	if got := RankFactsheets(DefaultCatalog(), "Chatbot", nil, "", nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}
