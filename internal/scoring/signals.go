package scoring

import "strings"

// Agent type buckets recognized by the weight table.
const (
	BucketChatSupport      = "chat_support"
	BucketDataDocument     = "data_document"
	BucketWorkflow         = "workflow"
	BucketResearchAnalysis = "research_analysis"
	BucketMultiAgent       = "multi_agent"
)

// Flags are the request conditions derived from free text and priorities.
type Flags struct {
	RAGRequired    bool
	AutomationHigh bool
	MultiAgent     bool
}

// Keyword sets cover both German and English form inputs.
var (
	ragKeywords        = []string{"dokument", "docs", "knowledge", "wiki", "sharepoint", "retrieval", "suche", "search"}
	automationKeywords = []string{"workflow", "automatis", "integration", "n8n"}
	multiAgentKeywords = []string{"multi-agent", "multi agent", "orchestr", "crew"}
)

// MapAgentTypeToBucket maps a free-form agent type onto one of the weight
// table buckets. Unrecognized types default to chat support.
func MapAgentTypeToBucket(agentType string) string {
	t := strings.ToLower(strings.TrimSpace(agentType))
	switch {
	case t == "chatbot" || t == "chat":
		return BucketChatSupport
	case strings.Contains(t, "workflow"):
		return BucketWorkflow
	case strings.Contains(t, "multi"):
		return BucketMultiAgent
	case strings.Contains(t, "analyse") || strings.Contains(t, "analysis"):
		return BucketResearchAnalysis
	case strings.Contains(t, "daten") || strings.Contains(t, "data"):
		return BucketDataDocument
	default:
		return BucketChatSupport
	}
}

// DeriveFlags inspects the use-case text, explicit priorities and the agent
// type bucket and reports which derived signals are active. It is a pure
// function: empty inputs yield all-false flags.
func DeriveFlags(useCaseText string, priorities []string, agentTypeBucket string) Flags {
	text := strings.ToLower(useCaseText)

	set := make(map[string]bool, len(priorities))
	for _, p := range priorities {
		set[p] = true
	}

	return Flags{
		RAGRequired:    set["rag"] || containsAny(text, ragKeywords),
		AutomationHigh: set["tools"] || containsAny(text, automationKeywords),
		MultiAgent:     set["multi"] || agentTypeBucket == BucketMultiAgent || containsAny(text, multiAgentKeywords),
	}
}

func containsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
