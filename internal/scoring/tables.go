package scoring

// Signal key prefixes used in the weight table.
const (
	signalAgentType = "agent_type:"
	signalDerived   = "derived:"
	signalSkill     = "skill:"
	signalPriority  = "prio:"
)

// priorityWeightKeys maps the request priority vocabulary onto weight table
// entries. Unknown priorities are simply skipped.
var priorityWeightKeys = map[string]string{
	"tools":   "prio:Integration",
	"rag":     "prio:RAG",
	"multi":   "prio:Multi-Agent",
	"privacy": "prio:Datenschutz",
	"speed":   "prio:Speed",
	"memory":  "prio:Memory",
}

// DefaultCatalog returns the built-in scoring reference data for the known
// agent frameworks.
func DefaultCatalog() *Catalog {
	return &Catalog{
		capabilities: map[string]CapabilityVector{
			"LangChain": {
				"rag": 0.95, "tools": 0.85, "workflow": 0.55, "multi_agent": 0.55,
				"enterprise": 0.70, "low_code": 0.20, "ecosystem": 0.95, "observability": 0.65,
				"privacy_onprem": 0.60, "ease_beginner": 0.75,
			},
			"LangGraph": {
				"rag": 0.75, "tools": 0.80, "workflow": 0.75, "multi_agent": 0.90,
				"enterprise": 0.70, "low_code": 0.15, "ecosystem": 0.70, "observability": 0.70,
				"privacy_onprem": 0.65, "ease_beginner": 0.40,
			},
			"Google ADK": {
				"rag": 0.60, "tools": 0.75, "workflow": 0.70, "multi_agent": 0.65,
				"enterprise": 0.80, "low_code": 0.25, "ecosystem": 0.65, "observability": 0.75,
				"privacy_onprem": 0.70, "ease_beginner": 0.65,
			},
			"n8n": {
				"rag": 0.30, "tools": 0.65, "workflow": 0.95, "multi_agent": 0.25,
				"enterprise": 0.70, "low_code": 0.90, "ecosystem": 0.70, "observability": 0.55,
				"privacy_onprem": 0.75, "ease_beginner": 0.80,
			},
			"CrewAI": {
				"rag": 0.50, "tools": 0.65, "workflow": 0.55, "multi_agent": 0.85,
				"enterprise": 0.55, "low_code": 0.15, "ecosystem": 0.55, "observability": 0.50,
				"privacy_onprem": 0.55, "ease_beginner": 0.45,
			},
			"OpenAI Agents SDK": {
				"rag": 0.60, "tools": 0.75, "workflow": 0.70, "multi_agent": 0.75,
				"enterprise": 0.70, "low_code": 0.10, "ecosystem": 0.70, "observability": 0.60,
				"privacy_onprem": 0.45, "ease_beginner": 0.65,
			},
			"Claude Agent SDK": {
				"rag": 0.60, "tools": 0.70, "workflow": 0.60, "multi_agent": 0.65,
				"enterprise": 0.65, "low_code": 0.10, "ecosystem": 0.60, "observability": 0.55,
				"privacy_onprem": 0.50, "ease_beginner": 0.65,
			},
			"Cognigy": {
				"rag": 0.45, "tools": 0.85, "workflow": 0.75, "multi_agent": 0.35,
				"enterprise": 0.85, "low_code": 0.85, "ecosystem": 0.70, "observability": 0.75,
				"privacy_onprem": 0.60, "ease_beginner": 0.80,
			},
		},
		weights: map[string]WeightVector{
			"agent_type:chat_support":      {"enterprise": 0.20, "low_code": 0.15, "tools": 0.15, "ease_beginner": 0.20, "observability": 0.10},
			"agent_type:data_document":     {"rag": 0.35, "tools": 0.15, "observability": 0.10, "enterprise": 0.10},
			"agent_type:workflow":          {"workflow": 0.40, "low_code": 0.20, "tools": 0.10, "enterprise": 0.10},
			"agent_type:research_analysis": {"tools": 0.20, "ecosystem": 0.20, "observability": 0.10, "multi_agent": 0.10},
			"agent_type:multi_agent":       {"multi_agent": 0.45, "workflow": 0.10, "tools": 0.10, "observability": 0.10},

			"derived:rag_required":    {"rag": 0.35, "tools": 0.10},
			"derived:automation_high": {"workflow": 0.30, "low_code": 0.15},
			"derived:multi_agent":     {"multi_agent": 0.25},

			"skill:beginner": {"ease_beginner": 0.25, "low_code": 0.10},
			"skill:expert":   {"multi_agent": 0.10, "workflow": 0.10, "observability": 0.10},

			"prio:Integration": {"workflow": 0.15, "tools": 0.10, "ecosystem": 0.10},
			"prio:RAG":         {"rag": 0.20},
			"prio:Multi-Agent": {"multi_agent": 0.20},
			"prio:Datenschutz": {"privacy_onprem": 0.20, "enterprise": 0.10},
			"prio:Speed":       {"low_code": 0.10, "workflow": 0.10, "tools": 0.05},
			"prio:Memory":      {"rag": 0.10, "observability": 0.05},
		},
		priorityDims: map[string]DimVector{
			"speed":   {"D1": 2.5, "D2": 0.75, "D3": 0.75, "D4": 0.75, "D5": 0.75, "D6": 1.5},
			"tools":   {"D1": 0.75, "D2": 2.5, "D3": 0.75, "D4": 0.75, "D5": 1.5, "D6": 0.75},
			"memory":  {"D1": 0.75, "D2": 0.75, "D3": 2.0, "D4": 1.0, "D5": 0.75, "D6": 0.75},
			"rag":     {"D1": 0.75, "D2": 0.75, "D3": 2.2, "D4": 1.0, "D5": 0.75, "D6": 0.75},
			"multi":   {"D1": 0.8, "D2": 1.0, "D3": 1.0, "D4": 2.2, "D5": 1.2, "D6": 1.0},
			"privacy": neutralDims(),
		},
		agentMults: map[string]DimVector{
			"Workflow-Agent":     {"D1": 1.2, "D2": 1.3, "D3": 1.0, "D4": 0.7, "D5": 0.8, "D6": 1.0},
			"Multi-Agent-System": {"D1": 0.8, "D2": 1.0, "D3": 1.0, "D4": 1.4, "D5": 1.2, "D6": 1.0},
			"Daten-Agent":        {"D1": 1.0, "D2": 1.1, "D3": 1.4, "D4": 1.0, "D5": 1.0, "D6": 1.0},
			"Analyse-Agent":      {"D1": 1.0, "D2": 1.0, "D3": 1.2, "D4": 1.0, "D5": 1.3, "D6": 1.0},
			"Chatbot":            {"D1": 1.2, "D2": 1.0, "D3": 1.0, "D4": 1.0, "D5": 1.0, "D6": 1.1},
			"unknown":            neutralDims(),
		},
		skillMults: map[string]DimVector{
			"beginner":     {"D1": 1.2, "D2": 1.0, "D3": 1.0, "D4": 1.0, "D5": 0.8, "D6": 1.4},
			"intermediate": neutralDims(),
			"expert":       {"D1": 1.0, "D2": 1.0, "D3": 1.0, "D4": 1.2, "D5": 1.4, "D6": 0.8},
		},
	}
}
