package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/advisor-kit/agent-advisor/internal/ai"
	"github.com/advisor-kit/agent-advisor/internal/logger"
	"go.uber.org/zap"
)

//go:embed prompt.md
var enrichmentSystemPrompt string

const defaultMaxLogLength = 200

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Enricher asks Gemini for descriptive framework texts. Ranking and scores
// are never taken from the model output: texts are merged back by name.
type Enricher struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewEnricher creates the Gemini-backed enrichment step.
func NewEnricher(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Enricher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Enricher{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Enrich sends the ranked frameworks to the model and returns the parsed
// texts keyed by framework name. A response that is not valid JSON degrades
// to an empty map instead of failing the pipeline.
func (e *Enricher) Enrich(ctx context.Context, payload ai.EnrichmentPayload) (map[string]ai.FrameworkTexts, error) {
	if len(payload.Frameworks) == 0 {
		return map[string]ai.FrameworkTexts{}, nil
	}

	message, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal enrichment payload: %w", err)
	}

	e.logger.Debug("gemini enrichment request",
		zap.String("model", e.generator.Model()),
		zap.Int("frameworks", len(payload.Frameworks)),
		zap.Int("payload_length", utf8.RuneCountInString(string(message))),
	)

	raw, err := e.generator.GenerateContent(ctx, enrichmentSystemPrompt, string(message))
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini enrichment response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	texts, ok := parseFrameworkTexts(raw)
	if !ok {
		e.logger.Warn("gemini enrichment response was not valid JSON, continuing without texts",
			zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
		)
		return map[string]ai.FrameworkTexts{}, nil
	}

	return texts, nil
}

type frameworkTextsResponse struct {
	FrameworkTexts []frameworkTextItem `json:"framework_texts"`
}

type frameworkTextItem struct {
	Framework string `json:"framework"`
	ai.FrameworkTexts
}

func parseFrameworkTexts(raw string) (map[string]ai.FrameworkTexts, bool) {
	cleaned := extractJSON(raw)

	var resp frameworkTextsResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, false
	}

	texts := make(map[string]ai.FrameworkTexts, len(resp.FrameworkTexts))
	for _, item := range resp.FrameworkTexts {
		name := strings.TrimSpace(item.Framework)
		if name == "" {
			continue
		}
		texts[name] = item.FrameworkTexts
	}

	return texts, true
}

// extractJSON strips markdown code fences the model tends to wrap its JSON in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
