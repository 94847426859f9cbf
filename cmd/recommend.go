package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/advisor-kit/agent-advisor/internal/advisor"
	"github.com/advisor-kit/agent-advisor/internal/ai"
	"github.com/advisor-kit/agent-advisor/internal/ai/gemini"
	"github.com/advisor-kit/agent-advisor/internal/docstore"
	"github.com/advisor-kit/agent-advisor/internal/logger"
	"github.com/advisor-kit/agent-advisor/internal/secrets"
)

const PromptDone = "done"

var (
	agentTypes       = []string{"Chatbot", "Daten-Agent", "Workflow-Agent", "Analyse-Agent", "Multi-Agent-System"}
	priorityChoices  = []string{"speed", "tools", "memory", "rag", "privacy", "multi"}
	experienceLevels = []string{"beginner", "intermediate", "expert"}
	learningChoices  = []string{"learn", "simple"}
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend agent frameworks or matching Bosch use case templates",
	Run: func(cmd *cobra.Command, _ []string) {
		recommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("agent-type", "t", "", "type of agent to build (Chatbot, Daten-Agent, Workflow-Agent, Analyse-Agent, Multi-Agent-System)")
	recommendCmd.Flags().StringSliceP("priority", "p", nil, "priorities (speed, tools, memory, rag, privacy, multi)")
	recommendCmd.Flags().StringP("use-case", "u", "", "free-text description of the use case")
	recommendCmd.Flags().String("experience", "", "experience level (beginner, intermediate, expert)")
	recommendCmd.Flags().String("learning", "", "learning preference (learn, simple)")
	recommendCmd.Flags().Bool("force-frameworks", false, "skip the use case probe and always recommend frameworks")
	recommendCmd.Flags().StringP("out", "o", "", "write the result to a file instead of stdout")
}

func recommend(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the agent-advisor", zap.String("version", version))

	req, err := requestFromFlags(cmd)
	if err != nil {
		zlog.Fatal("reading flags", zap.Error(err))
	}

	if strings.TrimSpace(req.UseCase) == "" {
		req, err = requestFromPrompt(req)
		if err != nil {
			zlog.Fatal("collecting inputs", zap.Error(err))
		}
	}

	adv, err := buildAdvisor(ctx, config, zlog)
	if err != nil {
		zlog.Fatal("building the recommendation pipeline", zap.Error(err))
	}

	result, err := adv.Recommend(ctx, req)
	if err != nil {
		if errors.Is(err, advisor.ErrInvalidRequest) {
			zlog.Fatal("invalid request", zap.Error(err))
		}
		zlog.Warn("pipeline failed, returning fallback payload", zap.Error(err))
		result = advisor.FallbackResult(err)
	}

	if err := writeResult(cmd, result); err != nil {
		zlog.Fatal("writing the result", zap.Error(err))
	}
}

func requestFromFlags(cmd *cobra.Command) (advisor.Request, error) {
	priorities, err := cmd.Flags().GetStringSlice("priority")
	if err != nil {
		return advisor.Request{}, err
	}

	force, err := cmd.Flags().GetBool("force-frameworks")
	if err != nil {
		return advisor.Request{}, err
	}

	return advisor.Request{
		AgentType:          cmd.Flag("agent-type").Value.String(),
		Priorities:         priorities,
		UseCase:            cmd.Flag("use-case").Value.String(),
		ExperienceLevel:    cmd.Flag("experience").Value.String(),
		LearningPreference: cmd.Flag("learning").Value.String(),
		ForceFrameworks:    force,
	}, nil
}

// requestFromPrompt collects the missing inputs interactively.
func requestFromPrompt(req advisor.Request) (advisor.Request, error) {
	if strings.TrimSpace(req.AgentType) == "" {
		prompt := promptui.Select{Label: "Which kind of agent do you want to build?", Items: agentTypes}
		_, selected, err := prompt.Run()
		if err != nil {
			return req, err
		}
		req.AgentType = selected
	}

	if len(req.Priorities) == 0 {
		priorities, err := selectPriorities()
		if err != nil {
			return req, err
		}
		req.Priorities = priorities
	}

	if strings.TrimSpace(req.ExperienceLevel) == "" {
		prompt := promptui.Select{Label: "Your experience level?", Items: experienceLevels}
		_, selected, err := prompt.Run()
		if err != nil {
			return req, err
		}
		req.ExperienceLevel = selected
	}

	if strings.TrimSpace(req.LearningPreference) == "" {
		prompt := promptui.Select{Label: "Do you want to learn the tooling or keep it simple?", Items: learningChoices}
		_, selected, err := prompt.Run()
		if err != nil {
			return req, err
		}
		req.LearningPreference = selected
	}

	useCasePrompt := promptui.Prompt{
		Label: "Describe your use case",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("the use case must not be empty")
			}
			return nil
		},
	}
	useCase, err := useCasePrompt.Run()
	if err != nil {
		return req, err
	}
	req.UseCase = useCase

	return req, nil
}

// selectPriorities lets the user toggle priorities one by one until done.
func selectPriorities() ([]string, error) {
	selected := map[string]bool{}

	for {
		items := make([]string, 0, len(priorityChoices)+1)
		for _, p := range priorityChoices {
			label := p
			if selected[p] {
				label = p + " (selected)"
			}
			items = append(items, label)
		}
		items = append(items, PromptDone)

		prompt := promptui.Select{Label: "Toggle priorities, then choose done", Items: items}
		i, choice, err := prompt.Run()
		if err != nil {
			return nil, err
		}

		if choice == PromptDone {
			break
		}

		p := priorityChoices[i]
		selected[p] = !selected[p]
	}

	priorities := make([]string, 0, len(selected))
	for _, p := range priorityChoices {
		if selected[p] {
			priorities = append(priorities, p)
		}
	}
	return priorities, nil
}

// buildAdvisor wires the document store and the enrichment client together.
func buildAdvisor(ctx context.Context, config *Config, zlog *zap.Logger) (*advisor.Advisor, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.AI.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	client, err := gemini.NewClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	embedder := gemini.NewEmbedder(client, config.AI.Gemini.EmbeddingModel)

	storeLogger := logger.WithComponentFields(zlog, "", config.Store.Address)
	store, err := docstore.NewMilvus(ctx, *config.Store, embedder, storeLogger)
	if err != nil {
		return nil, fmt.Errorf("connecting to the document store: %w", err)
	}

	var enricher ai.Enricher
	if config.AI.Disabled {
		zlog.Warn("llm enrichment is disabled, recommendations will carry no prose")
	} else {
		generator := gemini.NewGenerator(client, config.AI.Gemini.Model, config.AI.Gemini.MaxRetries, zlog)
		enricherLogger := logger.WithComponentFields(zlog, generator.Model(), config.Store.Address)
		enricher = gemini.NewEnricher(generator, enricherLogger, config.AI.Gemini.MaxLogLength)
	}

	return advisor.New(nil, store, enricher, zlog), nil
}

func writeResult(cmd *cobra.Command, result advisor.Result) error {
	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding the result: %w", err)
	}

	out := cmd.Flag("out").Value.String()
	if out == "" {
		fmt.Println(string(pretty))
		return nil
	}

	if err := os.WriteFile(out, append(pretty, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	return nil
}
