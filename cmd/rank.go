package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/advisor-kit/agent-advisor/internal/advisor"
	"github.com/advisor-kit/agent-advisor/internal/logger"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Print the full deterministic framework ranking without LLM enrichment",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("agent-type", "t", "unknown", "type of agent to build")
	rankCmd.Flags().StringSliceP("priority", "p", nil, "priorities (speed, tools, memory, rag, privacy, multi)")
	rankCmd.Flags().StringP("use-case", "u", "", "free-text description of the use case")
	rankCmd.Flags().String("experience", "", "experience level (beginner, intermediate, expert)")
	rankCmd.Flags().String("strategy", "", "ranking strategy: capability or factsheet (default from config)")
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	priorities, err := cmd.Flags().GetStringSlice("priority")
	if err != nil {
		zlog.Fatal("reading flags", zap.Error(err))
	}

	req := advisor.Request{
		AgentType:       cmd.Flag("agent-type").Value.String(),
		Priorities:      priorities,
		UseCase:         cmd.Flag("use-case").Value.String(),
		ExperienceLevel: cmd.Flag("experience").Value.String(),
	}

	strategy := strings.TrimSpace(cmd.Flag("strategy").Value.String())
	if strategy == "" {
		strategy = config.Scoring.Strategy
	}
	if strategy == "" {
		strategy = advisor.StrategyCapability
	}

	var ranking any
	switch strategy {
	case advisor.StrategyCapability:
		adv := advisor.New(nil, nil, nil, zlog)
		ranking = adv.RankCapability(req)
	case advisor.StrategyFactsheet:
		adv, err := buildAdvisor(ctx, config, zlog)
		if err != nil {
			zlog.Fatal("building the ranking pipeline", zap.Error(err))
		}
		ranking, err = adv.RankFactsheets(ctx, req)
		if err != nil {
			zlog.Fatal("ranking by factsheets", zap.Error(err))
		}
	default:
		zlog.Fatal("unknown ranking strategy", zap.String("strategy", strategy))
	}

	pretty, err := json.MarshalIndent(ranking, "", "  ")
	if err != nil {
		zlog.Fatal("encoding the ranking", zap.Error(err))
	}

	fmt.Println(string(pretty))
}
