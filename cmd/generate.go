package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathweaver/internal/llm"
	"github.com/abhisek/pathweaver/internal/logger"
	"github.com/abhisek/pathweaver/internal/pathgen"
	"github.com/abhisek/pathweaver/internal/videos"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a learning path and print it as JSON",
	Long:  "One-shot generation for smoke testing provider and video lookup configuration. Nothing is persisted.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args[0])
	},
}

func init() {
	generateCmd.Flags().String("skill-level", "", "Learner skill level hint (e.g. beginner)")
}

func runGenerate(cmd *cobra.Command, topic string) error {
	ctx := cmd.Context()

	mode, _ := cmd.Flags().GetString("log-mode")
	log, err := logger.New(mode)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), nil, log)
	if err != nil {
		return fmt.Errorf("configure llm provider: %w", err)
	}

	searcher, err := videos.NewYouTubeClient(ctx, os.Getenv("PATHWEAVER_YOUTUBE_API_KEY"))
	if err != nil {
		return fmt.Errorf("configure video search: %w", err)
	}

	generator := pathgen.NewGenerator(provider, videos.NewFetcher(searcher, log), pathgen.DefaultConfig(), log)

	skillLevel, _ := cmd.Flags().GetString("skill-level")
	path, err := generator.Generate(ctx, topic, skillLevel)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(path)
}
