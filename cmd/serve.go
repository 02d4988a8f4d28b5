package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathweaver/internal/achievements"
	"github.com/abhisek/pathweaver/internal/httpapi"
	"github.com/abhisek/pathweaver/internal/library"
	"github.com/abhisek/pathweaver/internal/llm"
	"github.com/abhisek/pathweaver/internal/logger"
	"github.com/abhisek/pathweaver/internal/pathgen"
	"github.com/abhisek/pathweaver/internal/progress"
	"github.com/abhisek/pathweaver/internal/store"
	"github.com/abhisek/pathweaver/internal/videos"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides PATHWEAVER_ADDR)")
}

// runServe wires the full dependency graph and blocks serving HTTP.
func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()

	mode, _ := cmd.Flags().GetString("log-mode")
	log, err := logger.New(mode)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	db, err := store.Open(store.ConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	pathRepo := store.NewPathRepo(db, log)
	progRepo := store.NewProgressRepo(db, log)
	achRepo := store.NewAchievementRepo(db, log)
	statsRepo := store.NewStatsRepo(db, log)
	llmLog := store.NewLLMLogRepo(db, log)

	provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), llmLog, log)
	if err != nil {
		return fmt.Errorf("configure llm provider: %w", err)
	}

	searcher, err := videos.NewYouTubeClient(ctx, os.Getenv("PATHWEAVER_YOUTUBE_API_KEY"))
	if err != nil {
		return fmt.Errorf("configure video search: %w", err)
	}
	fetcher := videos.NewFetcher(searcher, log)

	generator := pathgen.NewGenerator(provider, fetcher, pathgen.DefaultConfig(), log)
	lib := library.NewService(db, pathRepo, progRepo, log)
	evaluator := achievements.NewEvaluator(pathRepo, achRepo, log)
	tracker := progress.NewTracker(db, pathRepo, progRepo, evaluator, log)

	handlers := httpapi.NewHandlers(generator, lib, tracker, achRepo, statsRepo, log)
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Handlers:     handlers,
		AllowOrigins: splitOrigins(os.Getenv("PATHWEAVER_CORS_ORIGINS")),
		Mode:         mode,
	})

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = os.Getenv("PATHWEAVER_ADDR")
	}
	if addr == "" {
		addr = ":8080"
	}

	log.Info("starting http server", "addr", addr)
	return router.Run(addr)
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
