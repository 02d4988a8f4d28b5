package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pathweaver",
	Short: "Learning-path generation and progress tracking backend",
	Long:  "Pathweaver turns a free-text topic into a gamified learning path of units, levels, and video-backed lessons, and tracks per-item completion with achievements.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("log-mode", "dev", "Log encoder: dev or prod")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}
