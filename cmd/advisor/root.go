package main

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgDBPath string

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Advisor - adaptive storage classification",
	Long: `Advisor classifies a short utterance plus an attached data blob into a
storage bucket, logs novel interactions, and adjusts its weights from feedback.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDBPath, "db", "", "Path to interaction log database (default: ./advisor.db)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(replayCmd)
}

// dbPath merges the flag with the environment, flag winning.
func dbPath() string {
	if cfgDBPath != "" {
		return cfgDBPath
	}
	if v := os.Getenv("ADVISOR_DB"); v != "" {
		return v
	}
	return "advisor.db"
}
