package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielpatrickdp/storage-advisor/internal/replay"
	"github.com/danielpatrickdp/storage-advisor/internal/session"
	"github.com/danielpatrickdp/storage-advisor/internal/store"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a scripted fixture through a fresh session",
	Long: `Run a JSON fixture of scripted interactions and feedback against a
fresh throwaway session, checking each step's expectations.

Exits non-zero when any expectation fails.

Example:
  advisor replay --fixture fixtures/business.json`,
	RunE: runReplay,
}

var replayFixture string

func init() {
	replayCmd.Flags().StringVar(&replayFixture, "fixture", "", "Path to fixture JSON (required)")
	replayCmd.MarkFlagRequired("fixture")
}

func runReplay(cmd *cobra.Command, args []string) error {
	fixture, err := replay.LoadFixture(replayFixture)
	if err != nil {
		return err
	}

	// Replays run against a throwaway store so they never pollute the log.
	// A temp file rather than :memory:, which breaks under connection pooling.
	dir, err := os.MkdirTemp("", "advisor-replay-*")
	if err != nil {
		return fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	st, err := store.NewStore(filepath.Join(dir, "replay.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eng, err := session.NewEngine(st)
	if err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}

	results, summary, err := replay.Replay(eng, fixture)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	if fixture.Description != "" {
		fmt.Println(fixture.Description)
	}
	for _, r := range results {
		status := "ok"
		if r.Mismatch != "" {
			status = "MISMATCH: " + r.Mismatch
		}
		fmt.Printf("  step %-3d choice=%-20s score=%.4f learn=%-5v fedback=%-5v %s\n",
			r.Index, r.Choice, r.Score, r.Learned, r.FedBack, status)
	}
	fmt.Printf("steps=%d learned=%d fedback=%d mismatches=%d\n",
		summary.Steps, summary.Learned, summary.FedBack, summary.Mismatches)

	if summary.Mismatches > 0 {
		return fmt.Errorf("%d of %d steps mismatched", summary.Mismatches, summary.Steps)
	}
	return nil
}
