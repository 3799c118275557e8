package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/storage-advisor/internal/session"
	"github.com/danielpatrickdp/storage-advisor/internal/store"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive classification loop",
	Long: `Classify interactions from stdin.

Type an utterance, then paste the data blob and finish it with a blank line.
Other commands:
  rate <id> <1-10> [ok|fail]   provide feedback on a logged interaction
  stats                        show current weights and patterns
  decay                        apply one round of time decay
  quit`,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	st, err := store.NewStore(dbPath())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eng, err := session.NewEngine(st)
	if err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}

	fmt.Printf("Advisor ready. DB: %s | session: %s\n", dbPath(), eng.ID())
	fmt.Println("Type an utterance (or 'quit' to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		switch {
		case line == "stats":
			printStats(eng.Stats())
			continue
		case line == "decay":
			snapshot, err := eng.Decay()
			if err != nil {
				fmt.Printf("decay error: %v\n", err)
				continue
			}
			fmt.Printf("decayed: %v\n", snapshot)
			continue
		case strings.HasPrefix(line, "rate "):
			if err := runRate(eng, line); err != nil {
				fmt.Printf("rate error: %v\n", err)
			}
			continue
		}

		fmt.Println("Paste the data blob, end with a blank line:")
		var blobLines []string
		for scanner.Scan() {
			blobLine := scanner.Text()
			if strings.TrimSpace(blobLine) == "" {
				break
			}
			blobLines = append(blobLines, blobLine)
		}
		blob := strings.Join(blobLines, "\n")

		result, err := eng.Process(blob, line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		fmt.Printf("\nchoice=%s score=%.4f structure=%s learn=%v\n",
			result.StorageChoice, result.StorageScore, result.Features.StructureType, result.ShouldLearn)
		if result.ID != nil {
			fmt.Printf("logged as interaction %d (rate it with: rate %d <1-10>)\n", *result.ID, *result.ID)
		} else {
			fmt.Printf("not logged: %s\n", result.GateReason)
		}
	}

	return nil
}

// runRate parses "rate <id> <1-10> [ok|fail]" and applies the feedback.
func runRate(eng *session.Engine, line string) error {
	parts := strings.Fields(line)
	if len(parts) < 3 || len(parts) > 4 {
		return fmt.Errorf("usage: rate <id> <1-10> [ok|fail]")
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return fmt.Errorf("bad id %q", parts[1])
	}
	rating, err := strconv.Atoi(parts[2])
	if err != nil {
		return fmt.Errorf("bad rating %q", parts[2])
	}

	var success *bool
	if len(parts) == 4 {
		switch parts[3] {
		case "ok":
			v := true
			success = &v
		case "fail":
			v := false
			success = &v
		default:
			return fmt.Errorf("bad success flag %q, want ok or fail", parts[3])
		}
	}

	result, err := eng.ProvideFeedback(id, rating, success)
	if err != nil {
		return err
	}
	fmt.Printf("updated weights: %v (improved=%v)\n", result.UpdatedWeights, result.LearningImprovement)
	return nil
}

func printStats(s session.Stats) {
	fmt.Println("Current weights:")
	for k, v := range s.CurrentWeights {
		fmt.Printf("  %-16s %.4f\n", k, v)
	}
	if len(s.StoragePatterns) > 0 {
		fmt.Println("Storage patterns:")
		for k, v := range s.StoragePatterns {
			fmt.Printf("  %-20s %.4f\n", k, v)
		}
	}
	fmt.Printf("Feedback: count=%d avg=%.4f\n", s.FeedbackCount, s.AvgFeedback)
}
