package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/ohmlab/internal/circuit"
	"github.com/abhisek/ohmlab/internal/diagnosis"
	"github.com/abhisek/ohmlab/internal/problemgen"
	"github.com/abhisek/ohmlab/internal/scenario"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Answer circuit questions on the command line (no TUI)",
	Long: `Generate and interactively answer circuit questions on stdin.

Circuits are random quiz scenarios unless --file fixes one. Nothing is saved.`,
	RunE: runPractice,
}

func init() {
	practiceCmd.Flags().String("difficulty", "", "beginner or experienced (default from config)")
	practiceCmd.Flags().Int("count", 5, "Number of questions")
	practiceCmd.Flags().Int64("seed", 0, "Random seed (0 uses the clock)")
	practiceCmd.Flags().String("file", "", "Ask every question about this JSON circuit")
}

func runPractice(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	difficulty := cfg.PracticeDifficulty()
	if v, _ := cmd.Flags().GetString("difficulty"); v != "" {
		if difficulty, err = problemgen.ParseDifficulty(v); err != nil {
			return err
		}
	}
	count, _ := cmd.Flags().GetInt("count")
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	next := scenario.New(rng).Generate
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		snap, err := readSnapshotFile(path)
		if err != nil {
			return err
		}
		next = func() circuit.Snapshot { return snap }
	}

	builder := problemgen.New(rng, problemgen.DefaultConfig())
	practiceLoop(cmd.InOrStdin(), cmd.OutOrStdout(), builder, difficulty, count, next)
	return nil
}

// practiceLoop asks count questions, reading one answer line per part.
func practiceLoop(in io.Reader, out io.Writer, builder *problemgen.Builder, d problemgen.Difficulty, count int, next func() circuit.Snapshot) {
	scanner := bufio.NewScanner(in)
	var awarded, possible int

	for i := 1; i <= count; i++ {
		snap := next()
		q := builder.Build(d, snap, circuit.Solve(snap))

		fmt.Fprintf(out, "── Question %d/%d: %s ──\n", i, count, q.Title)
		fmt.Fprintln(out, q.Prompt)

		answers := make(map[string]string, len(q.Parts))
		for _, p := range q.Parts {
			fmt.Fprintf(out, "%s [%s]: ", p.Label, p.Unit)
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				fmt.Fprintf(out, "── Summary: %d/%d points ──\n", awarded, possible)
				return
			}
			answers[p.ID] = strings.TrimSpace(scanner.Text())
		}

		score := problemgen.Grade(q, answers)
		awarded += score.Awarded
		possible += score.Possible

		diags := diagnosis.Diagnose(q, score)
		for _, p := range q.Parts {
			pr, _ := score.Result(p.ID)
			if pr.Correct {
				fmt.Fprintf(out, "\033[32m✓\033[0m %s\n", p.Label)
			} else {
				fmt.Fprintf(out, "\033[31m✗\033[0m %s\n", p.Label)
			}
			fmt.Fprintf(out, "    %s\n    %s %s\n", p.Formula, p.Substituted, p.Unit)
			if hint := diags[p.ID].Hint(); hint != "" {
				fmt.Fprintf(out, "    Hint: %s\n", hint)
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Summary: %d/%d points ──\n", awarded, possible)
}
