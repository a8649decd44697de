package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

var (
	solveTimeout time.Duration
	solveNoSave  bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [scramble]",
	Short: "Request a solution without the TUI",
	Long: `Request a solution for a scramble from the solver service and print it.

The scramble is given in standard face notation, for example:

  cubeplay solve "R U R' U' F2 D"

The solve is recorded in the history database unless --no-save is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 60*time.Second, "Solver request timeout")
	solveCmd.Flags().BoolVar(&solveNoSave, "no-save", false, "Do not record the solve in history")
}

func runSolve(cmd *cobra.Command, args []string) error {
	scramble := strings.TrimSpace(args[0])

	solver := cubeplay.NewSolverClient(solverURL, cubeplay.WithTimeout(solveTimeout))
	session := cubeplay.NewSession(cubeplay.NopPlayer{}, solver)

	ctx, cancel := context.WithTimeout(context.Background(), solveTimeout)
	defer cancel()

	if err := session.Scramble(ctx, scramble); err != nil {
		return fmt.Errorf("failed to apply scramble: %w", err)
	}
	if err := session.Solve(ctx); err != nil {
		if !solveNoSave {
			recordFailure(scramble, solver.BaseURL(), err)
		}
		return fmt.Errorf("failed to solve: %w", err)
	}

	solution := session.LastSolution()
	roundTrip := session.LastRoundTrip()

	fmt.Printf("Scramble: %s\n", scramble)
	if strings.TrimSpace(solution) == "" {
		fmt.Println("Solution: (already solved)")
	} else {
		fmt.Printf("Solution: %s (%d moves)\n", solution, cubeplay.CountMoves(solution))
	}
	fmt.Printf("Round trip: %s\n", roundTrip.Round(time.Millisecond))

	if solveNoSave {
		return nil
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSolveRepository(db)
	id, err := repo.Create(scramble, solution, roundTrip, solver.BaseURL())
	if err != nil {
		return fmt.Errorf("failed to record solve: %w", err)
	}

	if verbose {
		fmt.Printf("Recorded solve: %s\n", id)
	}

	return nil
}

// recordFailure saves a failed solver request to history. Recording is best
// effort; the original failure is what the user needs to see.
func recordFailure(scramble, baseURL string, solveErr error) {
	db, err := openDB()
	if err != nil {
		return
	}
	defer db.Close()

	repo := storage.NewSolveRepository(db)
	repo.CreateFailed(scramble, 0, baseURL, solveErr.Error())
}
