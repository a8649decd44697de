package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

var (
	historyLimit int
	showLast     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded solves",
	Long:  `Display recent solver requests with their scrambles, solutions, and round-trip times.`,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [solve-id]",
	Short: "Show details of a recorded solve",
	Long: `Display the full scramble, solution, and timing for one recorded solve.

Use --last to show the most recent solve.`,
	RunE: runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of solves to display")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent solve")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSolveRepository(db)
	solves, err := repo.List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet")
		fmt.Println("Solve a scramble with: cubeplay solve \"R U R' U'\"")
		return nil
	}

	fmt.Printf("Recent solves (showing %d):\n", len(solves))
	fmt.Println()
	fmt.Printf("%-36s  %-20s  %-9s  %-6s  %s\n", "ID", "Requested", "Solver", "Moves", "Scramble")
	fmt.Println("------------------------------------  --------------------  ---------  ------  --------")

	for _, s := range solves {
		scramble := s.Scramble
		if len(scramble) > 30 {
			scramble = scramble[:27] + "..."
		}

		status := ""
		if s.Failed() {
			status = " (failed)"
		}

		fmt.Printf("%-36s  %-20s  %-9s  %-6d  %s%s\n",
			s.SolveID,
			s.RequestedAt.Local().Format("2006-01-02 15:04:05"),
			(time.Duration(s.SolverMs) * time.Millisecond).String(),
			cubeplay.CountMoves(s.Solution),
			scramble,
			status,
		)
	}

	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSolveRepository(db)

	var solveID string
	if showLast {
		solves, err := repo.List(1)
		if err != nil {
			return fmt.Errorf("failed to get latest solve: %w", err)
		}
		if len(solves) == 0 {
			return fmt.Errorf("no solves found")
		}
		solveID = solves[0].SolveID
	} else if len(args) > 0 {
		solveID = args[0]
	} else {
		return fmt.Errorf("please provide a solve ID or use --last")
	}

	solve, err := repo.Get(solveID)
	if err != nil {
		return err
	}

	fmt.Println("Solve Details")
	fmt.Println("=============")
	fmt.Println()
	fmt.Printf("ID:        %s\n", solve.SolveID)
	fmt.Printf("Requested: %s\n", solve.RequestedAt.Local().Format("2006-01-02 15:04:05"))
	if solve.SolverURL != nil {
		fmt.Printf("Solver:    %s\n", *solve.SolverURL)
	}
	fmt.Println()
	fmt.Printf("Scramble:   %s (%d moves)\n", solve.Scramble, cubeplay.CountMoves(solve.Scramble))
	if solve.Failed() {
		fmt.Printf("Failed:     %s\n", *solve.Error)
	} else if solve.Solution == "" {
		fmt.Println("Solution:   (already solved)")
	} else {
		fmt.Printf("Solution:   %s (%d moves)\n", solve.Solution, cubeplay.CountMoves(solve.Solution))
	}
	fmt.Printf("Round trip: %s\n", time.Duration(solve.SolverMs)*time.Millisecond)

	return nil
}
