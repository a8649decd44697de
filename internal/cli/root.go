// Package cli implements the command-line interface for cubeplay.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

const version = "0.1.0"

// DefaultSolverURL is the address the companion solver service listens on.
const DefaultSolverURL = "http://127.0.0.1:5002"

var (
	// Global flags
	solverURL string
	dbPath    string
	verbose   bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubeplay",
	Short: "Cube Scramble Player",
	Long: `Cube Scramble Player - scramble a virtual Rubik's Cube, request a solution
from a local solver service, and watch the solution play back.

Type a scramble in standard face notation (e.g. "R U R' U'"), apply it to the
cube, then ask the solver for a solution and replay it move by move.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&solverURL, "solver-url", DefaultSolverURL, "Base URL of the solver service")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubeplay/cubeplay.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// openDB opens the history database from the flag or default path.
func openDB() (*storage.DB, error) {
	var db *storage.DB
	var err error

	if dbPath == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(dbPath)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}
