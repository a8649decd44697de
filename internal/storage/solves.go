package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Solve represents one solver request in the database. An empty Solution
// with a nil Error means the scramble was already solved; a non-nil Error
// records a failed request.
type Solve struct {
	SolveID     string
	RequestedAt time.Time
	Scramble    string
	Solution    string
	SolverMs    int64
	SolverURL   *string
	Error       *string
}

// Failed reports whether this record is a failed solver request.
func (s *Solve) Failed() bool {
	return s.Error != nil
}

// timeLayout is RFC3339 with fixed-width fractional seconds so that the
// stored strings sort lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create records a successful solver round trip and returns its ID.
func (r *SolveRepository) Create(scramble, solution string, roundTrip time.Duration, solverURL string) (string, error) {
	return r.insert(scramble, solution, roundTrip, solverURL, nil)
}

// CreateFailed records a failed solver request with its error text.
func (r *SolveRepository) CreateFailed(scramble string, roundTrip time.Duration, solverURL, errText string) (string, error) {
	return r.insert(scramble, "", roundTrip, solverURL, &errText)
}

func (r *SolveRepository) insert(scramble, solution string, roundTrip time.Duration, solverURL string, errText *string) (string, error) {
	id := uuid.New().String()
	requestedAt := time.Now().UTC()

	var urlPtr *string
	if solverURL != "" {
		urlPtr = &solverURL
	}

	_, err := r.db.Exec(`
		INSERT INTO solves (solve_id, requested_at, scramble, solution, solver_ms, solver_url, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, requestedAt.Format(timeLayout), scramble, solution, roundTrip.Milliseconds(), urlPtr, errText)

	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}

	return id, nil
}

// Get retrieves a solve by ID.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	row := r.db.QueryRow(`
		SELECT solve_id, requested_at, scramble, solution, solver_ms, solver_url, error
		FROM solves
		WHERE solve_id = ?
	`, solveID)

	s, err := scanSolve(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("solve not found: %s", solveID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}

	return s, nil
}

// List retrieves the most recent solves, newest first.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	rows, err := r.db.Query(`
		SELECT solve_id, requested_at, scramble, solution, solver_ms, solver_url, error
		FROM solves
		ORDER BY requested_at DESC
		LIMIT ?
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, *s)
	}

	return solves, nil
}

// Count returns the total number of recorded solves.
func (r *SolveRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM solves").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count solves: %w", err)
	}
	return count, nil
}

// scanner abstracts sql.Row and sql.Rows for scanSolve.
type scanner interface {
	Scan(dest ...any) error
}

func scanSolve(row scanner) (*Solve, error) {
	var s Solve
	var requestedAtStr string
	if err := row.Scan(&s.SolveID, &requestedAtStr, &s.Scramble, &s.Solution, &s.SolverMs, &s.SolverURL, &s.Error); err != nil {
		return nil, err
	}

	requestedAt, err := time.Parse(timeLayout, requestedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse requested_at: %w", err)
	}
	s.RequestedAt = requestedAt

	return &s, nil
}
