package cubeplay

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// State represents the session's position in the scramble/solve cycle.
type State int

const (
	// StateIdle means no scramble has been committed yet.
	StateIdle State = iota
	// StateScrambling means a scramble animation is in flight.
	StateScrambling
	// StateScrambled means a committed scramble is set and solvable.
	StateScrambled
	// StateSolving means a solve request or solution playback is in flight.
	StateSolving
	// StateSolved means the last committed scramble was solved; a new
	// scramble is required before solving again.
	StateSolved
)

// String returns the string representation of the session state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScrambling:
		return "scrambling"
	case StateScrambled:
		return "scrambled"
	case StateSolving:
		return "solving"
	case StateSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// Session sequences scrambling, solve requests, and solution playback
// against a single Player.
//
// The player's algorithm/cursor pair is the one shared mutable resource;
// Session enforces single-writer discipline with a non-reentrant busy
// flag taken before any suspension point (animation or network). A
// Scramble or Solve call while another is in flight returns ErrBusy and
// has no side effects.
type Session struct {
	player Player
	solver *SolverClient

	mu        sync.Mutex
	state     State
	busy      bool
	committed string

	lastSolution  string
	lastRoundTrip time.Duration

	status string
	timing string

	statusCallback func(string)
	timingCallback func(string)
}

// NewSession creates a session driving the given player and solver.
func NewSession(player Player, solver *SolverClient) *Session {
	return &Session{
		player: player,
		solver: solver,
		state:  StateIdle,
	}
}

// SetStatusCallback sets a callback that fires whenever the user-visible
// status text changes.
func (s *Session) SetStatusCallback(cb func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusCallback = cb
}

// SetTimingCallback sets a callback that fires whenever the user-visible
// timing text changes.
func (s *Session) SetTimingCallback(cb func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timingCallback = cb
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CommittedScramble returns the scramble that was last fully animated onto
// the puzzle. It is the authoritative input to the solve request.
func (s *Session) CommittedScramble() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// LastSolution returns the solution returned by the most recent successful
// solve, possibly the empty string for an already-solved scramble.
func (s *Session) LastSolution() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSolution
}

// LastRoundTrip returns the solver round-trip time of the most recent
// successful solve.
func (s *Session) LastRoundTrip() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRoundTrip
}

// Status returns the current user-visible status text.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Timing returns the current user-visible timing text.
func (s *Session) Timing() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timing
}

// ScrambleEnabled reports whether the scramble action is available:
// true whenever no operation is in flight.
func (s *Session) ScrambleEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.busy
}

// SolveEnabled reports whether the solve action is available: a committed
// scramble exists, it has not been solved yet, and nothing is in flight.
func (s *Session) SolveEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.busy && s.state == StateScrambled && s.committed != ""
}

// Scramble animates the given scramble onto the puzzle and commits it.
//
// An empty or whitespace-only input is rejected with ErrEmptyScramble and
// changes nothing. If another sequence is in flight, ErrBusy is returned
// and the call is a no-op. On animation failure the scramble action stays
// usable, and the solve action stays available only against a scramble
// committed by a previous successful cycle.
func (s *Session) Scramble(ctx context.Context, input string) error {
	if strings.TrimSpace(input) == "" {
		s.setStatus("Enter a scramble first.")
		return ErrEmptyScramble
	}

	// The busy flag must be taken before the first suspension point, or a
	// double trigger could run two sequences against the one widget.
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.busy = true
	s.state = StateScrambling
	s.mu.Unlock()

	s.setStatus("Scrambling...")
	err := s.playScramble(ctx, input)

	s.mu.Lock()
	s.busy = false
	if err != nil {
		// Keep the stale committed scramble solvable if one exists.
		if s.committed != "" {
			s.state = StateScrambled
		} else {
			s.state = StateIdle
		}
	} else {
		s.committed = input
		s.state = StateScrambled
	}
	s.mu.Unlock()

	if err != nil {
		s.setStatus(err.Error())
		return err
	}
	s.setStatus("Scrambled. Ready to solve.")
	return nil
}

// playScramble drains the widget to its solved baseline, then plays the
// scramble and leaves the cursor at its end.
func (s *Session) playScramble(ctx context.Context, input string) error {
	if err := s.player.SetAlgorithm(""); err != nil {
		return err
	}
	if err := s.player.PlayToEnd(ctx); err != nil {
		return err
	}

	if err := s.player.SetAlgorithm(input); err != nil {
		return err
	}
	if err := s.player.SetCursor(0); err != nil {
		return err
	}
	if err := s.player.PlayToEnd(ctx); err != nil {
		return err
	}
	return s.player.SetCursor(CountMoves(input))
}

// Solve requests a solution for the committed scramble and plays it back
// from the scrambled position.
//
// Without a solvable committed scramble the call is rejected with
// ErrNoScramble and no request is issued. Solver failures leave the
// committed scramble untouched and perform no animation, so the user can
// retry without re-scrambling. On success the widget is returned to its
// solved baseline and the solve action is disabled until the next
// scramble.
func (s *Session) Solve(ctx context.Context) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.committed == "" || s.state != StateScrambled {
		s.mu.Unlock()
		s.setStatus("Scramble the cube first.")
		return ErrNoScramble
	}
	s.busy = true
	s.state = StateSolving
	scramble := s.committed
	s.mu.Unlock()

	s.setStatus("Requesting solution...")

	// The measurement bounds exactly the network round trip.
	start := time.Now()
	solution, err := s.solver.RequestSolution(ctx, scramble)
	roundTrip := time.Since(start)

	if err != nil {
		s.mu.Lock()
		s.busy = false
		s.state = StateScrambled
		s.mu.Unlock()
		s.setStatus(err.Error())
		return err
	}

	s.setTiming(fmt.Sprintf("Solver round trip: %s", roundTrip.Round(time.Millisecond)))

	playErr := s.playSolution(ctx, scramble, solution)

	s.mu.Lock()
	s.busy = false
	if playErr != nil {
		s.state = StateScrambled
	} else {
		s.state = StateSolved
		s.lastSolution = solution
		s.lastRoundTrip = roundTrip
	}
	s.mu.Unlock()

	if playErr != nil {
		s.setStatus(playErr.Error())
		return playErr
	}

	if strings.TrimSpace(solution) == "" {
		s.setStatus("Already solved. No moves needed.")
	} else {
		s.setStatus("Solution: " + solution)
	}
	return nil
}

// playSolution loads the combined algorithm, positions the cursor at the
// scrambled position, plays the solution tail, and returns the widget to
// a clean solved baseline.
func (s *Session) playSolution(ctx context.Context, scramble, solution string) error {
	if err := s.player.SetAlgorithm(JoinAlgorithms(scramble, solution)); err != nil {
		return err
	}
	if err := s.player.SetCursor(CountMoves(scramble)); err != nil {
		return err
	}
	// An empty solution means the puzzle is already solved; nothing to play.
	if strings.TrimSpace(solution) != "" {
		if err := s.player.PlayToEnd(ctx); err != nil {
			return err
		}
	}
	return s.player.SetAlgorithm("")
}

func (s *Session) setStatus(text string) {
	s.mu.Lock()
	s.status = text
	cb := s.statusCallback
	s.mu.Unlock()
	if cb != nil {
		cb(text)
	}
}

func (s *Session) setTiming(text string) {
	s.mu.Lock()
	s.timing = text
	cb := s.timingCallback
	s.mu.Unlock()
	if cb != nil {
		cb(text)
	}
}
