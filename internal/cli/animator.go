package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubeplay"
	"github.com/SeamusWaldron/cubeplay/internal/cube"
)

// defaultStepDelay is the pause between animated moves.
const defaultStepDelay = 150 * time.Millisecond

// Animator implements the session's player contract against an in-memory
// facelet cube. Playback advances the cursor one move per step delay so the
// TUI can render intermediate states.
type Animator struct {
	mu        sync.Mutex
	moves     []cubeplay.Move
	algorithm string
	cursor    int
	playing   bool
	stepDelay time.Duration
}

// NewAnimator creates an animator with the default step delay.
func NewAnimator() *Animator {
	return &Animator{stepDelay: defaultStepDelay}
}

// SetStepDelay sets the pause between animated moves.
func (a *Animator) SetStepDelay(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stepDelay = d
}

// SetAlgorithm replaces the move sequence and resets the cursor. The empty
// string clears the sequence, returning the cube to its solved baseline once
// played.
func (a *Animator) SetAlgorithm(alg string) error {
	moves, err := cubeplay.ParseMoves(alg)
	if err != nil {
		return fmt.Errorf("failed to set algorithm: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.moves = moves
	a.algorithm = alg
	a.cursor = 0
	return nil
}

// SetCursor repositions the playback pointer without animating.
func (a *Animator) SetCursor(n int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n < 0 || n > len(a.moves) {
		return fmt.Errorf("cursor %d out of range [0, %d]", n, len(a.moves))
	}
	a.cursor = n
	return nil
}

// PlayToEnd animates forward from the cursor to the end of the algorithm,
// one move per step delay. It blocks until playback finishes or the context
// is canceled.
func (a *Animator) PlayToEnd(ctx context.Context) error {
	a.mu.Lock()
	if a.playing {
		a.mu.Unlock()
		return fmt.Errorf("playback already in progress")
	}
	a.playing = true
	delay := a.stepDelay
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.playing = false
		a.mu.Unlock()
	}()

	for {
		a.mu.Lock()
		done := a.cursor >= len(a.moves)
		a.mu.Unlock()
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		a.mu.Lock()
		if a.cursor < len(a.moves) {
			a.cursor++
		}
		a.mu.Unlock()
	}
}

// Snapshot returns the current cube state, algorithm, cursor, and whether a
// playback is running. The cube is recomputed from the solved state, so the
// caller owns the returned value.
func (a *Animator) Snapshot() (c *cube.Cube, algorithm string, cursor int, playing bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cube.StateAt(a.moves, a.cursor), a.algorithm, a.cursor, a.playing
}
