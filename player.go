package cubeplay

import "context"

// Player is the contract the session holds against an animated puzzle
// widget. A widget carries one algorithm string and one integer playback
// cursor into that algorithm; play animates forward from the cursor to the
// end of the algorithm and blocks until the animation finishes.
//
// Setting the empty algorithm and playing must reset the widget to its
// solved baseline, and the set/cursor/play cycle must be safe to run
// repeatedly.
type Player interface {
	// SetAlgorithm replaces the widget's move sequence. It does not animate.
	SetAlgorithm(alg string) error

	// SetCursor repositions the playback pointer to move index n without
	// animating.
	SetCursor(n int) error

	// PlayToEnd animates forward from the current cursor to the end of the
	// current algorithm and returns once the animation completes or fails.
	PlayToEnd(ctx context.Context) error
}

// NopPlayer is a Player that animates nothing. It satisfies the contract
// for headless use, where only the session's sequencing and the solver
// round trip matter.
type NopPlayer struct{}

func (NopPlayer) SetAlgorithm(string) error       { return nil }
func (NopPlayer) SetCursor(int) error             { return nil }
func (NopPlayer) PlayToEnd(context.Context) error { return nil }
