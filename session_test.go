package cubeplay

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakePlayer records every adapter call and can block or fail playback.
type fakePlayer struct {
	mu          sync.Mutex
	algorithms  []string
	cursors     []int
	playCalls   int
	activePlays int
	maxActive   int

	playStarted chan struct{} // signaled at the start of each PlayToEnd
	blockPlay   chan struct{} // when non-nil, PlayToEnd waits on it
	failPlay    error
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{playStarted: make(chan struct{}, 16)}
}

func (p *fakePlayer) SetAlgorithm(alg string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.algorithms = append(p.algorithms, alg)
	return nil
}

func (p *fakePlayer) SetCursor(n int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursors = append(p.cursors, n)
	return nil
}

func (p *fakePlayer) PlayToEnd(ctx context.Context) error {
	p.mu.Lock()
	p.playCalls++
	p.activePlays++
	if p.activePlays > p.maxActive {
		p.maxActive = p.activePlays
	}
	block := p.blockPlay
	failErr := p.failPlay
	p.mu.Unlock()

	select {
	case p.playStarted <- struct{}{}:
	default:
	}

	if block != nil {
		<-block
	}

	p.mu.Lock()
	p.activePlays--
	p.mu.Unlock()
	return failErr
}

func (p *fakePlayer) lastAlgorithm() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.algorithms) == 0 {
		return ""
	}
	return p.algorithms[len(p.algorithms)-1]
}

func (p *fakePlayer) snapshot() (algorithms []string, cursors []int, playCalls int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.algorithms...), append([]int(nil), p.cursors...), p.playCalls
}

// solverStub counts requests and serves a fixed body.
func solverStub(t *testing.T, status int, body string) (*SolverClient, *int) {
	t.Helper()
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewSolverClient(srv.URL), &requests
}

func TestScrambleCommitsExactInput(t *testing.T) {
	player := newFakePlayer()
	solver, _ := solverStub(t, http.StatusOK, `{"solution": ""}`)
	session := NewSession(player, solver)

	input := "R   U2  F'" // odd spacing must be committed exactly, not normalized
	if err := session.Scramble(context.Background(), input); err != nil {
		t.Fatalf("Scramble: %v", err)
	}

	if got := session.CommittedScramble(); got != input {
		t.Errorf("CommittedScramble = %q, want %q", got, input)
	}
	if session.State() != StateScrambled {
		t.Errorf("state = %v, want scrambled", session.State())
	}
	if !session.SolveEnabled() {
		t.Error("solve should be enabled after a successful scramble")
	}
	if !session.ScrambleEnabled() {
		t.Error("scramble should be re-enabled after a successful scramble")
	}

	algorithms, cursors, _ := player.snapshot()
	wantAlgs := []string{"", input}
	if len(algorithms) != len(wantAlgs) || algorithms[0] != "" || algorithms[1] != input {
		t.Errorf("algorithms = %q, want %q", algorithms, wantAlgs)
	}
	// Cursor ends at move-count(input).
	if len(cursors) == 0 || cursors[len(cursors)-1] != 3 {
		t.Errorf("cursors = %v, want final cursor 3", cursors)
	}
}

func TestScrambleEmptyInputRejected(t *testing.T) {
	player := newFakePlayer()
	solver, requests := solverStub(t, http.StatusOK, `{"solution": ""}`)
	session := NewSession(player, solver)

	for _, input := range []string{"", "   ", "\t\n"} {
		if err := session.Scramble(context.Background(), input); !errors.Is(err, ErrEmptyScramble) {
			t.Errorf("Scramble(%q) error = %v, want ErrEmptyScramble", input, err)
		}
	}

	if session.State() != StateIdle {
		t.Errorf("state = %v, want idle", session.State())
	}
	if _, _, plays := player.snapshot(); plays != 0 {
		t.Errorf("playCalls = %d, want 0", plays)
	}
	if *requests != 0 {
		t.Errorf("requests = %d, want 0", *requests)
	}
	if session.Status() == "" {
		t.Error("expected a user-visible rejection message")
	}
}

func TestSolveWithoutScrambleRejected(t *testing.T) {
	player := newFakePlayer()
	solver, requests := solverStub(t, http.StatusOK, `{"solution": "R"}`)
	session := NewSession(player, solver)

	if err := session.Solve(context.Background()); !errors.Is(err, ErrNoScramble) {
		t.Fatalf("Solve error = %v, want ErrNoScramble", err)
	}
	if *requests != 0 {
		t.Errorf("requests = %d, want 0", *requests)
	}
	if _, _, plays := player.snapshot(); plays != 0 {
		t.Errorf("playCalls = %d, want 0", plays)
	}
}

func TestSolveEmptySolutionAnimatesNothing(t *testing.T) {
	player := newFakePlayer()
	solver, _ := solverStub(t, http.StatusOK, `{"solution": ""}`)
	session := NewSession(player, solver)

	if err := session.Scramble(context.Background(), "R R'"); err != nil {
		t.Fatalf("Scramble: %v", err)
	}
	_, _, playsAfterScramble := player.snapshot()

	if err := session.Solve(context.Background()); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if _, _, plays := player.snapshot(); plays != playsAfterScramble {
		t.Errorf("playCalls = %d, want %d (empty solution must not animate)", plays, playsAfterScramble)
	}
	if !strings.Contains(session.Status(), "No moves needed") {
		t.Errorf("status = %q, want explicit no-moves-needed message", session.Status())
	}
	if session.SolveEnabled() {
		t.Error("solve should be disabled after a successful solve")
	}
	if !session.ScrambleEnabled() {
		t.Error("scramble should be re-enabled after a successful solve")
	}
	if session.State() != StateSolved {
		t.Errorf("state = %v, want solved", session.State())
	}
	// Widget returned to the clean solved baseline.
	if player.lastAlgorithm() != "" {
		t.Errorf("last algorithm = %q, want empty baseline", player.lastAlgorithm())
	}
}

func TestSolveCombinedAlgorithmAndCursor(t *testing.T) {
	player := newFakePlayer()
	solver, _ := solverStub(t, http.StatusOK, `{"solution": "R U R'"}`)
	session := NewSession(player, solver)

	if err := session.Scramble(context.Background(), "R U"); err != nil {
		t.Fatalf("Scramble: %v", err)
	}
	if err := session.Solve(context.Background()); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	algorithms, cursors, _ := player.snapshot()

	found := false
	for _, alg := range algorithms {
		if alg == "R U R U R'" {
			found = true
		}
	}
	if !found {
		t.Errorf("algorithms = %q, want combined \"R U R U R'\"", algorithms)
	}

	// Solution playback starts at the scrambled position: cursor 2.
	if len(cursors) == 0 || cursors[len(cursors)-1] != 2 {
		t.Errorf("cursors = %v, want final cursor 2", cursors)
	}
	if session.LastSolution() != "R U R'" {
		t.Errorf("LastSolution = %q", session.LastSolution())
	}
}

func TestSolveHTTPErrorRestoresControls(t *testing.T) {
	player := newFakePlayer()
	solver, _ := solverStub(t, http.StatusInternalServerError, "boom")
	session := NewSession(player, solver)

	if err := session.Scramble(context.Background(), "R U"); err != nil {
		t.Fatalf("Scramble: %v", err)
	}
	algorithmsBefore, _, playsBefore := player.snapshot()

	err := session.Solve(context.Background())
	var httpErr *HTTPStatusError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Solve error = %v, want *HTTPStatusError", err)
	}

	if !strings.Contains(session.Status(), "500") {
		t.Errorf("status = %q, want status code included", session.Status())
	}
	if got := session.CommittedScramble(); got != "R U" {
		t.Errorf("CommittedScramble = %q, want preserved", got)
	}
	if !session.ScrambleEnabled() || !session.SolveEnabled() {
		t.Error("both controls should be re-enabled after a solver failure")
	}
	// No animation on solver failure.
	algorithms, _, plays := player.snapshot()
	if len(algorithms) != len(algorithmsBefore) || plays != playsBefore {
		t.Error("solver failure must not touch the widget")
	}
}

func TestSolveReportedErrorIsRetryable(t *testing.T) {
	player := newFakePlayer()
	solver, requests := solverStub(t, http.StatusOK, `{"error": "search depth exceeded"}`)
	session := NewSession(player, solver)

	if err := session.Scramble(context.Background(), "R U"); err != nil {
		t.Fatalf("Scramble: %v", err)
	}

	err := session.Solve(context.Background())
	var solverErr *SolverError
	if !errors.As(err, &solverErr) {
		t.Fatalf("Solve error = %v, want *SolverError", err)
	}
	if !strings.Contains(session.Status(), "search depth exceeded") {
		t.Errorf("status = %q, want solver message", session.Status())
	}

	// The committed scramble survives, so solving again issues a new request.
	if !session.SolveEnabled() {
		t.Fatal("solve should be retryable after a reported error")
	}
	session.Solve(context.Background())
	if *requests != 2 {
		t.Errorf("requests = %d, want 2", *requests)
	}
}

func TestDoubleScrambleTriggerIsNoOp(t *testing.T) {
	player := newFakePlayer()
	player.blockPlay = make(chan struct{})
	solver, _ := solverStub(t, http.StatusOK, `{"solution": ""}`)
	session := NewSession(player, solver)

	done := make(chan error, 1)
	go func() {
		done <- session.Scramble(context.Background(), "R U F")
	}()

	// Wait until the first sequence is inside its animation.
	select {
	case <-player.playStarted:
	case <-time.After(5 * time.Second):
		t.Fatal("first scramble never started playing")
	}

	if err := session.Scramble(context.Background(), "L D B"); !errors.Is(err, ErrBusy) {
		t.Fatalf("second Scramble error = %v, want ErrBusy", err)
	}
	if session.ScrambleEnabled() {
		t.Error("scramble should be disabled while a sequence is in flight")
	}

	close(player.blockPlay)
	if err := <-done; err != nil {
		t.Fatalf("first Scramble: %v", err)
	}

	player.mu.Lock()
	maxActive := player.maxActive
	player.mu.Unlock()
	if maxActive != 1 {
		t.Errorf("maxActive = %d, want 1 (no concurrent playback)", maxActive)
	}
	if got := session.CommittedScramble(); got != "R U F" {
		t.Errorf("CommittedScramble = %q, want the first trigger's input", got)
	}
}

func TestScrambleFailureKeepsStaleCommitted(t *testing.T) {
	player := newFakePlayer()
	solver, _ := solverStub(t, http.StatusOK, `{"solution": ""}`)
	session := NewSession(player, solver)

	if err := session.Scramble(context.Background(), "R U"); err != nil {
		t.Fatalf("Scramble: %v", err)
	}

	player.mu.Lock()
	player.failPlay = errors.New("widget detached")
	player.mu.Unlock()

	if err := session.Scramble(context.Background(), "F B"); err == nil {
		t.Fatal("expected scramble failure")
	}

	// Documented policy: the prior committed scramble stays solvable.
	if got := session.CommittedScramble(); got != "R U" {
		t.Errorf("CommittedScramble = %q, want stale %q", got, "R U")
	}
	if !session.SolveEnabled() {
		t.Error("solve should stay enabled against the stale scramble")
	}
	if !session.ScrambleEnabled() {
		t.Error("scramble must always be re-enabled after a failure")
	}
}

func TestScrambleFailureWithoutPriorCommitted(t *testing.T) {
	player := newFakePlayer()
	player.failPlay = errors.New("widget detached")
	solver, _ := solverStub(t, http.StatusOK, `{"solution": ""}`)
	session := NewSession(player, solver)

	if err := session.Scramble(context.Background(), "R U"); err == nil {
		t.Fatal("expected scramble failure")
	}
	if session.State() != StateIdle {
		t.Errorf("state = %v, want idle", session.State())
	}
	if session.SolveEnabled() {
		t.Error("solve should stay disabled with nothing committed")
	}
	if !session.ScrambleEnabled() {
		t.Error("scramble must be re-enabled after a failure")
	}
	if !strings.Contains(session.Status(), "widget detached") {
		t.Errorf("status = %q, want the failure surfaced verbatim", session.Status())
	}
}

func TestSolutionPlaybackFailureRestoresScrambled(t *testing.T) {
	player := newFakePlayer()
	solver, _ := solverStub(t, http.StatusOK, `{"solution": "R U R'"}`)
	session := NewSession(player, solver)

	if err := session.Scramble(context.Background(), "R U"); err != nil {
		t.Fatalf("Scramble: %v", err)
	}

	player.mu.Lock()
	player.failPlay = errors.New("animation aborted")
	player.mu.Unlock()

	if err := session.Solve(context.Background()); err == nil {
		t.Fatal("expected playback failure")
	}
	if session.State() != StateScrambled {
		t.Errorf("state = %v, want scrambled", session.State())
	}
	if !session.SolveEnabled() {
		t.Error("solve should be retryable after a playback failure")
	}
	if got := session.CommittedScramble(); got != "R U" {
		t.Errorf("CommittedScramble = %q, want preserved", got)
	}
}

func TestSolveAfterSolvedRejected(t *testing.T) {
	player := newFakePlayer()
	solver, requests := solverStub(t, http.StatusOK, `{"solution": "R'"}`)
	session := NewSession(player, solver)

	if err := session.Scramble(context.Background(), "R"); err != nil {
		t.Fatalf("Scramble: %v", err)
	}
	if err := session.Solve(context.Background()); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if err := session.Solve(context.Background()); !errors.Is(err, ErrNoScramble) {
		t.Fatalf("re-Solve error = %v, want ErrNoScramble", err)
	}
	if *requests != 1 {
		t.Errorf("requests = %d, want 1", *requests)
	}
}

func TestStatusAndTimingCallbacks(t *testing.T) {
	player := newFakePlayer()
	solver, _ := solverStub(t, http.StatusOK, `{"solution": "R'"}`)
	session := NewSession(player, solver)

	var mu sync.Mutex
	var statuses []string
	timings := 0
	session.SetStatusCallback(func(s string) {
		mu.Lock()
		statuses = append(statuses, s)
		mu.Unlock()
	})
	session.SetTimingCallback(func(string) {
		mu.Lock()
		timings++
		mu.Unlock()
	})

	if err := session.Scramble(context.Background(), "R"); err != nil {
		t.Fatalf("Scramble: %v", err)
	}
	if err := session.Solve(context.Background()); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(statuses) < 4 {
		t.Errorf("statuses = %q, want scramble and solve progression", statuses)
	}
	if timings != 1 {
		t.Errorf("timing updates = %d, want 1", timings)
	}
	if session.LastRoundTrip() <= 0 {
		t.Error("round trip should be measured")
	}
}
