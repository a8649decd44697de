// Package cubeplay coordinates scramble entry, remote solving, and
// animated playback for a twisty puzzle.
//
// The core type is Session: it commits a user-entered scramble by playing
// it on a Player (any animated puzzle widget), requests a solution for the
// committed scramble from a remote solver over HTTP, and plays the
// solution back starting from the scrambled position.
//
// # Quick Start
//
//	player := &cubeplay.NopPlayer{}
//	solver := cubeplay.NewSolverClient("http://127.0.0.1:5002")
//	session := cubeplay.NewSession(player, solver)
//
//	ctx := context.Background()
//	if err := session.Scramble(ctx, "R U2 F'"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := session.Solve(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(session.LastSolution())
//
// # The Player contract
//
// A Player exposes an algorithm string, an integer playback cursor, and a
// blocking play-to-end operation. The session is the only writer: it never
// starts a second scramble or solve sequence while one is in flight, so a
// Player does not need its own locking against the session.
//
// # Solver protocol
//
// The solver is reached with GET <base>/solve?scramble=<escaped> and
// answers with a JSON object carrying either a "solution" field (possibly
// the empty string, meaning the puzzle is already solved) or an "error"
// field. Both failure shapes surface as distinct typed errors.
package cubeplay
