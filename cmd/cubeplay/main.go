// Cube Scramble Player - CLI application for scrambling a virtual cube and
// playing back solutions from a local solver service.
package main

import (
	"github.com/SeamusWaldron/cubeplay/internal/cli"
)

func main() {
	cli.Execute()
}
