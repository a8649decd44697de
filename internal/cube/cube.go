// Package cube provides a 3x3 facelet cube model used to render playback.
package cube

import (
	"strings"

	"github.com/SeamusWaldron/cubeplay"
)

// Color represents a facelet color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Face indexes the six cube faces.
type Face int

const (
	U Face = 0 // Up (White)
	D Face = 1 // Down (Yellow)
	F Face = 2 // Front (Green)
	B Face = 3 // Back (Blue)
	R Face = 4 // Right (Red)
	L Face = 5 // Left (Orange)
)

// Cube represents a 3x3 cube. Each face has 9 facelets indexed as:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// The center (index 4) defines the face color and never moves.
type Cube struct {
	// Facelets[face][position] = color
	Facelets [6][9]Color
}

// New creates a solved cube with standard orientation:
// White on top, Green in front.
func New() *Cube {
	c := &Cube{}
	for face := Face(0); face < 6; face++ {
		color := solvedColor(face)
		for i := 0; i < 9; i++ {
			c.Facelets[face][i] = color
		}
	}
	return c
}

// solvedColor returns the color of a face when solved.
func solvedColor(f Face) Color {
	switch f {
	case U:
		return White
	case D:
		return Yellow
	case F:
		return Green
	case B:
		return Blue
	case R:
		return Red
	case L:
		return Orange
	default:
		return White
	}
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// IsSolved returns true if the cube is in the solved state.
func (c *Cube) IsSolved() bool {
	for face := Face(0); face < 6; face++ {
		want := solvedColor(face)
		for i := 0; i < 9; i++ {
			if c.Facelets[face][i] != want {
				return false
			}
		}
	}
	return true
}

// ApplyMove applies a single notation move to the cube.
func (c *Cube) ApplyMove(m cubeplay.Move) {
	face := notationFace(m.Face)
	switch m.Turn {
	case cubeplay.CW:
		c.turnCW(face)
	case cubeplay.CCW:
		// CCW is CW three times.
		c.turnCW(face)
		c.turnCW(face)
		c.turnCW(face)
	case cubeplay.Double:
		c.turnCW(face)
		c.turnCW(face)
	}
}

// ApplyMoves applies a sequence of moves to the cube.
func (c *Cube) ApplyMoves(moves []cubeplay.Move) {
	for _, m := range moves {
		c.ApplyMove(m)
	}
}

// StateAt returns the cube state reached by applying the first n moves of
// the sequence to a solved cube. Used to reposition a playback cursor
// without animating.
func StateAt(moves []cubeplay.Move, n int) *Cube {
	if n > len(moves) {
		n = len(moves)
	}
	c := New()
	c.ApplyMoves(moves[:n])
	return c
}

// notationFace converts a notation face to a facelet face index.
func notationFace(f cubeplay.Face) Face {
	switch f {
	case cubeplay.FaceU:
		return U
	case cubeplay.FaceD:
		return D
	case cubeplay.FaceF:
		return F
	case cubeplay.FaceB:
		return B
	case cubeplay.FaceR:
		return R
	case cubeplay.FaceL:
		return L
	default:
		return U
	}
}

// turnCW applies one clockwise quarter turn of a face: the face's own
// facelets rotate and the adjacent strip cycles.
func (c *Cube) turnCW(face Face) {
	c.rotateFaceCW(face)
	c.cycleStripCW(face)
}

// rotateFaceCW rotates a face's nine facelets 90 degrees clockwise.
func (c *Cube) rotateFaceCW(face Face) {
	f := &c.Facelets[face]
	// Corners: 0->2->8->6->0, edges: 1->5->7->3->1
	f[0], f[2], f[8], f[6] = f[6], f[0], f[2], f[8]
	f[1], f[5], f[7], f[3] = f[3], f[1], f[5], f[7]
}

// strip identifies three facelets on one face.
type strip struct {
	face Face
	idx  [3]int
}

// stripsFor returns the four adjacent strips cycled by a clockwise turn of
// face, in cycle order.
func stripsFor(face Face) [4]strip {
	switch face {
	case U:
		return [4]strip{
			{F, [3]int{0, 1, 2}},
			{L, [3]int{0, 1, 2}},
			{B, [3]int{0, 1, 2}},
			{R, [3]int{0, 1, 2}},
		}
	case D:
		return [4]strip{
			{F, [3]int{6, 7, 8}},
			{R, [3]int{6, 7, 8}},
			{B, [3]int{6, 7, 8}},
			{L, [3]int{6, 7, 8}},
		}
	case F:
		return [4]strip{
			{U, [3]int{6, 7, 8}},
			{R, [3]int{0, 3, 6}},
			{D, [3]int{2, 1, 0}},
			{L, [3]int{8, 5, 2}},
		}
	case B:
		return [4]strip{
			{U, [3]int{2, 1, 0}},
			{L, [3]int{0, 3, 6}},
			{D, [3]int{6, 7, 8}},
			{R, [3]int{8, 5, 2}},
		}
	case R:
		return [4]strip{
			{U, [3]int{2, 5, 8}},
			{B, [3]int{6, 3, 0}},
			{D, [3]int{2, 5, 8}},
			{F, [3]int{2, 5, 8}},
		}
	default: // L
		return [4]strip{
			{U, [3]int{0, 3, 6}},
			{F, [3]int{0, 3, 6}},
			{D, [3]int{0, 3, 6}},
			{B, [3]int{8, 5, 2}},
		}
	}
}

// cycleStripCW cycles the four adjacent strips of a face clockwise.
func (c *Cube) cycleStripCW(face Face) {
	s := stripsFor(face)

	var saved [3]Color
	for i := 0; i < 3; i++ {
		saved[i] = c.Facelets[s[0].face][s[0].idx[i]]
	}
	for i := 0; i < 3; i++ {
		c.Facelets[s[0].face][s[0].idx[i]] = c.Facelets[s[3].face][s[3].idx[i]]
	}
	for i := 0; i < 3; i++ {
		c.Facelets[s[3].face][s[3].idx[i]] = c.Facelets[s[2].face][s[2].idx[i]]
	}
	for i := 0; i < 3; i++ {
		c.Facelets[s[2].face][s[2].idx[i]] = c.Facelets[s[1].face][s[1].idx[i]]
	}
	for i := 0; i < 3; i++ {
		c.Facelets[s[1].face][s[1].idx[i]] = saved[i]
	}
}

// String returns a flat-net text representation of the cube.
func (c *Cube) String() string {
	var b strings.Builder

	// U face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(c.Facelets[U][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, face := range []Face{L, F, R, B} {
			for col := 0; col < 3; col++ {
				b.WriteString(c.Facelets[face][row*3+col].String() + " ")
			}
		}
		b.WriteString("\n")
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(c.Facelets[D][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	return b.String()
}
