package domain

import (
    "fmt"
    "strconv"
)

// Size is the number of rows and columns on an Othello board.
const Size = 8

const columns = "abcdefgh"

// Coordinate is a grid position. X selects the column, Y the row.
// The type itself accepts any value; use Valid to check it names a cell.
type Coordinate struct {
    X int
    Y int
}

// Valid reports whether c lies on the board.
func (c Coordinate) Valid() bool {
    return c.X >= 0 && c.Y >= 0 && c.X < Size && c.Y < Size
}

// Add steps c one unit along d.
func (c Coordinate) Add(d Direction) Coordinate {
    return Coordinate{X: c.X + d.DX, Y: c.Y + d.DY}
}

// String renders c as column letter plus 1-based row, e.g. "d3".
func (c Coordinate) String() string {
    if !c.Valid() {
        return fmt.Sprintf("(%d,%d)", c.X, c.Y)
    }
    return string(columns[c.X]) + strconv.Itoa(c.Y+1)
}

// ParseCoordinate is the inverse of Coordinate.String.
func ParseCoordinate(s string) (Coordinate, error) {
    if len(s) != 2 {
        return Coordinate{}, fmt.Errorf("%w: coordinate %q", ErrBadNotation, s)
    }
    col := s[0]
    if col >= 'A' && col <= 'H' {
        col += 'a' - 'A'
    }
    if col < 'a' || col > 'h' || s[1] < '1' || s[1] > '8' {
        return Coordinate{}, fmt.Errorf("%w: coordinate %q", ErrBadNotation, s)
    }
    return Coordinate{X: int(col - 'a'), Y: int(s[1] - '1')}, nil
}

// Direction is one of the eight unit steps between neighbouring cells.
type Direction struct {
    DX int
    DY int
}

var (
    Up        = Direction{0, -1}
    Down      = Direction{0, 1}
    Left      = Direction{-1, 0}
    Right     = Direction{1, 0}
    UpLeft    = Direction{-1, -1}
    UpRight   = Direction{1, -1}
    DownLeft  = Direction{-1, 1}
    DownRight = Direction{1, 1}
)

// Directions lists every direction in the order flips are searched.
var Directions = [8]Direction{Up, Down, Left, Right, UpLeft, UpRight, DownLeft, DownRight}
