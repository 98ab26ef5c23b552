package domain

import "fmt"

// Checker identifies a side. The zero value is no side at all.
type Checker uint8

const (
    NoChecker Checker = iota
    X
    O
)

// Flipped returns the other side.
func (ch Checker) Flipped() Checker {
    switch ch {
    case X:
        return O
    case O:
        return X
    default:
        panic(fmt.Sprintf("domain: Flipped on invalid checker %d", uint8(ch)))
    }
}

// Opponent is Flipped under the name that reads better at turn changes.
func (ch Checker) Opponent() Checker {
    return ch.Flipped()
}

func (ch Checker) String() string {
    switch ch {
    case X:
        return "X"
    case O:
        return "O"
    default:
        return "-"
    }
}

// Cell is the content of one board square: Empty or occupied by a checker.
type Cell uint8

const Empty Cell = 0

// Occupied returns the cell holding ch.
func Occupied(ch Checker) Cell {
    if ch != X && ch != O {
        panic(fmt.Sprintf("domain: Occupied with invalid checker %d", uint8(ch)))
    }
    return Cell(ch)
}

// Checker returns the occupant, or false for an empty cell.
func (c Cell) Checker() (Checker, bool) {
    if c == Empty {
        return NoChecker, false
    }
    return Checker(c), true
}

func (c Cell) IsEmpty() bool { return c == Empty }

// Flipped swaps the occupant's colour. Empty stays empty.
func (c Cell) Flipped() Cell {
    ch, ok := c.Checker()
    if !ok {
        return c
    }
    return Occupied(ch.Flipped())
}

func (c Cell) String() string {
    if ch, ok := c.Checker(); ok {
        return ch.String()
    }
    return " "
}
