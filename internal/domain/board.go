package domain

import (
    "fmt"
    "strconv"
    "strings"
)

// Board is the 8x8 grid plus a running count of checkers per side.
// Counts are only kept correct when cells are written through Set/Put.
type Board struct {
    cells  [Size][Size]Cell // [y][x]
    counts [3]int           // indexed by Checker
}

// NewBoard returns the standard starting position.
func NewBoard() Board {
    var b Board
    b.Set(3, 3, Occupied(O))
    b.Set(4, 4, Occupied(O))
    b.Set(3, 4, Occupied(X))
    b.Set(4, 3, Occupied(X))
    return b
}

// IsValid reports whether c names a cell on the board.
func (b *Board) IsValid(c Coordinate) bool {
    return c.Valid()
}

func (b *Board) Get(x, y int) Cell {
    mustBeOnBoard(x, y)
    return b.cells[y][x]
}

// Set writes a cell. The outgoing occupant is uncounted before the
// incoming one is counted, so rewriting a cell with its own value is neutral.
func (b *Board) Set(x, y int, c Cell) {
    mustBeOnBoard(x, y)
    if ch, ok := b.cells[y][x].Checker(); ok {
        b.counts[ch]--
    }
    if ch, ok := c.Checker(); ok {
        b.counts[ch]++
    }
    b.cells[y][x] = c
}

func (b *Board) At(c Coordinate) Cell { return b.Get(c.X, c.Y) }

func (b *Board) Put(c Coordinate, cell Cell) { b.Set(c.X, c.Y, cell) }

// Count returns how many cells ch occupies.
func (b *Board) Count(ch Checker) int {
    if ch != X && ch != O {
        return 0
    }
    return b.counts[ch]
}

func (b *Board) IsFull() bool {
    return b.counts[X]+b.counts[O] == Size*Size
}

// String draws the board with column letters and row numbers around it.
func (b Board) String() string {
    var sb strings.Builder
    border := " +" + strings.Repeat("-", Size) + "+\n"
    sb.WriteString("  " + columns + "\n")
    sb.WriteString(border)
    for y := 0; y < Size; y++ {
        row := strconv.Itoa(y + 1)
        sb.WriteString(row + "|")
        for x := 0; x < Size; x++ {
            sb.WriteString(b.cells[y][x].String())
        }
        sb.WriteString("|" + row + "\n")
    }
    sb.WriteString(border)
    sb.WriteString("  " + columns)
    return sb.String()
}

func mustBeOnBoard(x, y int) {
    if x < 0 || y < 0 || x >= Size || y >= Size {
        panic(fmt.Sprintf("domain: cell (%d,%d) is off the board", x, y))
    }
}
