package domain

import (
    "errors"
    "fmt"
    "strings"
)

// Game holds the current state of an Othello match.
// A Game is not safe for concurrent use; callers serialise access.
type Game struct {
    board             Board
    toPlay            Checker // NoChecker once the game is over
    legalMoves        []Move
    consecutivePasses int
}

// Errors returned by domain operations.
var (
    ErrGameOver    = errors.New("game over")
    ErrIllegalMove = errors.New("illegal move")
    ErrBadNotation = errors.New("bad notation")
)

// New returns a new game on the starting board with X to move.
func New() Game {
    return newGameFrom(NewBoard(), X)
}

func newGameFrom(b Board, side Checker) Game {
    g := Game{board: b, toPlay: side}
    g.UpdateLegalMoves()
    return g
}

// Board returns a copy of the current board.
func (g *Game) Board() Board { return g.board }

// ToPlay returns the side to move, or false when the game is over.
func (g *Game) ToPlay() (Checker, bool) {
    return g.toPlay, g.toPlay != NoChecker
}

func (g *Game) Over() bool { return g.toPlay == NoChecker }

func (g *Game) ConsecutivePasses() int { return g.consecutivePasses }

// LegalMoves returns the moves available to the side to move.
// It is empty only when the game is over.
func (g *Game) LegalMoves() []Move {
    out := make([]Move, len(g.legalMoves))
    copy(out, g.legalMoves)
    return out
}

func (g *Game) IsLegal(m Move) bool {
    for _, lm := range g.legalMoves {
        if lm == m {
            return true
        }
    }
    return false
}

// PlayMove applies m for the side to move. A finished game returns
// ErrGameOver and a move outside LegalMoves returns ErrIllegalMove;
// in both cases nothing changes.
func (g *Game) PlayMove(m Move) error {
    player, ok := g.ToPlay()
    if !ok {
        return ErrGameOver
    }
    if !g.IsLegal(m) {
        return fmt.Errorf("%w: %s for %s", ErrIllegalMove, m, player)
    }

    if at, ok := m.Coordinate(); ok {
        g.board.Put(at, Occupied(player))
        for _, dir := range Directions {
            g.flipRun(at, player, dir)
        }
        g.consecutivePasses = 0
    } else {
        g.consecutivePasses++
    }

    if g.board.IsFull() || g.consecutivePasses == 2 {
        g.toPlay = NoChecker
    } else {
        g.toPlay = player.Opponent()
    }
    g.UpdateLegalMoves()
    return nil
}

// flipRun turns over the opponent run starting next to at along dir,
// but only when one of player's checkers closes it off.
func (g *Game) flipRun(at Coordinate, player Checker, dir Direction) {
    var run []Coordinate
    for c := at.Add(dir); c.Valid(); c = c.Add(dir) {
        ch, occupied := g.board.At(c).Checker()
        switch {
        case !occupied:
            return
        case ch == player:
            for _, f := range run {
                g.board.Put(f, g.board.At(f).Flipped())
            }
            return
        default:
            run = append(run, c)
        }
    }
}

// CountFlipped walks from origin along dir and returns how many opponent
// checkers side would flip there. Zero when the run hits an empty cell or the
// edge before a checker of side.
func (g *Game) CountFlipped(origin Coordinate, side Checker, dir Direction) int {
    count := 0
    for c := origin.Add(dir); c.Valid(); c = c.Add(dir) {
        ch, occupied := g.board.At(c).Checker()
        if !occupied {
            return 0
        }
        if ch == side {
            return count
        }
        count++
    }
    return 0
}

// UpdateLegalMoves recomputes the legal-move list for the side to move.
func (g *Game) UpdateLegalMoves() {
    side, ok := g.ToPlay()
    if !ok {
        g.legalMoves = nil
        return
    }
    moves := make([]Move, 0, 16)
    for y := 0; y < Size; y++ {
        for x := 0; x < Size; x++ {
            if !g.board.Get(x, y).IsEmpty() {
                continue
            }
            at := Coordinate{X: x, Y: y}
            for _, dir := range Directions {
                if g.CountFlipped(at, side, dir) > 0 {
                    moves = append(moves, Play(at))
                    break
                }
            }
        }
    }
    if len(moves) == 0 {
        moves = append(moves, Pass())
    }
    g.legalMoves = moves
}

// String renders the board, the side to move, the score and the legal moves.
func (g Game) String() string {
    var sb strings.Builder
    sb.WriteString(g.board.String())
    if side, ok := g.ToPlay(); ok {
        sb.WriteString("\n" + side.String() + " to play")
    }
    fmt.Fprintf(&sb, "\nX: %d O: %d", g.board.Count(X), g.board.Count(O))
    sb.WriteString("\nLegal moves:")
    for _, m := range g.legalMoves {
        sb.WriteString(" " + m.String())
    }
    return sb.String()
}
