package domain

import (
    "math/rand"
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

// at is shorthand for a coordinate in board notation.
func at(t *testing.T, s string) Coordinate {
    t.Helper()
    c, err := ParseCoordinate(s)
    require.NoError(t, err)
    return c
}

// plays builds a move list from board notation.
func plays(t *testing.T, ss ...string) []Move {
    t.Helper()
    out := make([]Move, 0, len(ss))
    for _, s := range ss {
        m, err := ParseMove(s)
        require.NoError(t, err)
        out = append(out, m)
    }
    return out
}

// boardOf places checkers on an otherwise empty board.
func boardOf(xs, os []Coordinate) Board {
    var b Board
    for _, c := range xs {
        b.Put(c, Occupied(X))
    }
    for _, c := range os {
        b.Put(c, Occupied(O))
    }
    return b
}

func TestNewGameInitialState(t *testing.T) {
    g := New()
    side, ok := g.ToPlay()
    require.True(t, ok)
    assert.Equal(t, X, side)
    assert.False(t, g.Over())
    assert.Equal(t, 0, g.ConsecutivePasses())
    assert.Equal(t, plays(t, "d3", "c4", "f5", "e6"), g.LegalMoves())

    b := g.Board()
    assert.Equal(t, NewBoard(), b)
}

func TestPlayFlipsSingleRun(t *testing.T) {
    g := New()
    require.NoError(t, g.PlayMove(Play(Coordinate{X: 3, Y: 2})))

    b := g.Board()
    assert.Equal(t, Occupied(X), b.Get(3, 2))
    assert.Equal(t, Occupied(X), b.Get(3, 3))
    assert.Equal(t, Occupied(X), b.Get(3, 4))
    assert.Equal(t, Occupied(X), b.Get(4, 3))
    assert.Equal(t, Occupied(O), b.Get(4, 4))
    assert.Equal(t, 4, b.Count(X))
    assert.Equal(t, 1, b.Count(O))
    assert.Equal(t, 0, g.ConsecutivePasses())
    requireCountsConsistent(t, &b)

    side, ok := g.ToPlay()
    require.True(t, ok)
    assert.Equal(t, O, side)
    assert.Equal(t, plays(t, "c3", "e3", "c5"), g.LegalMoves())
}

func TestPlayFlipsEveryClosedDirection(t *testing.T) {
    b := boardOf(
        []Coordinate{at(t, "c1"), at(t, "a3"), at(t, "c3")},
        []Coordinate{at(t, "b1"), at(t, "a2"), at(t, "b2")},
    )
    g := newGameFrom(b, X)
    assert.Equal(t, plays(t, "a1"), g.LegalMoves())

    require.NoError(t, g.PlayMove(Play(at(t, "a1"))))
    nb := g.Board()
    assert.Equal(t, 7, nb.Count(X))
    assert.Equal(t, 0, nb.Count(O))
    requireCountsConsistent(t, &nb)
}

func TestOpenRunIsNotFlipped(t *testing.T) {
    b := boardOf(
        []Coordinate{at(t, "d1")},
        []Coordinate{at(t, "e1"), at(t, "g1"), at(t, "h1")},
    )
    g := newGameFrom(b, X)
    f1 := at(t, "f1")
    assert.Equal(t, 1, g.CountFlipped(f1, X, Left))
    assert.Equal(t, 0, g.CountFlipped(f1, X, Right), "run reaching the edge")
    assert.Equal(t, 0, g.CountFlipped(f1, X, Down), "empty neighbour")
    assert.Equal(t, 0, g.CountFlipped(f1, X, Up), "off the board")

    require.NoError(t, g.PlayMove(Play(f1)))
    nb := g.Board()
    assert.Equal(t, Occupied(X), nb.At(at(t, "e1")))
    assert.Equal(t, Occupied(X), nb.At(f1))
    assert.Equal(t, Occupied(O), nb.At(at(t, "g1")))
    assert.Equal(t, Occupied(O), nb.At(at(t, "h1")))
    requireCountsConsistent(t, &nb)
}

func TestCountFlippedAdjacentOwnCheckerIsZero(t *testing.T) {
    g := New()
    // c5 sits directly left of X on d5
    assert.Equal(t, 0, g.CountFlipped(Coordinate{X: 2, Y: 4}, X, Right))
    // d3 closes the O on d4 against X on d5
    assert.Equal(t, 1, g.CountFlipped(Coordinate{X: 3, Y: 2}, X, Down))
    assert.Equal(t, 0, g.CountFlipped(Coordinate{X: 3, Y: 2}, X, Up))
}

func TestIllegalMoveLeavesGameUnchanged(t *testing.T) {
    cases := []Move{
        Play(Coordinate{X: 0, Y: 0}),
        Play(Coordinate{X: 3, Y: 3}), // occupied
        Play(Coordinate{X: 9, Y: 9}), // off board
        Pass(),
    }
    for _, m := range cases {
        g := New()
        before := g.String()
        err := g.PlayMove(m)
        require.ErrorIs(t, err, ErrIllegalMove, m.String())
        assert.Equal(t, before, g.String(), m.String())
        assert.Equal(t, NewBoard(), g.Board())
    }
}

func TestTwoPassesEndTheGame(t *testing.T) {
    g := newGameFrom(boardOf([]Coordinate{at(t, "a1")}, []Coordinate{at(t, "h8")}), X)
    assert.Equal(t, []Move{Pass()}, g.LegalMoves())

    require.NoError(t, g.PlayMove(Pass()))
    assert.Equal(t, 1, g.ConsecutivePasses())
    side, ok := g.ToPlay()
    require.True(t, ok)
    assert.Equal(t, O, side)
    assert.Equal(t, []Move{Pass()}, g.LegalMoves())

    require.NoError(t, g.PlayMove(Pass()))
    assert.True(t, g.Over())
    _, ok = g.ToPlay()
    assert.False(t, ok)
    assert.Empty(t, g.LegalMoves())

    before := g.String()
    assert.ErrorIs(t, g.PlayMove(Pass()), ErrGameOver)
    assert.ErrorIs(t, g.PlayMove(Play(at(t, "d4"))), ErrGameOver)
    assert.Equal(t, before, g.String())
}

func TestPlayResetsConsecutivePasses(t *testing.T) {
    g := newGameFrom(boardOf([]Coordinate{at(t, "b1")}, []Coordinate{at(t, "a1")}), X)
    require.NoError(t, g.PlayMove(Pass()))
    assert.Equal(t, 1, g.ConsecutivePasses())
    assert.Equal(t, plays(t, "c1"), g.LegalMoves())

    require.NoError(t, g.PlayMove(Play(at(t, "c1"))))
    assert.Equal(t, 0, g.ConsecutivePasses())
    b := g.Board()
    assert.Equal(t, 0, b.Count(X))
    assert.Equal(t, 3, b.Count(O))

    // X has nothing left, O has nothing to flank
    require.NoError(t, g.PlayMove(Pass()))
    assert.False(t, g.Over())
    require.NoError(t, g.PlayMove(Pass()))
    assert.True(t, g.Over())
}

func TestFillingTheBoardEndsTheGame(t *testing.T) {
    var b Board
    for y := 0; y < Size; y++ {
        for x := 0; x < Size; x++ {
            b.Set(x, y, Occupied(O))
        }
    }
    b.Put(at(t, "f8"), Occupied(X))
    b.Put(at(t, "h8"), Empty)
    g := newGameFrom(b, X)
    assert.Equal(t, plays(t, "h8"), g.LegalMoves())

    require.NoError(t, g.PlayMove(Play(at(t, "h8"))))
    assert.Equal(t, 0, g.ConsecutivePasses())
    assert.True(t, g.Over())
    nb := g.Board()
    assert.True(t, nb.IsFull())
    assert.Equal(t, 3, nb.Count(X))
    assert.Equal(t, 61, nb.Count(O))
}

func TestUpdateLegalMovesIsIdempotent(t *testing.T) {
    g := New()
    require.NoError(t, g.PlayMove(Play(at(t, "d3"))))
    g.UpdateLegalMoves()
    first := g.LegalMoves()
    g.UpdateLegalMoves()
    assert.Equal(t, first, g.LegalMoves())
}

func TestLegalMovesReturnsCopy(t *testing.T) {
    g := New()
    ms := g.LegalMoves()
    ms[0] = Pass()
    assert.True(t, g.IsLegal(Play(at(t, "d3"))))
    assert.False(t, g.IsLegal(Pass()))
}

func TestGameString(t *testing.T) {
    g := New()
    s := g.String()
    b := g.Board()
    assert.True(t, strings.HasPrefix(s, b.String()))
    assert.True(t, strings.HasSuffix(s, "\nX to play\nX: 2 O: 2\nLegal moves: @d3 @c4 @f5 @e6"), s)

    over := newGameFrom(boardOf([]Coordinate{at(t, "a1")}, []Coordinate{at(t, "h8")}), X)
    require.NoError(t, over.PlayMove(Pass()))
    require.NoError(t, over.PlayMove(Pass()))
    s = over.String()
    assert.NotContains(t, s, "to play")
    assert.True(t, strings.HasSuffix(s, "\nX: 1 O: 1\nLegal moves:"), s)
}

// playOut drives g to the end with pick, checking invariants on every step.
func playOut(t *testing.T, g *Game, pick func([]Move) Move) {
    t.Helper()
    for turn := 0; !g.Over(); turn++ {
        require.Less(t, turn, 200, "game did not terminate")
        legal := g.LegalMoves()
        require.NotEmpty(t, legal)
        if len(legal) > 1 {
            for _, m := range legal {
                require.False(t, m.IsPass(), "pass offered beside placements")
            }
        }
        require.NoError(t, g.PlayMove(pick(legal)))
        b := g.Board()
        requireCountsConsistent(t, &b)
    }
    b := g.Board()
    assert.True(t, b.IsFull() || g.ConsecutivePasses() == 2)
    assert.Empty(t, g.LegalMoves())
}

func TestSelfPlayFirstLegalMove(t *testing.T) {
    g := New()
    playOut(t, &g, func(ms []Move) Move { return ms[0] })
}

func TestSelfPlayRandomGames(t *testing.T) {
    rng := rand.New(rand.NewSource(42))
    for i := 0; i < 20; i++ {
        g := New()
        playOut(t, &g, func(ms []Move) Move { return ms[rng.Intn(len(ms))] })
    }
}
