package domain

import (
    "fmt"
    "strings"
)

// Move is either a pass or a placement. Moves compare with ==.
type Move struct {
    at   Coordinate
    play bool
}

// Pass returns the pass move.
func Pass() Move { return Move{} }

// Play returns the placement at c.
func Play(c Coordinate) Move { return Move{at: c, play: true} }

func (m Move) IsPass() bool { return !m.play }

// Coordinate returns where a placement lands; false for a pass.
func (m Move) Coordinate() (Coordinate, bool) {
    return m.at, m.play
}

func (m Move) String() string {
    if !m.play {
        return "PASS"
    }
    return "@" + m.at.String()
}

// ParseMove accepts "PASS", "@d3" or the bare "d3".
func ParseMove(s string) (Move, error) {
    s = strings.TrimSpace(s)
    if strings.EqualFold(s, "pass") {
        return Pass(), nil
    }
    c, err := ParseCoordinate(strings.TrimPrefix(s, "@"))
    if err != nil {
        return Move{}, fmt.Errorf("move %q: %w", s, err)
    }
    return Play(c), nil
}
