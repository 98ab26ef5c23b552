// Command othello replays a list of moves through the game host and prints
// the board after each one.
//
//    othello -moves "d3 c3 c4"
//    echo "d3 c3 PASS" | othello -v
package main

import (
    "bufio"
    "flag"
    "fmt"
    "io"
    "os"
    "strings"

    "github.com/jaminalder/codex-othello/internal/app"
    "github.com/jaminalder/codex-othello/internal/domain"
    "go.uber.org/zap"
)

const (
    playerX = "player-x"
    playerO = "player-o"
)

func main() {
    moves := flag.String("moves", "", "space separated moves to replay, e.g. \"d3 c3 PASS\"; read from stdin when empty")
    verbose := flag.Bool("v", false, "debug logging")
    flag.Parse()

    log, err := newLogger(*verbose)
    if err != nil {
        fmt.Fprintln(os.Stderr, "logger:", err)
        os.Exit(1)
    }
    defer func() { _ = log.Sync() }()

    var src io.Reader = os.Stdin
    if *moves != "" {
        src = strings.NewReader(*moves)
    }
    if err := run(src, os.Stdout, log); err != nil {
        log.Error("replay stopped", zap.Error(err))
        os.Exit(1)
    }
}

func newLogger(verbose bool) (*zap.Logger, error) {
    if verbose {
        return zap.NewDevelopment()
    }
    cfg := zap.NewProductionConfig()
    cfg.OutputPaths = []string{"stderr"}
    return cfg.Build()
}

// run hosts one game with both seats taken locally and feeds it every
// whitespace separated token from src, acting for whichever side is to move.
func run(src io.Reader, out io.Writer, log *zap.Logger) error {
    svc := app.NewService()
    svc.SetLogger(log)
    gs, err := svc.CreateGame()
    if err != nil {
        return err
    }
    if _, _, err := svc.Join(gs.ID, playerX); err != nil {
        return err
    }
    if _, gs, err = svc.Join(gs.ID, playerO); err != nil {
        return err
    }
    fmt.Fprintln(out, gs.Game.String())

    seats := map[domain.Checker]string{domain.X: playerX, domain.O: playerO}
    sc := bufio.NewScanner(src)
    sc.Split(bufio.ScanWords)
    for sc.Scan() {
        m, err := domain.ParseMove(sc.Text())
        if err != nil {
            return err
        }
        side, ok := gs.Game.ToPlay()
        if !ok {
            return fmt.Errorf("move %s: %w", m, domain.ErrGameOver)
        }
        gs, err = svc.Play(gs.ID, seats[side], m)
        if err != nil {
            return fmt.Errorf("move %s: %w", m, err)
        }
        fmt.Fprintf(out, "\n%s plays %s\n%s\n", side, m, gs.Game.String())
    }
    return sc.Err()
}
