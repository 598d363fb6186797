// Command dump-matches prints matches recorded by the arena.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/TwiN/go-color"
	"github.com/go-kit/log/level"

	"codingame/internal/arena"
	"codingame/internal/codingame"
)

var blockColors = map[byte]string{
	'0': color.Gray,
	'1': color.Red,
	'2': color.Green,
	'3': color.Blue,
	'4': color.Yellow,
	'5': color.Purple,
}

func main() {
	dbPath := flag.String("db", "data/matches.db", "Path to SQLite database")
	id := flag.String("id", "", "match to replay, lists recent matches when empty")
	limit := flag.Int("limit", 20, "matches to list")
	raw := flag.Bool("json", false, "print the move log as JSON")
	noColor := flag.Bool("no-color", false, "disable colored grids")
	flag.Parse()

	logger := codingame.NewLogger(os.Stderr, codingame.LevelFromEnv())
	if _, err := os.Stat(*dbPath); os.IsNotExist(err) {
		_ = level.Error(logger).Log("msg", "database not found", "path", *dbPath)
		os.Exit(1)
	}
	store, err := arena.OpenStore(*dbPath)
	if err != nil {
		_ = level.Error(logger).Log("msg", "open database", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	if *id == "" {
		err = list(ctx, store, *limit)
	} else {
		err = replay(ctx, store, *id, *raw, !*noColor)
	}
	if err != nil {
		_ = level.Error(logger).Log("err", err)
		store.Close()
		os.Exit(1)
	}
}

func list(ctx context.Context, store *arena.Store, limit int) error {
	matches, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	for _, m := range matches {
		printHeader(m)
		fmt.Println("--------------------------------------------------")
	}
	fmt.Printf("Total matches found: %d\n", len(matches))
	return nil
}

func printHeader(m arena.MatchRecord) {
	fmt.Printf("Match ID: %s\n", m.ID)
	fmt.Printf("Time: %s - %s\n", m.StartedAt.Local().Format(time.RFC822), m.EndedAt.Local().Format(time.RFC822))
	fmt.Printf("Players: %s vs %s\n", m.Player1, m.Player2)
	fmt.Printf("Score: %d - %d after %d turns\n", m.Score1, m.Score2, m.Turns)
	switch m.Winner {
	case 0:
		fmt.Printf("Result: %s wins (%s)\n", m.Player1, m.Termination)
	case 1:
		fmt.Printf("Result: %s wins (%s)\n", m.Player2, m.Termination)
	default:
		fmt.Printf("Result: draw (%s)\n", m.Termination)
	}
}

func replay(ctx context.Context, store *arena.Store, id string, raw, colored bool) error {
	m, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	printHeader(*m)
	turns, err := m.Moves()
	if err != nil {
		return err
	}
	if raw {
		formatted, err := json.MarshalIndent(turns, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(formatted))
		return nil
	}

	for _, t := range turns {
		fmt.Printf("\nTurn %d  pair %d%d\n", t.Turn, t.Pair[0], t.Pair[1])
		for p := 0; p < 2; p++ {
			fmt.Printf("  %-12q score %-6d chain %d  skulls %d", t.Commands[p], t.Scores[p], t.Chains[p], t.Skulls[p])
			if t.Errors[p] != "" {
				fmt.Print("  " + color.Ize(color.Red, t.Errors[p]))
			}
			fmt.Println()
		}
		printGrids(t.Grids, colored)
	}
	return nil
}

// printGrids shows both wells side by side.
func printGrids(grids [2][]string, colored bool) {
	rows := max(len(grids[0]), len(grids[1]))
	for i := 0; i < rows; i++ {
		var sb strings.Builder
		for p := 0; p < 2; p++ {
			line := ""
			if i < len(grids[p]) {
				line = grids[p][i]
			}
			sb.WriteString("  |")
			sb.WriteString(paint(line, colored))
			sb.WriteString("|")
		}
		fmt.Println(sb.String())
	}
}

func paint(line string, colored bool) string {
	if !colored {
		return line
	}
	var sb strings.Builder
	for i := 0; i < len(line); i++ {
		c, ok := blockColors[line[i]]
		if !ok {
			sb.WriteByte(line[i])
			continue
		}
		sb.WriteString(color.Ize(c, string(line[i])))
	}
	return sb.String()
}
