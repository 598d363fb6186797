package smash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace(t *testing.T) {
	pair := Pair{A: Color1, B: Color2}
	tests := []struct {
		name    string
		p       Placement
		want    Landing
		wantErr error
	}{
		{"right", Placement{0, 0}, Landing{A: Cell{0, 0}, B: Cell{0, 1}}, nil},
		{"above", Placement{0, 1}, Landing{A: Cell{0, 0}, B: Cell{1, 0}}, nil},
		{"left", Placement{1, 2}, Landing{A: Cell{0, 1}, B: Cell{0, 0}}, nil},
		{"below", Placement{0, 3}, Landing{A: Cell{1, 0}, B: Cell{0, 0}}, nil},
		{"right off the well", Placement{Cols - 1, 0}, Landing{}, ErrInvalidPlacement},
		{"left off the well", Placement{0, 2}, Landing{}, ErrInvalidPlacement},
		{"bad rotation", Placement{2, 4}, Landing{}, ErrInvalidPlacement},
		{"bad column", Placement{-1, 1}, Landing{}, ErrInvalidPlacement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Grid
			got, err := g.Place(tt.p, pair)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Grid{}, g)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, Color1, g.Get(got.A.Row, got.A.Col))
			assert.Equal(t, Color2, g.Get(got.B.Row, got.B.Col))
		})
	}
}

func TestPlaceNeedsRoom(t *testing.T) {
	rows := make([]string, Rows-1)
	for i := range rows {
		rows[i] = "0....."
	}
	g := fromBottom(rows...)
	before := g

	_, err := g.Place(Placement{0, 1}, Pair{Color1, Color2})
	assert.ErrorIs(t, err, ErrColumnFull)
	assert.Equal(t, before, g)

	land, err := g.Place(Placement{0, 0}, Pair{Color1, Color2})
	require.NoError(t, err)
	assert.Equal(t, Cell{Rows - 1, 0}, land.A)
	assert.Equal(t, Cell{0, 1}, land.B)
}

func TestPlacements(t *testing.T) {
	assert.Len(t, Placements, 24)
	assert.Equal(t, Placement{0, 0}, Placements[0])
	assert.Equal(t, Placement{Cols - 1, Rotations - 1}, Placements[23])
	assert.Equal(t, "3 1", Placement{3, 1}.String())

	valid := 0
	for _, p := range Placements {
		var g Grid
		if _, err := g.Place(p, Pair{Color1, Color1}); err == nil {
			valid++
		}
	}
	assert.Equal(t, 22, valid)
}

func TestRate(t *testing.T) {
	var empty Grid
	assert.Equal(t, 0, empty.Rate())

	single := fromBottom("1.....")
	assert.Equal(t, 0, single.Rate())

	// vertical pair: 128 for the pair, three height steps of two
	pair := fromBottom("1.....", "1.....")
	assert.Equal(t, 128*rateUnit+3*32*rateUnit, pair.Rate())

	// skull touching one color, no height step
	skull := fromBottom("01....")
	assert.Equal(t, rateUnit, skull.Rate())
}

func TestRatePrefersConnectedColors(t *testing.T) {
	together := fromBottom("11....")
	apart := fromBottom("1.1...")
	assert.Greater(t, together.Rate(), apart.Rate())
}

func TestNextMaxScore(t *testing.T) {
	g := fromBottom("111...")
	assert.Equal(t, 50, NextMaxScore(g, Pair{Color1, Color1}))
	assert.Equal(t, 40, NextMaxScore(g, Pair{Color1, Color2}))
	assert.Equal(t, 0, NextMaxScore(g, Pair{Color2, Color3}))
}

func pairsOf(p Pair) []Pair {
	out := make([]Pair, Incoming)
	for i := range out {
		out[i] = p
	}
	return out
}

func TestBestTakesTheChain(t *testing.T) {
	g := fromBottom("111...")
	pairs := pairsOf(Pair{Color1, Color4})

	move, err := NewEngine(Settings{MaxDepth: 0}, nil).Best(context.Background(), g, pairs)
	require.NoError(t, err)

	after := g
	_, err = after.Place(move.Placement, pairs[0])
	require.NoError(t, err)
	assert.Equal(t, 40, after.Resolve().Score)
}

func TestBestSearchesAllDepths(t *testing.T) {
	var g Grid
	pairs := pairsOf(Pair{Color2, Color3})

	move, err := NewEngine(Settings{MaxDepth: 2, DepthBonus: 1}, nil).Best(context.Background(), g, pairs)
	require.NoError(t, err)
	assert.Equal(t, 2, move.Depth)

	move, err = NewEngine(Settings{MaxDepth: 5}, nil).Best(context.Background(), g, pairs[:2])
	require.NoError(t, err)
	assert.Equal(t, 1, move.Depth, "depth is capped by the known pairs")
}

func TestBestKeepsShallowResultOnDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var g Grid
	move, err := NewEngine(Settings{MaxDepth: 2}, nil).Best(ctx, g, pairsOf(Pair{Color2, Color3}))
	require.NoError(t, err)
	assert.Equal(t, 0, move.Depth)
}

func TestBestFullGrid(t *testing.T) {
	rows := make([]string, Rows)
	for i := range rows {
		rows[i] = "000000"
	}
	move, err := NewEngine(Settings{MaxDepth: 1}, nil).Best(context.Background(), fromBottom(rows...), pairsOf(Pair{Color1, Color2}))
	assert.ErrorIs(t, err, ErrNoPlacement)
	assert.Equal(t, Placement{0, 0}, move.Placement)
}

func TestBestNoPairs(t *testing.T) {
	_, err := NewEngine(Settings{}, nil).Best(context.Background(), Grid{}, nil)
	assert.Error(t, err)
}
