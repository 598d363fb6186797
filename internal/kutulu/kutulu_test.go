package kutulu

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codingame/internal/codingame"
)

const maze = `7
5
#######
#.....#
#.#w#.#
#.....#
#######
`

func readMaze(t *testing.T, s string) *Grid {
	t.Helper()
	g, err := ReadGrid(codingame.NewReader(strings.NewReader(s)))
	require.NoError(t, err)
	return g
}

func TestReadGrid(t *testing.T) {
	g := readMaze(t, maze)
	assert.Equal(t, 7, g.Width)
	assert.Equal(t, 5, g.Height)
	assert.Equal(t, Wall, g.At(Pos{0, 0}))
	assert.Equal(t, Empty, g.At(Pos{5, 3}))
	assert.Equal(t, Spawn, g.At(Pos{3, 2}))
	assert.Equal(t, Wall, g.At(Pos{6, 4}))
	assert.Equal(t, Wall, g.At(Pos{7, 1}), "outside is wall")
	assert.True(t, g.Walkable(Pos{3, 2}))
	assert.Equal(t, strings.Join(strings.Split(maze, "\n")[2:], "\n"), g.String())

	for _, bad := range []string{"3\n1\n#x#\n", "3\n2\n###\n", "0\n1\n", "3\n1\n##\n"} {
		_, err := ReadGrid(codingame.NewReader(strings.NewReader(bad)))
		assert.Error(t, err, bad)
	}
}

func TestDistances(t *testing.T) {
	g := readMaze(t, maze)
	dist := g.Distances(Pos{1, 1})
	assert.Equal(t, 0, g.DistanceIn(dist, Pos{1, 1}))
	assert.Equal(t, 6, g.DistanceIn(dist, Pos{5, 3}))
	assert.Equal(t, 3, g.DistanceIn(dist, Pos{3, 2}))
	assert.Equal(t, Unreachable, g.DistanceIn(dist, Pos{0, 0}))
	assert.Equal(t, Unreachable, g.DistanceIn(dist, Pos{-1, 0}))

	wall := g.Distances(Pos{0, 0})
	assert.Equal(t, Unreachable, g.DistanceIn(wall, Pos{1, 1}))
}

func TestDecide(t *testing.T) {
	g := readMaze(t, maze)
	me := Entity{Type: Explorer, ID: 0, Pos: Pos{1, 1}, Params: [3]int{250, 2, 3}}

	tests := []struct {
		name   string
		others []Entity
		want   string
	}{
		{"alone", nil, "WAIT"},
		{"join a far explorer", []Entity{{Type: Explorer, ID: 1, Pos: Pos{5, 3}}}, "MOVE 2 1"},
		{"already together", []Entity{{Type: Explorer, ID: 1, Pos: Pos{2, 1}}}, "WAIT"},
		{"closest explorer wins", []Entity{
			{Type: Explorer, ID: 1, Pos: Pos{5, 3}},
			{Type: Explorer, ID: 2, Pos: Pos{1, 3}},
		}, "WAIT"},
		{"flee a wanderer", []Entity{
			{Type: Wanderer, ID: 5, Pos: Pos{3, 1}},
			{Type: Explorer, ID: 1, Pos: Pos{5, 3}},
		}, "MOVE 1 2"},
		{"wanderer far away", []Entity{
			{Type: Wanderer, ID: 5, Pos: Pos{5, 3}},
			{Type: Explorer, ID: 1, Pos: Pos{5, 1}},
		}, "MOVE 2 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(g, me, tt.others))
		})
	}
}

func TestDecideCornered(t *testing.T) {
	g := readMaze(t, "5\n3\n#####\n#...#\n#####\n")
	me := Entity{Type: Explorer, Pos: Pos{1, 1}}
	assert.Equal(t, "WAIT", Decide(g, me, []Entity{{Type: Wanderer, Pos: Pos{3, 1}}}))
}

func TestBotRun(t *testing.T) {
	in := maze + "3 1 3 40\n" +
		"2\nEXPLORER 0 1 1 250 2 3\nEXPLORER 1 5 3 250 2 3\n" +
		"2\nEXPLORER 0 2 1 247 2 3\nEXPLORER 1 5 3 247 2 3\n"
	var out bytes.Buffer

	bot := NewBot(nil)
	require.NoError(t, codingame.Run(context.Background(), strings.NewReader(in), &out, bot))
	assert.Equal(t, Rules{3, 1, 3, 40}, bot.rules)
	assert.Equal(t, "MOVE 2 1\nMOVE 3 1\n", out.String())
}
