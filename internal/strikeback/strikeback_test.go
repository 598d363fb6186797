package strikeback

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codingame/internal/codingame"
)

func TestThrust(t *testing.T) {
	tests := []struct {
		dist, angle int
		want        int
	}{
		{3000, 0, 100},
		{240, 0, 80},
		{9, 0, 5},
		{3000, 91, 0},
		{3000, -120, 0},
		{3000, -90, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Thrust(State{NextDist: tt.dist, NextAngle: tt.angle}), "dist %d angle %d", tt.dist, tt.angle)
	}
}

func TestBoostOnce(t *testing.T) {
	var p Pilot
	st := State{NextX: 8000, NextY: 4000, NextDist: 5000, NextAngle: 3}

	assert.Equal(t, "8000 4000 BOOST", p.Command(st))
	assert.Equal(t, "8000 4000 100", p.Command(st))
}

func TestNoBoost(t *testing.T) {
	tests := []struct {
		name string
		st   State
	}{
		{"turning", State{NextDist: 5000, NextAngle: 10}},
		{"too close", State{NextDist: 200, NextAngle: 0}},
		{"slowing", State{NextDist: 250, NextAngle: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Pilot
			assert.NotContains(t, p.Command(tt.st), "BOOST")
			assert.False(t, p.boosted)
		})
	}
}

func TestBotRun(t *testing.T) {
	in := "100 100 8000 100 7900 0\n5 5\n" +
		"900 100 8000 100 7100 45\n5 5\n" +
		"1000 100 8000 100 150 120\n5 5\n"
	var out bytes.Buffer
	require.NoError(t, codingame.Run(context.Background(), strings.NewReader(in), &out, NewBot(nil)))
	assert.Equal(t, "8000 100 BOOST\n8000 100 100\n8000 100 0\n", out.String())
}
