package code4life

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codingame/internal/codingame"
)

func TestDecide(t *testing.T) {
	cheap := Sample{ID: 1, CarriedBy: Cloud, Rank: 1, Gain: "A", Health: 10, Cost: Stock{1, 1, 0, 0, 0}}
	rich := Sample{ID: 2, CarriedBy: Cloud, Rank: 2, Gain: "B", Health: 20, Cost: Stock{2, 0, 0, 0, 0}}
	tooDear := Sample{ID: 3, CarriedBy: Cloud, Rank: 3, Gain: "C", Health: 50, Cost: Stock{0, 0, 7, 0, 0}}
	undiagnosed := Sample{ID: 4, CarriedBy: Me, Rank: 1, Gain: "0", Health: -1, Cost: Stock{-1, -1, -1, -1, -1}}
	plenty := Stock{5, 5, 5, 5, 5}

	carried := func(s Sample) Sample {
		s.CarriedBy = Me
		return s
	}

	tests := []struct {
		name string
		st   State
		want string
	}{
		{
			name: "moving",
			st:   State{Me: Robot{Target: Molecules, ETA: 2}},
			want: "WAIT",
		},
		{
			name: "start",
			st:   State{Me: Robot{Target: StartPos}},
			want: "GOTO DIAGNOSIS",
		},
		{
			name: "diagnosis picks healthiest producible",
			st:   State{Me: Robot{Target: Diagnosis}, Available: plenty, Samples: []Sample{cheap, rich, tooDear}},
			want: "CONNECT 2",
		},
		{
			name: "diagnosis diagnoses first",
			st:   State{Me: Robot{Target: Diagnosis}, Available: plenty, Samples: []Sample{cheap, undiagnosed}},
			want: "CONNECT 4",
		},
		{
			name: "diagnosis hands back what cannot be made",
			st:   State{Me: Robot{Target: Diagnosis}, Available: Stock{}, Samples: []Sample{carried(cheap)}},
			want: "CONNECT 1",
		},
		{
			name: "diagnosis full hands goes to molecules",
			st: State{Me: Robot{Target: Diagnosis}, Available: plenty,
				Samples: []Sample{carried(cheap), carried(rich), carried(Sample{ID: 5, Health: 1, Cost: Stock{0, 0, 0, 0, 1}}), {ID: 6, CarriedBy: Cloud, Health: 30}}},
			want: "GOTO MOLECULES",
		},
		{
			name: "diagnosis hands back what does not fit in storage",
			st: State{Me: Robot{Target: Diagnosis, Storage: Stock{0, 5, 5, 0, 0}}, Available: plenty,
				Samples: []Sample{carried(Sample{ID: 7, Health: 10, Cost: Stock{3, 0, 0, 0, 0}})}},
			want: "CONNECT 7",
		},
		{
			name: "diagnosis skips cloud samples that do not fit",
			st:   State{Me: Robot{Target: Diagnosis, Storage: Stock{0, 5, 5, 0, 0}}, Available: plenty, Samples: []Sample{cheap, rich}},
			want: "GOTO SAMPLES",
		},
		{
			name: "diagnosis with nothing goes to samples",
			st:   State{Me: Robot{Target: Diagnosis}, Available: Stock{}, Samples: []Sample{tooDear}},
			want: "GOTO SAMPLES",
		},
		{
			name: "samples draws by expertise",
			st:   State{Me: Robot{Target: Samples, Expertise: Stock{2, 2, 1, 0, 0}}},
			want: "CONNECT 2",
		},
		{
			name: "samples full",
			st:   State{Me: Robot{Target: Samples}, Samples: []Sample{carried(cheap), carried(rich), undiagnosed}},
			want: "GOTO DIAGNOSIS",
		},
		{
			name: "molecules takes first missing",
			st:   State{Me: Robot{Target: Molecules, Storage: Stock{1, 0, 0, 0, 0}}, Available: plenty, Samples: []Sample{carried(cheap)}},
			want: "CONNECT B",
		},
		{
			name: "molecules reserves for earlier samples",
			st:   State{Me: Robot{Target: Molecules, Storage: Stock{1, 1, 0, 0, 0}}, Available: plenty, Samples: []Sample{carried(cheap), carried(rich)}},
			want: "CONNECT A",
		},
		{
			name: "molecules expertise covers cost",
			st:   State{Me: Robot{Target: Molecules, Expertise: Stock{1, 1, 0, 0, 0}}, Available: plenty, Samples: []Sample{carried(cheap)}},
			want: "GOTO LABORATORY",
		},
		{
			name: "molecules stuck with a complete sample",
			st:   State{Me: Robot{Target: Molecules, Storage: Stock{1, 1, 0, 0, 0}}, Samples: []Sample{carried(cheap), carried(rich)}},
			want: "GOTO LABORATORY",
		},
		{
			name: "molecules stuck",
			st:   State{Me: Robot{Target: Molecules}, Samples: []Sample{carried(rich)}},
			want: "GOTO DIAGNOSIS",
		},
		{
			name: "molecules storage full",
			st:   State{Me: Robot{Target: Molecules, Storage: Stock{0, 0, 0, 0, 10}}, Available: plenty, Samples: []Sample{carried(rich)}},
			want: "GOTO DIAGNOSIS",
		},
		{
			name: "laboratory delivers",
			st:   State{Me: Robot{Target: Laboratory, Storage: Stock{2, 0, 0, 0, 0}}, Samples: []Sample{carried(cheap), carried(rich)}},
			want: "CONNECT 2",
		},
		{
			name: "laboratory back for molecules",
			st:   State{Me: Robot{Target: Laboratory}, Samples: []Sample{carried(cheap)}},
			want: "GOTO MOLECULES",
		},
		{
			name: "laboratory empty handed",
			st:   State{Me: Robot{Target: Laboratory}},
			want: "GOTO DIAGNOSIS",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(&tt.st))
		})
	}
}

func TestDecideFullStorageDoesNotLoop(t *testing.T) {
	st := State{
		Me:        Robot{Target: Molecules, Storage: Stock{0, 5, 5, 0, 0}},
		Available: Stock{5, 5, 5, 5, 5},
		Samples:   []Sample{{ID: 7, CarriedBy: Me, Health: 10, Cost: Stock{3, 0, 0, 0, 0}}},
	}
	require.Equal(t, "GOTO DIAGNOSIS", Decide(&st))

	st.Me.Target = Diagnosis
	assert.Equal(t, "CONNECT 7", Decide(&st))
}

const turnInput = `DIAGNOSIS 0 0 0 0 0 0 0 0 0 0 0 0
START_POS 0 0 0 0 0 0 0 0 0 0 0 0
5 5 5 5 5
2
7 -1 1 A 10 1 0 0 0 0
8 -1 1 B 30 0 2 0 0 0
`

func TestReadState(t *testing.T) {
	st, err := ReadState(codingame.NewReader(strings.NewReader(turnInput)))
	require.NoError(t, err)

	assert.Equal(t, Diagnosis, st.Me.Target)
	assert.Equal(t, StartPos, st.Enemy.Target)
	assert.Equal(t, Stock{5, 5, 5, 5, 5}, st.Available)
	require.Len(t, st.Samples, 2)
	assert.Equal(t, Sample{ID: 8, CarriedBy: Cloud, Rank: 1, Gain: "B", Health: 30, Cost: Stock{0, 2, 0, 0, 0}}, st.Samples[1])

	_, err = ReadState(codingame.NewReader(strings.NewReader(turnInput[:40])))
	assert.Error(t, err)
}

func TestBotRun(t *testing.T) {
	in := "2\n0 0 1 1 1\n1 1 0 0 2\n" + turnInput + turnInput
	var out bytes.Buffer

	bot := NewBot(nil)
	require.NoError(t, codingame.Run(context.Background(), strings.NewReader(in), &out, bot))

	assert.Len(t, bot.projects, 2)
	assert.Equal(t, Project{1, 1, 0, 0, 2}, bot.projects[1])
	assert.Equal(t, "CONNECT 8\nCONNECT 8\n", out.String())
}
