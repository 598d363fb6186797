// Package code4life plays Code4Life: a robot collects samples, gathers the
// molecules they cost and turns them into medicine at the laboratory.
package code4life

import (
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"codingame/internal/codingame"
)

// Module is a station the robot can stand at.
type Module string

const (
	StartPos   Module = "START_POS"
	Samples    Module = "SAMPLES"
	Diagnosis  Module = "DIAGNOSIS"
	Molecules  Module = "MOLECULES"
	Laboratory Module = "LABORATORY"
)

// MoleculeTypes is the number of molecule kinds, named A to E.
const MoleculeTypes = 5

// MaxStorage is how many molecules a robot carries at most.
const MaxStorage = 10

// MaxSamples is how many samples a robot carries at most.
const MaxSamples = 3

// Carrier values of Sample.CarriedBy.
const (
	Me    = 0
	Enemy = 1
	Cloud = -1
)

// Stock is a count per molecule type.
type Stock [MoleculeTypes]int

func (s Stock) Total() int {
	n := 0
	for _, v := range s {
		n += v
	}
	return n
}

func moleculeName(i int) string { return string(rune('A' + i)) }

type Robot struct {
	Target    Module
	ETA       int
	Score     int
	Storage   Stock
	Expertise Stock
}

type Sample struct {
	ID        int
	CarriedBy int
	Rank      int
	Gain      string
	Health    int
	Cost      Stock
}

// Diagnosed reports whether the sample cost is known.
func (s Sample) Diagnosed() bool { return s.Health >= 0 && s.Cost[0] >= 0 }

// Need is what the sample still costs once expertise is deducted.
func (s Sample) Need(expertise Stock) Stock {
	var need Stock
	for i := range need {
		need[i] = max(0, s.Cost[i]-expertise[i])
	}
	return need
}

// Project is a science project: an expertise threshold per molecule.
type Project Stock

// State is one turn of input.
type State struct {
	Me        Robot
	Enemy     Robot
	Available Stock
	Samples   []Sample
}

// Carried returns the samples held by the robot with the given carrier id,
// in input order.
func (st *State) Carried(by int) []Sample {
	var out []Sample
	for _, s := range st.Samples {
		if s.CarriedBy == by {
			out = append(out, s)
		}
	}
	return out
}

func readStock(r *codingame.Reader) (Stock, error) {
	var s Stock
	vals, err := r.Ints(MoleculeTypes)
	if err != nil {
		return s, err
	}
	copy(s[:], vals)
	return s, nil
}

func readRobot(r *codingame.Reader) (Robot, error) {
	var rb Robot
	var target string
	if err := r.Scan(&target, &rb.ETA, &rb.Score); err != nil {
		return rb, err
	}
	rb.Target = Module(target)
	var err error
	if rb.Storage, err = readStock(r); err != nil {
		return rb, err
	}
	if rb.Expertise, err = readStock(r); err != nil {
		return rb, err
	}
	return rb, nil
}

// ReadState parses one turn: two robot lines, the available molecules and
// the sample list.
func ReadState(r *codingame.Reader) (State, error) {
	var st State
	var err error
	if st.Me, err = readRobot(r); err != nil {
		return st, fmt.Errorf("my robot: %w", err)
	}
	if st.Enemy, err = readRobot(r); err != nil {
		return st, fmt.Errorf("enemy robot: %w", err)
	}
	if st.Available, err = readStock(r); err != nil {
		return st, fmt.Errorf("available: %w", err)
	}
	n, err := r.Int()
	if err != nil {
		return st, fmt.Errorf("sample count: %w", err)
	}
	st.Samples = make([]Sample, n)
	for i := range st.Samples {
		s := &st.Samples[i]
		if err := r.Scan(&s.ID, &s.CarriedBy, &s.Rank, &s.Gain, &s.Health); err != nil {
			return st, fmt.Errorf("sample %d: %w", i, err)
		}
		if s.Cost, err = readStock(r); err != nil {
			return st, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return st, nil
}

// Bot plays Code4Life over the judge protocol.
type Bot struct {
	logger   log.Logger
	projects []Project
	turn     int
}

func NewBot(logger log.Logger) *Bot {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Bot{logger: logger}
}

// Init reads the science projects.
func (b *Bot) Init(r *codingame.Reader) error {
	n, err := r.Int()
	if err != nil {
		return err
	}
	b.projects = make([]Project, n)
	for i := range b.projects {
		s, err := readStock(r)
		if err != nil {
			return fmt.Errorf("project %d: %w", i, err)
		}
		b.projects[i] = Project(s)
	}
	_ = level.Debug(b.logger).Log("msg", "projects", "count", n)
	return nil
}

func (b *Bot) Turn(r *codingame.Reader, w io.Writer) error {
	st, err := ReadState(r)
	if err != nil {
		return err
	}
	b.turn++

	cmd := Decide(&st)
	_ = level.Debug(b.logger).Log("turn", b.turn, "at", st.Me.Target, "eta", st.Me.ETA,
		"storage", st.Me.Storage.Total(), "carried", len(st.Carried(Me)), "cmd", cmd)
	_, err = fmt.Fprintln(w, cmd)
	return err
}
