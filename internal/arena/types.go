// Package arena runs local SmashTheCode matches between two bot programs,
// records them in sqlite and streams them to websocket spectators.
package arena

import "time"

// Termination tells how a match ended.
type Termination string

const (
	TermMaxTurns  Termination = "max_turns"
	TermInvalid   Termination = "invalid_output"
	TermPlacement Termination = "invalid_placement"
	TermTimeout   Termination = "timeout"
	TermCrash     Termination = "crash"
	TermAborted   Termination = "aborted"
)

// Draw is the Winner of a tied match.
const Draw = -1

// Outcome is the result of a finished match. Winner is the seat index 0 or
// 1, or Draw.
type Outcome struct {
	Winner      int
	Termination Termination
	Turns       int
	Scores      [2]int
}

// TurnRecord is one turn of a match as stored in the move log and pushed to
// spectators.
type TurnRecord struct {
	Turn     int         `json:"turn"`
	Pair     [2]int      `json:"pair"`
	Commands [2]string   `json:"commands"`
	Scores   [2]int      `json:"scores"`
	Chains   [2]int      `json:"chains"`
	Skulls   [2]int      `json:"skulls"` // pending skulls after the turn
	Grids    [2][]string `json:"grids"`  // top line first
	Errors   [2]string   `json:"errors,omitempty"`
}

// Message types sent to spectators
const (
	MsgTurn     = "turn"
	MsgMatchEnd = "match_end"
)

// Message is the spectator wire format.
type Message struct {
	Type        string      `json:"type"`
	MatchID     string      `json:"matchId"`
	Players     [2]string   `json:"players,omitempty"`
	Turn        *TurnRecord `json:"turn,omitempty"`
	Winner      *int        `json:"winner,omitempty"`
	Termination Termination `json:"termination,omitempty"`
}

// MatchRecord is a stored match.
type MatchRecord struct {
	ID          string    `db:"id" json:"id"`
	StartedAt   time.Time `db:"started_at" json:"startedAt"`
	EndedAt     time.Time `db:"ended_at" json:"endedAt"`
	Player1     string    `db:"player1" json:"player1"`
	Player2     string    `db:"player2" json:"player2"`
	Winner      int       `db:"winner" json:"winner"`
	Score1      int       `db:"score1" json:"score1"`
	Score2      int       `db:"score2" json:"score2"`
	Turns       int       `db:"turns" json:"turns"`
	Termination string    `db:"termination" json:"termination"`
	LogJSON     string    `db:"log_json" json:"-"`
}
