package domain

import (
	"encoding/json"
	"time"
)

type PuzzleKind string

const (
	PuzzleKindScheduling     PuzzleKind = "sched"
	PuzzleKindPrioritization PuzzleKind = "prio"
	PuzzleKindMeetingSum     PuzzleKind = "meeting-sum"
	PuzzleKindTeamSplit      PuzzleKind = "team-split"
	PuzzleKindDeploy         PuzzleKind = "deploy"
)

type DailyPuzzle struct {
	ID               int64           `json:"id"`
	DateKey          string          `json:"date"`
	Kind             PuzzleKind      `json:"kind"`
	Seed             string          `json:"seed"`
	Problem          json.RawMessage `json:"problem"`
	OptimalObjective int             `json:"optimalObjective"`
	CreatedAt        time.Time       `json:"createdAt"`
	Version          int32           `json:"-"`
}

type PuzzleResult struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userID"`
	DateKey   string          `json:"date"`
	Kind      PuzzleKind      `json:"kind"`
	Seed      string          `json:"seed"`
	Score     int             `json:"score"`
	Objective int             `json:"objective"`
	Optimal   int             `json:"optimal"`
	Answer    json.RawMessage `json:"answer"`
	CreatedAt time.Time       `json:"createdAt"`
}
