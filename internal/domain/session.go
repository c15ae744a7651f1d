package domain

import "time"

type CommuteGameResult struct {
	ID            CommuteGameID  `json:"id"`
	Score         int            `json:"score"`
	CorrectCount  int            `json:"correctCount,omitempty"`
	TotalCount    int            `json:"totalCount,omitempty"`
	ReactionTimes []int          `json:"reactionTimes,omitempty"` // 毫秒
	Details       map[string]any `json:"details,omitempty"`
}

// CommuteSession 是一次通勤挑战的进度，由调用方保存和传递，本身不做任何持久化
type CommuteSession struct {
	DateKey        string              `json:"dateKey"`
	HasPlayedToday bool                `json:"hasPlayedToday"`
	Selected       []CommuteGameID     `json:"selected"`
	CurrentIndex   int                 `json:"currentIndex"`
	StartedAt      *time.Time          `json:"startedAt,omitempty"`
	FinishedAt     *time.Time          `json:"finishedAt,omitempty"`
	Results        []CommuteGameResult `json:"results"`
}

type SessionSummary struct {
	ID          int64               `json:"id"`
	UserID      int64               `json:"userID"`
	DateKey     string              `json:"date"`
	TotalScore  int                 `json:"totalScore"`
	MedReaction *int                `json:"medReaction,omitempty"`
	Results     []CommuteGameResult `json:"results"`
	FinishedAt  time.Time           `json:"finishedAt"`
	CreatedAt   time.Time           `json:"createdAt"`
	Version     int32               `json:"-"`
}
