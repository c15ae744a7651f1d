package domain

type MeetingItem struct {
	Title   string `json:"title"`
	Start   string `json:"start"` // HH:MM
	End     string `json:"end"`
	Minutes int    `json:"minutes"`
}

type MeetingSumProblem struct {
	Meetings     []MeetingItem `json:"meetings"`
	TotalMinutes int           `json:"totalMinutes"`
	LongestIndex int           `json:"longestIndex"`
}

type TeamSplitLine struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
	Unit int    `json:"unit"`
}

type TeamSplitProblem struct {
	Members     int             `json:"members"`
	Lines       []TeamSplitLine `json:"lines"`
	ExtraLeader int             `json:"extraLeader"` // 组长额外承担的金额
	PerPerson   int             `json:"perPerson"`
}

type DeployProblem struct {
	Project     string `json:"project"`
	Today       string `json:"today"`
	Release     string `json:"release"`
	DaysLeft    int    `json:"daysLeft"`
	QADays      int    `json:"qaDays"`
	EngineerDue string `json:"engineerDue"`
}

type MeetingSumAnswer struct {
	TotalMinutes int  `json:"totalMinutes"`
	LongestIndex int  `json:"longestIndex"`
	Skipped      bool `json:"skipped"`
}

type TeamSplitAnswer struct {
	Total     int  `json:"total"`
	PerPerson int  `json:"perPerson"`
	Skipped   bool `json:"skipped"`
}

type DeployAnswer struct {
	DaysLeft    int    `json:"daysLeft"`
	EngineerDue string `json:"engineerDue"` // YYYY-MM-DD
	Skipped     bool   `json:"skipped"`
}

// QuizReport 中的 Expected 只在回答错误或跳过时返回正确答案
type QuizReport struct {
	Correct  bool `json:"correct"`
	Skipped  bool `json:"skipped"`
	Score    int  `json:"score"`
	Expected any  `json:"expected,omitempty"`
}
