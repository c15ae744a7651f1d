package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const MailTypeSessionReport = "session_report"

type SessionReportMailData struct {
	Nickname    string              `json:"nickname"`
	DateKey     string              `json:"date"`
	TotalScore  int                 `json:"totalScore"`
	MedReaction *int                `json:"medReaction,omitempty"`
	Results     []CommuteGameResult `json:"results"`
}
