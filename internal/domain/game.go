package domain

type CommuteGameID string

const (
	GameMeetingSum         CommuteGameID = "meeting-sum"
	GameTeamSplit          CommuteGameID = "team-split"
	GameDeployCountdown    CommuteGameID = "deploy-countdown"
	GameSchedulingLite     CommuteGameID = "scheduling-lite"
	GamePrioritizationLite CommuteGameID = "prioritization-lite"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type CommuteGameMeta struct {
	ID          CommuteGameID `json:"id" yaml:"id"`
	Icon        string        `json:"icon" yaml:"icon"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Difficulty  Difficulty    `json:"difficulty" yaml:"difficulty"`
}
