package commute

import (
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/puzzle"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/scoring"
)

func quizReport(correct, skipped bool, expected any) domain.QuizReport {
	report := domain.QuizReport{
		Correct: correct && !skipped,
		Skipped: skipped,
		Score:   scoring.BaseScore(correct, skipped),
	}
	if !report.Correct {
		report.Expected = expected
	}
	return report
}

// CheckMeetingSum 总时长和最长会议的位置都答对才算正确
func CheckMeetingSum(problem *domain.MeetingSumProblem, answer domain.MeetingSumAnswer) domain.QuizReport {
	correct := answer.TotalMinutes == problem.TotalMinutes && answer.LongestIndex == problem.LongestIndex
	return quizReport(correct, answer.Skipped, domain.MeetingSumAnswer{
		TotalMinutes: problem.TotalMinutes,
		LongestIndex: problem.LongestIndex,
	})
}

// CheckTeamSplit 总金额和每人应付金额都答对才算正确
func CheckTeamSplit(problem *domain.TeamSplitProblem, answer domain.TeamSplitAnswer) domain.QuizReport {
	total := puzzle.TeamSplitTotal(problem.Lines)
	correct := answer.Total == total && answer.PerPerson == problem.PerPerson
	return quizReport(correct, answer.Skipped, domain.TeamSplitAnswer{
		Total:     total,
		PerPerson: problem.PerPerson,
	})
}

// CheckDeployCountdown 剩余天数和工程截止日都答对才算正确
func CheckDeployCountdown(problem *domain.DeployProblem, answer domain.DeployAnswer) domain.QuizReport {
	correct := answer.DaysLeft == problem.DaysLeft && answer.EngineerDue == problem.EngineerDue
	return quizReport(correct, answer.Skipped, domain.DeployAnswer{
		DaysLeft:    problem.DaysLeft,
		EngineerDue: problem.EngineerDue,
	})
}
