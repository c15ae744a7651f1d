package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/commute"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/puzzle"
)

var quizKinds = []domain.CommuteGameID{
	domain.GameMeetingSum,
	domain.GameTeamSplit,
	domain.GameDeployCountdown,
}

var quizPuzzleKinds = map[domain.CommuteGameID]domain.PuzzleKind{
	domain.GameMeetingSum:      domain.PuzzleKindMeetingSum,
	domain.GameTeamSplit:       domain.PuzzleKindTeamSplit,
	domain.GameDeployCountdown: domain.PuzzleKindDeploy,
}

// 返回给客户端的题面不包含答案
type meetingSumView struct {
	Meetings []domain.MeetingItem `json:"meetings"`
}

type teamSplitView struct {
	Members     int                    `json:"members"`
	Lines       []domain.TeamSplitLine `json:"lines"`
	ExtraLeader int                    `json:"extraLeader"`
}

type deployView struct {
	Project string `json:"project"`
	Today   string `json:"today"`
	Release string `json:"release"`
	QADays  int    `json:"qaDays"`
}

// quiz 中三种题目只会有一种非 nil
type quiz struct {
	kind       domain.CommuteGameID
	puzzleKind domain.PuzzleKind
	seed       string

	meeting *domain.MeetingSumProblem
	team    *domain.TeamSplitProblem
	deploy  *domain.DeployProblem
}

func (h *Handler) generateQuiz(kind domain.CommuteGameID, dateKey string) (*quiz, error) {
	q := &quiz{
		kind:       kind,
		puzzleKind: quizPuzzleKinds[kind],
	}
	q.seed = h.seedFor(dateKey, q.puzzleKind)

	switch kind {
	case domain.GameMeetingSum:
		q.meeting = puzzle.GenerateMeetingSum(q.seed)
	case domain.GameTeamSplit:
		q.team = puzzle.GenerateTeamSplit(q.seed)
	case domain.GameDeployCountdown:
		today, err := puzzle.ParseDateKey(dateKey)
		if err != nil {
			return nil, err
		}
		q.deploy = puzzle.GenerateDeployCountdown(q.seed, today)
	}

	return q, nil
}

func (q *quiz) view() any {
	switch {
	case q.meeting != nil:
		return meetingSumView{Meetings: q.meeting.Meetings}
	case q.team != nil:
		return teamSplitView{Members: q.team.Members, Lines: q.team.Lines, ExtraLeader: q.team.ExtraLeader}
	default:
		return deployView{Project: q.deploy.Project, Today: q.deploy.Today, Release: q.deploy.Release, QADays: q.deploy.QADays}
	}
}

// check 按题目类型解析答案并判分，返回判分结果和解析后的答案
func (q *quiz) check(raw json.RawMessage) (domain.QuizReport, any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	switch {
	case q.meeting != nil:
		var answer domain.MeetingSumAnswer
		if err := dec.Decode(&answer); err != nil {
			return domain.QuizReport{}, nil, err
		}
		return commute.CheckMeetingSum(q.meeting, answer), answer, nil
	case q.team != nil:
		var answer domain.TeamSplitAnswer
		if err := dec.Decode(&answer); err != nil {
			return domain.QuizReport{}, nil, err
		}
		return commute.CheckTeamSplit(q.team, answer), answer, nil
	default:
		var answer domain.DeployAnswer
		if err := dec.Decode(&answer); err != nil {
			return domain.QuizReport{}, nil, err
		}
		return commute.CheckDeployCountdown(q.deploy, answer), answer, nil
	}
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	kind := r.Context().Value(QuizKindCtx).(domain.CommuteGameID)

	dateKey, err := h.resolveDateKey(r.URL.Query().Get("date"))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	q, err := h.generateQuiz(kind, dateKey)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取小测验成功", struct {
		Date    string               `json:"date"`
		Kind    domain.CommuteGameID `json:"kind"`
		Seed    string               `json:"seed"`
		Problem any                  `json:"problem"`
	}{
		Date:    dateKey,
		Kind:    kind,
		Seed:    q.seed,
		Problem: q.view(),
	})
}

func (h *Handler) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	kind := r.Context().Value(QuizKindCtx).(domain.CommuteGameID)

	var req struct {
		Date   string          `json:"date"`
		Answer json.RawMessage `json:"answer" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dateKey, err := h.resolveDateKey(req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	q, err := h.generateQuiz(kind, dateKey)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	report, answer, err := q.check(req.Answer)
	if err != nil {
		h.errorResponse(w, r, "答案格式错误")
		return
	}

	if err := h.recordResult(r, &domain.PuzzleResult{
		DateKey: dateKey,
		Kind:    q.puzzleKind,
		Seed:    q.seed,
		Score:   report.Score,
	}, answer); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "判分完成", report)
}
