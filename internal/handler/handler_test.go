package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/catalog"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/config"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/puzzle"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/session"
)

type testEnv struct {
	h         *Handler
	store     *memStore
	cache     *memCache
	publisher *memPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 3600
	cfg.RabbitMQ.Queue = "email_queue"
	cfg.RabbitMQ.PublishTimeout = 5
	cfg.Puzzle.SeedSalt = "v1"
	cfg.Puzzle.MaxProblemSize = 8

	env := &testEnv{
		store:     &memStore{},
		cache:     newMemCache(),
		publisher: &memPublisher{},
	}

	h, err := newHandler(cfg, env.store, env.cache, env.cache, env.publisher, catalog.MustLoad())
	require.NoError(t, err)
	h.RegisterRoutes()
	env.h = h

	return env
}

type testResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) (testResponse, *http.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.h.Mux.ServeHTTP(rec, req)

	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp, rec.Result()
}

func decodeData[T any](t *testing.T, resp testResponse) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(resp.Data, &v))
	return v
}

func tokenCookie(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()

	for _, c := range res.Cookies() {
		if c.Name == tokenCookieName {
			return c
		}
	}
	t.Fatal("没有找到登录 cookie")
	return nil
}

func (e *testEnv) register(t *testing.T, username string) *http.Cookie {
	t.Helper()

	resp, res := e.do(t, http.MethodPost, "/auth/register", map[string]string{
		"username": username,
		"password": "secret123",
		"nickname": "测试玩家",
		"email":    username + "@example.com",
	})
	require.True(t, resp.Success, resp.Message)
	return tokenCookie(t, res)
}

func TestGetGames(t *testing.T) {
	env := newTestEnv(t)

	resp, res := env.do(t, http.MethodGet, "/games", nil)
	require.True(t, resp.Success)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	games := decodeData[[]domain.CommuteGameMeta](t, resp)
	assert.Len(t, games, 5)
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.register(t, "player1")
	assert.True(t, cookie.HttpOnly)

	resp, _ := env.do(t, http.MethodGet, "/my-info", nil, cookie)
	require.True(t, resp.Success, resp.Message)
	me := decodeData[domain.User](t, resp)
	assert.Equal(t, "player1", me.Username)
	assert.Equal(t, domain.RolePlayer, me.Role)

	resp, _ = env.do(t, http.MethodGet, "/my-info", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "用户未登录", resp.Message)

	resp, _ = env.do(t, http.MethodGet, "/my-info", nil, &http.Cookie{Name: tokenCookieName, Value: "garbage"})
	assert.False(t, resp.Success)
	assert.Equal(t, "无效的令牌", resp.Message)

	resp, _ = env.do(t, http.MethodPost, "/auth/login", map[string]string{"username": "player1", "password": "wrong"})
	assert.False(t, resp.Success)
	assert.Equal(t, "用户名不存在或密码错误", resp.Message)

	resp, res := env.do(t, http.MethodPost, "/auth/login", map[string]string{"username": "player1", "password": "secret123"})
	require.True(t, resp.Success, resp.Message)
	assert.NotEmpty(t, tokenCookie(t, res).Value)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "player1")

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"username": "player2", "password": "secret123", "nickname": "n"}},
		{"short password", map[string]string{"username": "player2", "password": "123", "nickname": "n", "email": "p2@example.com"}},
		{"duplicate username", map[string]string{"username": "player1", "password": "secret123", "nickname": "n", "email": "other@example.com"}},
		{"duplicate email", map[string]string{"username": "player2", "password": "secret123", "nickname": "n", "email": "player1@example.com"}},
		{"unknown field", map[string]string{"username": "player2", "password": "secret123", "nickname": "n", "email": "p2@example.com", "role": "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := env.do(t, http.MethodPost, "/auth/register", tt.body)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestReadJSONErrors(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/auth/login", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, errEmptyBody.Error(), resp.Message)

	resp, _ = env.do(t, http.MethodPost, "/auth/login", map[string]any{"username": 1, "password": "x"})
	assert.False(t, resp.Success)
	assert.Equal(t, "字段 username 的类型错误", resp.Message)

	resp, _ = env.do(t, http.MethodPost, "/auth/login", map[string]any{"username": "a", "password": "x", "extra": true})
	assert.False(t, resp.Success)
	assert.Equal(t, `未知字段 "extra"`, resp.Message)
}

func TestUpdateMyInfo(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.register(t, "player1")

	resp, _ := env.do(t, http.MethodPatch, "/my-info", map[string]string{"nickname": "新昵称"}, cookie)
	require.True(t, resp.Success, resp.Message)

	resp, _ = env.do(t, http.MethodPatch, "/my-info/password", map[string]string{"oldPassword": "wrong", "newPassword": "another123"}, cookie)
	assert.False(t, resp.Success)
	assert.Equal(t, "旧密码错误", resp.Message)

	resp, _ = env.do(t, http.MethodPatch, "/my-info/password", map[string]string{"oldPassword": "secret123", "newPassword": "another123"}, cookie)
	require.True(t, resp.Success, resp.Message)

	user, err := env.store.GetUserByUsername("player1")
	require.NoError(t, err)
	assert.Equal(t, "新昵称", user.Nickname)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("another123")))
}

type schedulingPuzzleData struct {
	Date      string                   `json:"date"`
	Seed      string                   `json:"seed"`
	Problem   domain.SchedulingProblem `json:"problem"`
	Optimal   int                      `json:"optimal"`
	Heuristic bool                     `json:"heuristic"`
}

func TestSchedulingPuzzleRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/puzzles/scheduling?date=2025-01-15", nil)
	require.True(t, resp.Success, resp.Message)

	data := decodeData[schedulingPuzzleData](t, resp)
	assert.Equal(t, "2025-01-15", data.Date)
	assert.Equal(t, "2025-01-15-sched-v1", data.Seed)
	assert.Equal(t, *puzzle.GenerateSchedulingProblem(data.Seed), data.Problem)
	assert.Equal(t, 35, data.Optimal)
	assert.False(t, data.Heuristic)

	cached, ok, err := env.cache.GetSolved(context.Background(), data.Seed)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 35, cached.BestObjective)

	resp, _ = env.do(t, http.MethodPost, "/puzzles/scheduling/check", map[string]any{
		"date": "2025-01-15",
		"plan": domain.Plan{"A": {"T4"}, "B": {"T3", "T6"}, "C": {"T5"}},
	})
	require.True(t, resp.Success, resp.Message)

	report := decodeData[domain.SchedulingReport](t, resp)
	assert.True(t, report.Validation.Valid)
	assert.True(t, report.Complete)
	assert.Equal(t, 35, report.Achieved.Makespan)
	assert.Equal(t, 100, report.Score)

	// 游客的成绩不会被记录
	assert.Empty(t, env.store.results)
}

func TestPuzzleChecksUseCachedOptimal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.cache.SetSolved(ctx, "2025-01-15-sched-v1", &domain.OptimalResult{BestObjective: 28}))
	require.NoError(t, env.cache.SetSolved(ctx, "2025-01-15-prio-v1", &domain.OptimalResult{BestObjective: 110}))

	resp, _ := env.do(t, http.MethodPost, "/puzzles/scheduling/check", map[string]any{
		"date": "2025-01-15",
		"plan": domain.Plan{"A": {"T4"}, "B": {"T3", "T6"}, "C": {"T5"}},
	})
	require.True(t, resp.Success, resp.Message)
	report := decodeData[domain.SchedulingReport](t, resp)
	assert.Equal(t, 28, report.Optimal.BestObjective)
	assert.Equal(t, 80, report.Score)

	resp, _ = env.do(t, http.MethodPost, "/puzzles/prioritization/check", map[string]any{
		"date":      "2025-01-15",
		"selection": []string{"T1", "T2", "T3", "T4", "T6"},
	})
	require.True(t, resp.Success, resp.Message)
	prioReport := decodeData[domain.PrioritizationReport](t, resp)
	assert.Equal(t, 110, prioReport.Optimal.BestObjective)
	assert.Equal(t, 50, prioReport.Score)
}

func TestSchedulingPuzzleUsesStoredDaily(t *testing.T) {
	env := newTestEnv(t)

	stored := &domain.SchedulingProblem{
		Workers: []domain.WorkerID{"A", "B", "C"},
		Tasks: []domain.Task{
			{ID: "T1", Duration: 7, EligibleWorkers: []domain.WorkerID{"A"}, Precedence: []string{}},
		},
	}
	problem, err := json.Marshal(stored)
	require.NoError(t, err)
	require.NoError(t, env.store.UpsertDailyPuzzle(&domain.DailyPuzzle{
		DateKey: "2025-01-15",
		Kind:    domain.PuzzleKindScheduling,
		Seed:    "2025-01-15-sched-v1",
		Problem: problem,
	}))

	resp, _ := env.do(t, http.MethodGet, "/puzzles/scheduling?date=2025-01-15", nil)
	require.True(t, resp.Success, resp.Message)

	data := decodeData[schedulingPuzzleData](t, resp)
	assert.Equal(t, *stored, data.Problem)
	assert.Equal(t, 7, data.Optimal)

	// 换了盐值之后数据库中的旧题目不再使用
	env.h.config.Puzzle.SeedSalt = "v2"
	resp, _ = env.do(t, http.MethodGet, "/puzzles/scheduling?date=2025-01-15", nil)
	require.True(t, resp.Success, resp.Message)
	data = decodeData[schedulingPuzzleData](t, resp)
	assert.Equal(t, *puzzle.GenerateSchedulingProblem("2025-01-15-sched-v2"), data.Problem)
}

func TestPuzzleDates(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/puzzles/scheduling?date=2025-13-40", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, errInvalidDate.Error(), resp.Message)

	future := puzzle.DateKey(time.Now().AddDate(0, 0, 3))
	resp, _ = env.do(t, http.MethodGet, "/puzzles/prioritization?date="+future, nil)
	assert.False(t, resp.Success)
	assert.Equal(t, errDateNotOpened.Error(), resp.Message)

	env.h.config.Puzzle.MaxFutureDays = 7
	resp, _ = env.do(t, http.MethodGet, "/puzzles/prioritization?date="+future, nil)
	assert.True(t, resp.Success, resp.Message)

	resp, _ = env.do(t, http.MethodGet, "/puzzles/scheduling", nil)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, puzzle.DateKey(time.Now()), decodeData[schedulingPuzzleData](t, resp).Date)
}

func TestPrioritizationCheckRecordsResult(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.register(t, "player1")

	body := map[string]any{
		"date":      "2025-01-15",
		"selection": []string{"T1", "T2", "T3", "T4", "T6"},
	}
	resp, _ := env.do(t, http.MethodPost, "/puzzles/prioritization/check", body, cookie)
	require.True(t, resp.Success, resp.Message)

	report := decodeData[domain.PrioritizationReport](t, resp)
	assert.True(t, report.Validation.Valid)
	assert.Equal(t, 55, report.Optimal.BestObjective)
	assert.Equal(t, 100, report.Score)

	// 重复提交只保留第一次的成绩
	body["selection"] = []string{"T4", "T5"}
	resp, _ = env.do(t, http.MethodPost, "/puzzles/prioritization/check", body, cookie)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, 0, decodeData[domain.PrioritizationReport](t, resp).Score)

	resp, _ = env.do(t, http.MethodGet, "/my-results", nil, cookie)
	require.True(t, resp.Success, resp.Message)
	results := decodeData[struct {
		Puzzles  []domain.PuzzleResult   `json:"puzzles"`
		Sessions []domain.SessionSummary `json:"sessions"`
	}](t, resp)
	require.Len(t, results.Puzzles, 1)
	assert.Equal(t, 100, results.Puzzles[0].Score)
	assert.Equal(t, domain.PuzzleKindPrioritization, results.Puzzles[0].Kind)
	assert.Empty(t, results.Sessions)

	resp, _ = env.do(t, http.MethodGet, "/my-results?limit=0", nil, cookie)
	assert.False(t, resp.Success)
}

func TestSolveEndpoints(t *testing.T) {
	env := newTestEnv(t)

	problem := domain.SchedulingProblem{
		Workers: []domain.WorkerID{"A", "B"},
		Tasks: []domain.Task{
			{ID: "T1", Duration: 10, EligibleWorkers: []domain.WorkerID{"A", "B"}},
			{ID: "T2", Duration: 10, EligibleWorkers: []domain.WorkerID{"A", "B"}},
		},
	}

	resp, _ := env.do(t, http.MethodPost, "/puzzles/solve/scheduling", map[string]any{"problem": problem})
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, 10, decodeData[domain.OptimalResult](t, resp).BestObjective)

	resp, _ = env.do(t, http.MethodPost, "/puzzles/solve/scheduling", map[string]any{
		"problem": problem,
		"plan":    domain.Plan{"A": {"T1", "T2"}},
	})
	require.True(t, resp.Success, resp.Message)
	report := decodeData[domain.SchedulingReport](t, resp)
	assert.Equal(t, 20, report.Achieved.Makespan)
	assert.Equal(t, 50, report.Score)

	problem.Tasks[1].Precedence = []string{"T9"}
	resp, _ = env.do(t, http.MethodPost, "/puzzles/solve/scheduling", map[string]any{"problem": problem})
	assert.False(t, resp.Success)

	prio := domain.PrioritizationProblem{
		TotalTime: 50,
		Items: []domain.PItem{
			{ID: "A", Time: 30, Value: 10},
			{ID: "B", Time: 30, Value: 12},
		},
	}
	resp, _ = env.do(t, http.MethodPost, "/puzzles/solve/prioritization", map[string]any{"problem": prio})
	require.True(t, resp.Success, resp.Message)
	optimal := decodeData[domain.OptimalResult](t, resp)
	assert.Equal(t, 12, optimal.BestObjective)
	assert.Equal(t, domain.Selection{"B"}, optimal.ExampleSelection)

	prio.Items[0].Value = 0
	resp, _ = env.do(t, http.MethodPost, "/puzzles/solve/prioritization", map[string]any{"problem": prio})
	assert.False(t, resp.Success)
}

func TestQuizRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/quizzes/meeting-sum?date=2025-01-15", nil)
	require.True(t, resp.Success, resp.Message)
	assert.NotContains(t, string(resp.Data), "totalMinutes")

	expected := puzzle.GenerateMeetingSum("2025-01-15-meeting-sum-v1")
	view := decodeData[struct {
		Kind    domain.CommuteGameID `json:"kind"`
		Problem meetingSumView       `json:"problem"`
	}](t, resp)
	assert.Equal(t, domain.GameMeetingSum, view.Kind)
	assert.Equal(t, expected.Meetings, view.Problem.Meetings)

	resp, _ = env.do(t, http.MethodPost, "/quizzes/meeting-sum/answer", map[string]any{
		"date":   "2025-01-15",
		"answer": domain.MeetingSumAnswer{TotalMinutes: expected.TotalMinutes, LongestIndex: expected.LongestIndex},
	})
	require.True(t, resp.Success, resp.Message)
	report := decodeData[domain.QuizReport](t, resp)
	assert.True(t, report.Correct)
	assert.Equal(t, 10, report.Score)
	assert.Nil(t, report.Expected)

	resp, _ = env.do(t, http.MethodPost, "/quizzes/meeting-sum/answer", map[string]any{
		"date":   "2025-01-15",
		"answer": domain.MeetingSumAnswer{TotalMinutes: expected.TotalMinutes + 1},
	})
	require.True(t, resp.Success, resp.Message)
	report = decodeData[domain.QuizReport](t, resp)
	assert.False(t, report.Correct)
	assert.Equal(t, -5, report.Score)
	assert.NotNil(t, report.Expected)
}

func TestDeployQuiz(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/quizzes/deploy-countdown?date=2025-01-15", nil)
	require.True(t, resp.Success, resp.Message)
	view := decodeData[struct {
		Problem deployView `json:"problem"`
	}](t, resp)
	assert.Equal(t, "2025-01-15", view.Problem.Today)
	assert.Equal(t, "2025-02-03", view.Problem.Release)

	resp, _ = env.do(t, http.MethodPost, "/quizzes/deploy-countdown/answer", map[string]any{
		"date":   "2025-01-15",
		"answer": domain.DeployAnswer{Skipped: true},
	})
	require.True(t, resp.Success, resp.Message)
	report := decodeData[domain.QuizReport](t, resp)
	assert.True(t, report.Skipped)
	assert.Equal(t, -2, report.Score)

	resp, _ = env.do(t, http.MethodPost, "/quizzes/deploy-countdown/answer", map[string]any{
		"date":   "2025-01-15",
		"answer": map[string]any{"unknown": 1},
	})
	assert.False(t, resp.Success)
	assert.Equal(t, "答案格式错误", resp.Message)

	resp, _ = env.do(t, http.MethodGet, "/quizzes/scheduling-lite", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "小测验不存在", resp.Message)
}

func TestSessionFlow(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.register(t, "player1")

	resp, _ := env.do(t, http.MethodGet, "/sessions/current", nil, cookie)
	assert.False(t, resp.Success)

	resp, _ = env.do(t, http.MethodPost, "/sessions", nil, cookie)
	require.True(t, resp.Success, resp.Message)
	started := decodeData[sessionResponse](t, resp)

	dateKey := puzzle.DateKey(time.Now())
	assert.Equal(t, dateKey, started.Session.DateKey)
	assert.Equal(t, session.AutoSelect(env.h.catalog, dateKey), started.Session.Selected)
	require.NotNil(t, started.Current)
	assert.Equal(t, started.Session.Selected[0], started.Current.ID)

	resp, _ = env.do(t, http.MethodPost, "/sessions/results", map[string]any{"id": "no-such-game", "score": 10}, cookie)
	assert.False(t, resp.Success)

	reactions := []int{1000, 1400, 1200}
	for i, id := range started.Session.Selected {
		resp, _ = env.do(t, http.MethodPost, "/sessions/results", map[string]any{
			"id":            id,
			"score":         10,
			"reactionTimes": []int{reactions[i]},
		}, cookie)
		require.True(t, resp.Success, resp.Message)

		if i < len(started.Session.Selected)-1 {
			progress := decodeData[sessionResponse](t, resp)
			assert.Equal(t, i+1, progress.Session.CurrentIndex)
			assert.Equal(t, started.Session.Selected[i+1], progress.Current.ID)
		}
	}

	summary := decodeData[domain.SessionSummary](t, resp)
	assert.Equal(t, 30, summary.TotalScore)
	require.NotNil(t, summary.MedReaction)
	assert.Equal(t, 1200, *summary.MedReaction)
	assert.Len(t, summary.Results, 3)

	require.Len(t, env.store.summaries, 1)
	assert.Empty(t, env.cache.sessions)

	require.Len(t, env.publisher.published, 1)
	mail := env.publisher.published[0]
	assert.Equal(t, "email_queue", mail.key)
	var msg struct {
		Type string                       `json:"type"`
		To   string                       `json:"to"`
		Data domain.SessionReportMailData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(mail.body, &msg))
	assert.Equal(t, domain.MailTypeSessionReport, msg.Type)
	assert.Equal(t, "player1@example.com", msg.To)
	assert.Equal(t, 30, msg.Data.TotalScore)

	resp, _ = env.do(t, http.MethodPost, "/sessions", nil, cookie)
	assert.False(t, resp.Success)
	assert.Equal(t, "今天已经完成过通勤挑战", resp.Message)
}

func TestSessionManualSelectionAndFinish(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.register(t, "player1")

	resp, _ := env.do(t, http.MethodPost, "/sessions", map[string]any{"selected": []string{"meeting-sum", "meeting-sum"}}, cookie)
	assert.False(t, resp.Success)

	resp, _ = env.do(t, http.MethodPost, "/sessions", map[string]any{"selected": []string{"meeting-sum", "nope"}}, cookie)
	assert.False(t, resp.Success)

	resp, _ = env.do(t, http.MethodPost, "/sessions", map[string]any{"selected": []string{"team-split", "scheduling-lite"}}, cookie)
	require.True(t, resp.Success, resp.Message)
	started := decodeData[sessionResponse](t, resp)
	assert.Equal(t, []domain.CommuteGameID{domain.GameTeamSplit, domain.GameSchedulingLite}, started.Session.Selected)

	// 提交非当前游戏不会推进进度
	resp, _ = env.do(t, http.MethodPost, "/sessions/results", map[string]any{"id": "scheduling-lite", "score": 80}, cookie)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, 0, decodeData[sessionResponse](t, resp).Session.CurrentIndex)

	resp, _ = env.do(t, http.MethodPost, "/sessions/finish", nil, cookie)
	require.True(t, resp.Success, resp.Message)
	summary := decodeData[domain.SessionSummary](t, resp)
	assert.Equal(t, 80, summary.TotalScore)
	assert.Nil(t, summary.MedReaction)

	resp, _ = env.do(t, http.MethodPost, "/sessions/finish", nil, cookie)
	assert.False(t, resp.Success)
}

func TestAdminPrecompute(t *testing.T) {
	env := newTestEnv(t)
	playerCookie := env.register(t, "player1")

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, env.store.CreateUser(&domain.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Nickname:     "管理员",
		Email:        "admin@example.com",
		Role:         domain.RoleAdmin,
	}))
	resp, res := env.do(t, http.MethodPost, "/auth/login", map[string]string{"username": "admin", "password": "adminpass"})
	require.True(t, resp.Success, resp.Message)
	adminCookie := tokenCookie(t, res)

	body := map[string]any{"date": "2025-01-15", "days": 2}

	resp, _ = env.do(t, http.MethodPost, "/admin/daily-puzzles", body, playerCookie)
	assert.False(t, resp.Success)
	assert.Equal(t, "权限不足", resp.Message)

	resp, _ = env.do(t, http.MethodPost, "/admin/daily-puzzles", body, adminCookie)
	require.True(t, resp.Success, resp.Message)
	assert.Len(t, env.store.dailies, 4)

	daily, err := env.store.GetDailyPuzzle("2025-01-15", domain.PuzzleKindScheduling)
	require.NoError(t, err)
	assert.Equal(t, 35, daily.OptimalObjective)

	_, err = env.store.GetDailyPuzzle("2025-01-16", domain.PuzzleKindPrioritization)
	assert.NoError(t, err)
}
