package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/cache"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/catalog"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/config"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/repository"
)

// Store 是处理器用到的持久化操作，由 *repository.Repository 实现
type Store interface {
	GetUserByID(id int64) (*domain.User, error)
	GetUserByUsername(username string) (*domain.User, error)
	CreateUser(user *domain.User) error
	UpdateUser(user *domain.User) error
	CheckEmailIfExists(email string) (bool, error)

	UpsertDailyPuzzle(p *domain.DailyPuzzle) error
	GetDailyPuzzle(dateKey string, kind domain.PuzzleKind) (*domain.DailyPuzzle, error)

	InsertPuzzleResult(result *domain.PuzzleResult) error
	GetPuzzleResultsByUserID(userID int64, limit int) ([]*domain.PuzzleResult, error)

	InsertSessionSummary(summary *domain.SessionSummary) error
	CheckSessionSummaryIfExists(userID int64, dateKey string) (bool, error)
	GetSessionSummariesByUserID(userID int64, limit int) ([]*domain.SessionSummary, error)
}

// SolvedCache 缓存按种子求出的最优解，由 *cache.Cache 实现
type SolvedCache interface {
	GetSolved(ctx context.Context, seed string) (*domain.OptimalResult, bool, error)
	SetSolved(ctx context.Context, seed string, result *domain.OptimalResult) error
}

// SessionStore 保存进行中的通勤挑战，由 *cache.Cache 实现
type SessionStore interface {
	GetSession(ctx context.Context, userID int64) (*domain.CommuteSession, error)
	SaveSession(ctx context.Context, userID int64, s *domain.CommuteSession) error
	DeleteSession(ctx context.Context, userID int64) error
}

// MailPublisher 由 *amqp.Channel 实现
type MailPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	store       Store
	solved      SolvedCache
	sessions    SessionStore
	translator  ut.Translator
	mailChannel MailPublisher
	catalog     *catalog.Catalog

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, c *cache.Cache, mailCh *amqp.Channel, cat *catalog.Catalog) (*Handler, error) {
	return newHandler(cfg, repo, c, c, mailCh, cat)
}

func newHandler(cfg *config.Config, store Store, solved SolvedCache, sessions SessionStore, mailCh MailPublisher, cat *catalog.Catalog) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		store:       store,
		solved:      solved,
		sessions:    sessions,
		translator:  trans,
		mailChannel: mailCh,
		catalog:     cat,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	h.Mux.Get("/games", h.GetGames)

	// 谜题和小测验不需要登录，登录后会额外记录成绩
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.optionalAuth)

		r.Route("/puzzles", func(r chi.Router) {
			r.Get("/scheduling", h.GetSchedulingPuzzle)
			r.Post("/scheduling/check", h.CheckSchedulingPuzzle)
			r.Get("/prioritization", h.GetPrioritizationPuzzle)
			r.Post("/prioritization/check", h.CheckPrioritizationPuzzle)
			r.Post("/solve/scheduling", h.SolveScheduling)
			r.Post("/solve/prioritization", h.SolvePrioritization)
		})

		r.Route("/quizzes/{kind}", func(r chi.Router) {
			r.Use(h.quizKind)
			r.Get("/", h.GetQuiz)
			r.Post("/answer", h.AnswerQuiz)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/", h.UpdateMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Get("/my-results", h.GetMyResults)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.StartSession)
			r.Get("/current", h.GetCurrentSession)
			r.Post("/results", h.SubmitSessionResult)
			r.Post("/finish", h.FinishSession)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/daily-puzzles", h.PrecomputeDailyPuzzles)
		})
	})
}
