package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/commute"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/config"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/puzzle"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/repository"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var from string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机玩家, 2: 预先生成每日谜题)")
	flag.IntVar(&n, "n", 5, "要插入的玩家数量或要生成的天数")
	flag.StringVar(&from, "from", "", "预先生成每日谜题的起始日期 (YYYY-MM-DD)，默认为首尔时区的今天")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的玩家数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomPlayer(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机玩家", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入玩家", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入玩家成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的天数")
			return
		}

		if from == "" {
			from = puzzle.DateKey(time.Now())
		}
		start, err := puzzle.ParseDateKey(from)
		if err != nil {
			slog.Error("起始日期格式错误", slog.String("from", from))
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			dateKey := start.AddDate(0, 0, i).Format(puzzle.DateKeyLayout)

			puzzles, err := commute.BuildDailyPuzzles(dateKey, cfg.Puzzle.SeedSalt)
			if err != nil {
				slog.Error("无法生成每日谜题", slog.String("date", dateKey), slog.String("error", err.Error()))
				continue
			}

			for _, p := range puzzles {
				if err := repo.UpsertDailyPuzzle(p); err != nil {
					slog.Error("无法保存每日谜题", slog.String("date", dateKey), slog.String("error", err.Error()))
					continue
				}
				cnt++
			}
		}

		slog.Info("生成每日谜题成功", slog.Int("count", cnt))
	default:
		slog.Error("指定的操作非法")
	}
}
