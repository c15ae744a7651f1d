// Package catalog 加载内嵌的通勤小游戏目录
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
)

//go:embed games.yaml
var gamesYAML []byte

const schemaVersion = "1"

type file struct {
	SchemaVersion string                   `yaml:"schema_version"`
	Games         []domain.CommuteGameMeta `yaml:"games"`
}

type Catalog struct {
	games []domain.CommuteGameMeta
}

func Load() (*Catalog, error) {
	return Parse(gamesYAML)
}

// MustLoad 用于内嵌目录，内嵌文件有误属于编程错误
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("无法解析游戏目录: %w", err)
	}

	if f.SchemaVersion != schemaVersion {
		return nil, fmt.Errorf("不支持的游戏目录版本: %q", f.SchemaVersion)
	}

	seen := make(map[domain.CommuteGameID]bool)
	for i, g := range f.Games {
		if g.ID == "" {
			return nil, fmt.Errorf("第 %d 个游戏缺少 ID", i)
		}
		if seen[g.ID] {
			return nil, fmt.Errorf("游戏 ID 重复: %s", g.ID)
		}
		seen[g.ID] = true

		switch g.Difficulty {
		case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
		default:
			return nil, fmt.Errorf("游戏 %s 的难度无效: %q", g.ID, g.Difficulty)
		}
	}

	return &Catalog{games: f.Games}, nil
}

func (c *Catalog) Games() []domain.CommuteGameMeta {
	return append([]domain.CommuteGameMeta{}, c.games...)
}

func (c *Catalog) Get(id domain.CommuteGameID) (domain.CommuteGameMeta, bool) {
	for _, g := range c.games {
		if g.ID == id {
			return g, true
		}
	}
	return domain.CommuteGameMeta{}, false
}

// Split 按目录顺序把游戏分为困难和其他两组
func (c *Catalog) Split() (hard, others []domain.CommuteGameID) {
	for _, g := range c.games {
		if g.Difficulty == domain.DifficultyHard {
			hard = append(hard, g.ID)
		} else {
			others = append(others, g.ID)
		}
	}
	return hard, others
}
