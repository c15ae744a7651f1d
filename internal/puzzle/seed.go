package puzzle

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
)

const DateKeyLayout = "2006-01-02"

var seoul = loadSeoul()

func loadSeoul() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		// 运行环境中没有时区数据库时退回到固定的 UTC+9
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// DateKey 返回 Asia/Seoul 时区下的 YYYY-MM-DD，所有每日谜题都以它为种子的一部分
func DateKey(t time.Time) string {
	return t.In(seoul).Format(DateKeyLayout)
}

func ParseDateKey(s string) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, s, seoul)
}

// SeedFor 组合每日谜题的种子，格式为 <dateKey>-<kind>-<salt>
func SeedFor(dateKey string, kind domain.PuzzleKind, salt string) string {
	return fmt.Sprintf("%s-%s-%s", dateKey, kind, salt)
}

func SessionSeed(dateKey string) string {
	return fmt.Sprintf("%s-commute", dateKey)
}
