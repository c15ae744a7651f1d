package puzzle

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/rng"
)

var meetingTitles = []string{
	"기획 리뷰", "디자인 리뷰", "개발 리뷰", "개발 점검", "QA Block",
	"올핸즈", "전사 팀미팅", "마케팅팀 미팅", "팀 스크럼", "팀 위클리",
}

const (
	dayStartMinute  = 9 * 60
	lastStartMinute = 16 * 60
	dayEndMinute    = 18 * 60
	maxSlotAttempts = 100
)

type slot struct {
	start int
	end   int
}

// GenerateMeetingSum 在 09:00 ~ 18:00 之间生成 4~6 个互不重叠的会议
func GenerateMeetingSum(seed string) *domain.MeetingSumProblem {
	r := rng.New(seed)
	count := r.IntN(4, 6)

	slots := make([]slot, 0, count)
	for attempts := 0; len(slots) < count && attempts < maxSlotAttempts; attempts++ {
		s := r.IntN(dayStartMinute, lastStartMinute)
		dur := r.IntN(30, 90)
		e := min(s+dur, dayEndMinute)
		if e-s < 15 {
			continue
		}

		overlapped := false
		for _, x := range slots {
			if !(e <= x.start || s >= x.end) {
				overlapped = true
				break
			}
		}
		if !overlapped {
			slots = append(slots, slot{start: s, end: e})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].start < slots[j].start
	})

	p := &domain.MeetingSumProblem{
		Meetings: make([]domain.MeetingItem, len(slots)),
	}
	longest := -1
	for i, sl := range slots {
		title := meetingTitles[(i+int(math.Floor(r.Next()*float64(len(meetingTitles)))))%len(meetingTitles)]
		minutes := sl.end - sl.start
		p.Meetings[i] = domain.MeetingItem{
			Title:   title,
			Start:   clockString(sl.start),
			End:     clockString(sl.end),
			Minutes: minutes,
		}
		p.TotalMinutes += minutes
		if minutes > longest {
			longest = minutes
			p.LongestIndex = i
		}
	}

	return p
}

func clockString(minuteOfDay int) string {
	return fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)
}

// GenerateTeamSplit 生成聚餐分摊问题，每人金额四舍五入到 1 元
func GenerateTeamSplit(seed string) *domain.TeamSplitProblem {
	r := rng.New(seed)
	members := r.IntN(4, 10)
	kimbapUnit := rng.Pick(r, []int{1200, 1500, 1800, 2000})

	lines := []domain.TeamSplitLine{
		{Name: "김밥", Qty: r.IntN(3, 9), Unit: kimbapUnit},
		{Name: "떡볶이", Qty: r.IntN(1, 3), Unit: 6000},
		{Name: "음료", Qty: r.IntN(3, members), Unit: 5000},
	}
	extraLeader := rng.Pick(r, []int{0, 2000, 5000})

	rest := max(TeamSplitTotal(lines)-extraLeader, 0)

	return &domain.TeamSplitProblem{
		Members:     members,
		Lines:       lines,
		ExtraLeader: extraLeader,
		PerPerson:   int(math.Round(float64(rest) / float64(members))),
	}
}

func TeamSplitTotal(lines []domain.TeamSplitLine) int {
	total := 0
	for _, l := range lines {
		total += l.Qty * l.Unit
	}
	return total
}

var deployProjects = []string{
	"하마보다 입 크게 벌리기", "재빠르게 달리기", "꽤 높이 점프하기",
	"고양이와 하이파이브하기", "사마귀보다 정확히 찌르기", "거미보다 크게 집짓기",
}

// GenerateDeployCountdown 生成发布倒计时问题
// QA 包含发布当天，工程截止日即 QA 开始日：release - (qaDays - 1)
func GenerateDeployCountdown(seed string, today time.Time) *domain.DeployProblem {
	r := rng.New(seed)
	add := r.IntN(10, 30)
	release := today.AddDate(0, 0, add)
	qaDays := r.IntN(6, 13)
	engineerDue := release.AddDate(0, 0, -(qaDays - 1))

	return &domain.DeployProblem{
		Project:     rng.Pick(r, deployProjects),
		Today:       today.Format(DateKeyLayout),
		Release:     release.Format(DateKeyLayout),
		DaysLeft:    add,
		QADays:      qaDays,
		EngineerDue: engineerDue.Format(DateKeyLayout),
	}
}
