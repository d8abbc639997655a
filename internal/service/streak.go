package service

import "time"

// maxStreakDays 最多回溯一年
const maxStreakDays = 365

// CalculateStreak 从今天（UTC 日历日）往前数连续有完成记录的天数
// 今天没有记录时，只要过去 24 小时内有完成就不算中断
func CalculateStreak(completions []time.Time, now time.Time) int {
	if len(completions) == 0 {
		return 0
	}

	days := make(map[string]struct{}, len(completions))
	recent := false
	for _, c := range completions {
		days[calendarDate(c)] = struct{}{}
		if now.Sub(c) < 24*time.Hour {
			recent = true
		}
	}

	today := now.UTC()
	streak := 0
	for i := 0; i < maxStreakDays; i++ {
		day := calendarDate(today.AddDate(0, 0, -i))
		if _, ok := days[day]; ok {
			streak++
			continue
		}
		if i == 0 && recent {
			continue
		}
		break
	}
	return streak
}

// calendarDate UTC 日历日，与账本日无关
func calendarDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
