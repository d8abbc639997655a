package resetclock

import (
	"fmt"
	"time"

	_ "time/tzdata" // 内嵌时区数据，容器里没有 zoneinfo 也能加载
)

const (
	DefaultTimezone = "Europe/Istanbul"
	// ResetHour 每日重置的本地小时
	ResetHour = 3

	dateLayout = "2006-01-02"
)

// Clock 账本日时钟：本地时间 03:00 之前算作前一天
type Clock struct {
	loc *time.Location
}

// New 按时区名创建时钟
func New(timezone string) (*Clock, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc}, nil
}

// Default 使用 Europe/Istanbul 的时钟
func Default() *Clock {
	c, err := New(DefaultTimezone)
	if err != nil {
		panic(err)
	}
	return c
}

// Location 时钟使用的时区
func (c *Clock) Location() *time.Location {
	return c.loc
}

// LedgerDay 返回 now 所属的账本日 YYYY-MM-DD
func (c *Clock) LedgerDay(now time.Time) string {
	local := now.In(c.loc)
	if local.Hour() < ResetHour {
		local = local.AddDate(0, 0, -1)
	}
	return local.Format(dateLayout)
}

// NextReset 下一次 03:00 本地时间
func (c *Clock) NextReset(now time.Time) time.Time {
	local := now.In(c.loc)
	day := local.Day()
	if local.Hour() >= ResetHour {
		day++
	}
	return time.Date(local.Year(), local.Month(), day, ResetHour, 0, 0, 0, c.loc)
}

// SecondsUntilNextReset 距下一次重置的秒数（向下取整，不小于 0）
func (c *Clock) SecondsUntilNextReset(now time.Time) int {
	seconds := int(c.NextReset(now).Sub(now) / time.Second)
	if seconds < 0 {
		return 0
	}
	return seconds
}
