// Package timeutil 提供时刻与时间窗口的纯函数运算。
// 系统中的时刻统一用 "HH:MM" 表示，日期用 "YYYY-MM-DD"，
// 带日期的完整时间用 "YYYY-MM-DDTHH:MM"（无时区、无秒）
package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTimeFormat = errors.New("时间格式错误")

const minutesPerDay = 1440

// SplitDateTime 把 "YYYY-MM-DDTHH:MM" 拆成日期和时刻两部分；
// 不带日期的输入返回空日期
func SplitDateTime(s string) (date string, clock string) {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// TimeToMinutes 把时刻转换为当天的分钟数，带日期的输入只取时刻部分。
// 历史兼容：格式错误时返回 0 而不报错，入口校验请用 ParseTimePoint
func TimeToMinutes(s string) int {
	_, clock := SplitDateTime(s)

	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return 0
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}

	return hours*60 + minutes
}

// ParseTimePoint 是 TimeToMinutes 的严格版本，
// 所有外部输入都应该先经过它的校验
func ParseTimePoint(s string) (int, error) {
	date, clock := SplitDateTime(s)

	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return hours*60 + minutes, nil
}

// ParseDateStamp 校验 "YYYY-MM-DD" 并返回其月份和年份
func ParseDateStamp(s string) (month int, year int, err error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return int(t.Month()), t.Year(), nil
}

// MinutesToTime 是 TimeToMinutes 在 [0, 1439] 上的逆运算
func MinutesToTime(n int) string {
	return fmt.Sprintf("%02d:%02d", n/60, n%60)
}

// NextDate 返回给定日期的下一天，日期不合法时返回原值
func NextDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02")
}

// CrossesMidnight 判断一个时间窗口是否跨过零点：
// 即结束时刻在数值上早于开始时刻
func CrossesMidnight(start, end string) bool {
	return TimeToMinutes(end) < TimeToMinutes(start)
}

func daysBetween(startDate, endDate string) int {
	st, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0
	}
	et, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0
	}
	return int(et.Sub(st).Hours() / 24)
}

// CalculateHours 计算两个时间点之间的小时数，四舍五入到整数
// （0.5 向远离零方向进位）。
//
// 两端都带日期时：先算整天差，再算分钟差；分钟差为负且整天差为零，
// 说明是同一天录入的跨零点窗口，补一天。
// 两端都是裸时刻时：分钟差为负即视作跨到次日。
// 裸时刻无法区分恰好 24 小时整数倍的窗口和零长度窗口，
// 需要区分时调用方必须提供完整日期
func CalculateHours(start, end string) int {
	startDate, _ := SplitDateTime(start)
	endDate, _ := SplitDateTime(end)

	startMinutes := TimeToMinutes(start)
	endMinutes := TimeToMinutes(end)

	if startDate != "" && endDate != "" {
		dayDiff := daysBetween(startDate, endDate)
		minuteDiff := endMinutes - startMinutes
		if minuteDiff < 0 && dayDiff == 0 {
			minuteDiff += minutesPerDay
		}
		total := dayDiff*minutesPerDay + minuteDiff
		return int(math.Round(float64(total) / 60))
	}

	diff := endMinutes - startMinutes
	if diff < 0 {
		diff += minutesPerDay
	}
	return int(math.Round(float64(diff) / 60))
}
