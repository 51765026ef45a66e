package timeutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimeToMinutes(t *testing.T) {
	require.Equal(t, 0, TimeToMinutes("00:00"))
	require.Equal(t, 510, TimeToMinutes("08:30"))
	require.Equal(t, 1439, TimeToMinutes("23:59"))
	require.Equal(t, 480, TimeToMinutes("2025-11-17T08:00"))
}

func TestTimeToMinutes_LenientFallback(t *testing.T) {
	// 历史兼容：格式错误返回 0 而不报错
	require.Equal(t, 0, TimeToMinutes(""))
	require.Equal(t, 0, TimeToMinutes("0800"))
	require.Equal(t, 0, TimeToMinutes("ab:cd"))
	require.Equal(t, 0, TimeToMinutes("08:xx"))
}

func TestParseTimePoint(t *testing.T) {
	n, err := ParseTimePoint("08:30")
	require.NoError(t, err)
	require.Equal(t, 510, n)

	n, err = ParseTimePoint("2025-11-17T23:59")
	require.NoError(t, err)
	require.Equal(t, 1439, n)

	for _, bad := range []string{"", "0800", "ab:cd", "24:00", "12:60", "-1:00", "2025-13-40T08:00"} {
		_, err := ParseTimePoint(bad)
		require.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", bad)
	}
}

func TestMinutesToTime_RoundTrip(t *testing.T) {
	for n := 0; n < 1440; n++ {
		require.Equal(t, n, TimeToMinutes(MinutesToTime(n)))
	}
	require.Equal(t, "00:00", MinutesToTime(0))
	require.Equal(t, "08:05", MinutesToTime(485))
	require.Equal(t, "23:59", MinutesToTime(1439))
}

func TestCrossesMidnight(t *testing.T) {
	require.False(t, CrossesMidnight("08:00", "16:00"))
	require.True(t, CrossesMidnight("22:00", "02:00"))
	require.False(t, CrossesMidnight("08:00", "08:00"))
}

func TestCalculateHours_BareTimes(t *testing.T) {
	require.Equal(t, 2, CalculateHours("08:00", "10:00"))
	// 裸时刻下结束早于开始视作跨到次日
	require.Equal(t, 4, CalculateHours("22:00", "02:00"))
	// 裸时刻无法区分 24 小时整的窗口和零长度窗口
	require.Equal(t, 0, CalculateHours("08:00", "08:00"))
}

func TestCalculateHours_WithDates(t *testing.T) {
	require.Equal(t, 24, CalculateHours("2025-11-17T08:00", "2025-11-18T08:00"))
	// 两端带同一天日期但时刻回绕，按录入习惯视作跨零点
	require.Equal(t, 4, CalculateHours("2025-11-17T22:00", "2025-11-17T02:00"))
	require.Equal(t, 10, CalculateHours("2025-11-17T22:00", "2025-11-18T08:00"))
	require.Equal(t, 48, CalculateHours("2025-11-17T08:00", "2025-11-19T08:00"))
	// 跨年
	require.Equal(t, 24, CalculateHours("2025-12-31T12:00", "2026-01-01T12:00"))
}

func TestCalculateHours_Rounding(t *testing.T) {
	// 四舍五入，0.5 向远离零方向进位
	require.Equal(t, 2, CalculateHours("08:00", "09:30"))  // 90 分钟
	require.Equal(t, 1, CalculateHours("08:00", "08:30"))  // 30 分钟
	require.Equal(t, 1, CalculateHours("08:00", "09:29"))  // 89 分钟
	require.Equal(t, 0, CalculateHours("08:00", "08:29"))  // 29 分钟
}

func TestNextDate(t *testing.T) {
	require.Equal(t, "2025-11-18", NextDate("2025-11-17"))
	require.Equal(t, "2025-12-01", NextDate("2025-11-30"))
	require.Equal(t, "2026-01-01", NextDate("2025-12-31"))
	require.Equal(t, "2024-02-29", NextDate("2024-02-28"))
}

func TestParseDateStamp(t *testing.T) {
	month, year, err := ParseDateStamp("2025-11-17")
	require.NoError(t, err)
	require.Equal(t, 11, month)
	require.Equal(t, 2025, year)

	_, _, err = ParseDateStamp("2025/11/17")
	require.ErrorIs(t, err, ErrInvalidTimeFormat)
}
