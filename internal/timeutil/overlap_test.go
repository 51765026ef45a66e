package timeutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOverlaps_BareTimes(t *testing.T) {
	require.True(t, Overlaps("08:00", "12:00", "10:00", "14:00"))
	require.True(t, Overlaps("08:00", "12:00", "09:00", "10:00")) // 完全包含
	require.False(t, Overlaps("08:00", "10:00", "12:00", "14:00"))
	// 半开区间：首尾相接不算重叠
	require.False(t, Overlaps("08:00", "10:00", "10:00", "12:00"))
}

func TestOverlaps_CrossMidnight(t *testing.T) {
	// 跨零点班次覆盖了次日凌晨的任务
	require.True(t, Overlaps("22:00", "02:00", "23:00", "23:30"))
	require.True(t, Overlaps("22:00", "02:00", "00:30", "01:00"))
	require.False(t, Overlaps("22:00", "02:00", "03:00", "04:00"))
}

func TestOverlaps_FullDatetimes(t *testing.T) {
	require.True(t, Overlaps(
		"2025-11-10T08:00", "2025-11-11T08:00",
		"2025-11-10T09:00", "2025-11-10T11:00",
	))
	require.False(t, Overlaps(
		"2025-11-10T08:00", "2025-11-10T10:00",
		"2025-11-10T12:00", "2025-11-10T14:00",
	))
}

// 起止时刻相同但结束日期更晚的 24 小时窗口：
// 只有显式日期能证明它不是零长度窗口
func TestOverlaps_SameTimeDifferentDate(t *testing.T) {
	require.True(t, Overlaps(
		"2025-11-10T08:00", "2025-11-11T08:00",
		"2025-11-11T08:00", "2025-11-11T09:00",
	))
	// 同样的窗口用裸时刻表示就退化成零长度，不再重叠
	require.False(t, Overlaps("08:00", "08:00", "08:00", "09:00"))
}

func TestOverlaps_Symmetric(t *testing.T) {
	cases := [][4]string{
		{"08:00", "12:00", "10:00", "14:00"},
		{"22:00", "02:00", "23:00", "23:30"},
		{"08:00", "10:00", "12:00", "14:00"},
		{"2025-11-10T08:00", "2025-11-11T08:00", "2025-11-10T09:00", "2025-11-10T11:00"},
		{"2025-11-10T08:00", "2025-11-11T08:00", "2025-11-11T08:00", "2025-11-11T09:00"},
	}

	for _, c := range cases {
		require.Equal(t,
			Overlaps(c[0], c[1], c[2], c[3]),
			Overlaps(c[2], c[3], c[0], c[1]),
			"对称性：%v", c,
		)
	}
}

// 同一窗口用裸时刻和完整时间两种形式表示时结果必须一致
func TestOverlaps_BareAndFullFormsAgree(t *testing.T) {
	require.Equal(t,
		Overlaps("08:00", "12:00", "10:00", "14:00"),
		Overlaps("2025-11-10T08:00", "2025-11-10T12:00", "2025-11-10T10:00", "2025-11-10T14:00"),
	)
	require.Equal(t,
		Overlaps("22:00", "02:00", "23:00", "23:30"),
		Overlaps("2025-11-10T22:00", "2025-11-11T02:00", "2025-11-10T23:00", "2025-11-10T23:30"),
	)
}
