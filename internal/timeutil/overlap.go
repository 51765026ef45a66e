package timeutil

// normalizeRange 把一个时间窗口规整到以其起点当天为基准的分钟轴上。
// 跨零点的窗口（结束时刻早于开始时刻，或结束时刻相同但结束日期更晚）
// 只把终点加一天，起点保持不动
func normalizeRange(start, end string) (int, int) {
	startDate, _ := SplitDateTime(start)
	endDate, _ := SplitDateTime(end)

	startMinutes := TimeToMinutes(start)
	endMinutes := TimeToMinutes(end)

	crosses := endMinutes < startMinutes ||
		(endMinutes == startMinutes && startDate != "" && endDate != "" && endDate > startDate)
	if crosses {
		endMinutes += minutesPerDay
	}

	return startMinutes, endMinutes
}

// Overlaps 用半开区间规则 s1 < e2 && e1 > s2 判断两个时间窗口是否重叠。
// 裸时刻（"HH:MM"）和完整时间（"YYYY-MM-DDTHH:MM"）给出一致的结果
func Overlaps(start1, end1, start2, end2 string) bool {
	s1, e1 := normalizeRange(start1, end1)
	s2, e2 := normalizeRange(start2, end2)

	return s1 < e2 && e1 > s2
}
