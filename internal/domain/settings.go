package domain

// Settings 是单行配置，记录当前开放变更的月份。
// 只有月度结转会写入它；所有任务/班次变更都会读取它来判断
// 是否需要更新累计值
type Settings struct {
	ActiveMonth      int32  `json:"activeMonth"`
	ActiveYear       int32  `json:"activeYear"`
	LastMonthEndTeam string `json:"lastMonthEndTeam"`
	Version          int32  `json:"-"`
}
