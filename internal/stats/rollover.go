package stats

import (
	"fmt"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

// Rollover 负责月度结转：把所有用户的当月累计值固化成月度报表，
// 清零累计值并推进当前开放月份。
// 只有它允许清零累计值和创建月度报表
type Rollover struct {
	store Store
}

func NewRollover(store Store) *Rollover {
	return &Rollover{store: store}
}

// NextMonth 计算下一个开放月份，12 月结转后进入次年 1 月
func NextMonth(month, year int32) (int32, int32) {
	if month == 12 {
		return 1, year + 1
	}
	return month + 1, year
}

// Run 结转指定月份，返回结转后的开放月份。
// 结转一个已经不再开放的月份是无操作（防止重复调用时二次清零），
// 报表创建本身也有 (用户, 月, 年) 唯一约束兜底。
// 调用方需要保证同一部署内不会并发调用（CLI 层通过 redis 锁保证）
func (ro *Rollover) Run(month, year int32) (newMonth, newYear int32, err error) {
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("月份 %d 不合法", month)
	}

	err = ro.store.InTx(func(tx Store) error {
		settings, err := tx.GetSettings()
		if err != nil {
			return err
		}

		if settings.ActiveMonth != month || settings.ActiveYear != year {
			// 该月已经结转过，直接返回当前的开放月份
			newMonth, newYear = settings.ActiveMonth, settings.ActiveYear
			return nil
		}

		users, err := tx.GetAllUsers()
		if err != nil {
			return err
		}

		// 按用户统计当月各类任务的次数
		missions, err := tx.GetMissionsByMonth(month, year)
		if err != nil {
			return err
		}

		tally := make(map[int64]*domain.MissionTypeCounts)
		for _, m := range missions {
			for _, p := range m.Participants {
				if _, exists := tally[p.UserID]; !exists {
					tally[p.UserID] = &domain.MissionTypeCounts{}
				}
				tally[p.UserID].Add(m.Type)
			}
		}

		for _, u := range users {
			report := &domain.MonthlyReport{
				UserID:        u.ID,
				Month:         month,
				Year:          year,
				TotalHours:    u.CurrentMonthHours,
				TotalMissions: u.CurrentMonthMissions,
				TotalDays:     u.CurrentMonthDays,
			}
			if counts, exists := tally[u.ID]; exists {
				report.TypeCounts = *counts
			}

			if err := tx.CreateMonthlyReportIfAbsent(report); err != nil {
				return err
			}
		}

		if err := tx.ResetAllUserCounters(); err != nil {
			return err
		}

		// 月底最后一个班次的队伍决定下个月的轮换起点；
		// 当月没有班次时约定为 '3'，下个月照例从 '1' 开始
		endTeam := "3"
		lastShift, err := tx.GetLastShiftOfMonth(month, year)
		if err != nil {
			return err
		}
		if lastShift != nil {
			endTeam = lastShift.Team
		}

		newMonth, newYear = NextMonth(month, year)

		return tx.UpsertSettings(&domain.Settings{
			ActiveMonth:      newMonth,
			ActiveYear:       newYear,
			LastMonthEndTeam: endTeam,
		})
	})
	if err != nil {
		return 0, 0, err
	}

	return newMonth, newYear, nil
}
