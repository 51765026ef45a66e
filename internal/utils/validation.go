package utils

import (
	"errors"
	"fmt"
	"slices"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
	"github.com/minfang-dev/station-manager/backend/internal/timeutil"
)

var Teams = []string{"1", "2", "3"}

// NormalizeMission 校验任务载荷并把字段整理成可入库的形态
func NormalizeMission(m *domain.Mission) error {
	if _, _, err := timeutil.ParseDateStamp(m.Date); err != nil {
		return fmt.Errorf("任务日期格式错误: %w", err)
	}
	if _, err := timeutil.ParseTimePoint(m.StartTime); err != nil {
		return fmt.Errorf("任务开始时间格式错误: %w", err)
	}
	if _, err := timeutil.ParseTimePoint(m.EndTime); err != nil {
		return fmt.Errorf("任务结束时间格式错误: %w", err)
	}
	if !slices.Contains(domain.MissionTypes, m.Type) {
		return fmt.Errorf("未知的任务类型 %q", m.Type)
	}
	if !slices.Contains(Teams, m.Team) {
		return fmt.Errorf("未知的队伍 %q", m.Team)
	}

	seen := make(map[int64]bool)
	for i, p := range m.Participants {
		if p.UserID == 0 {
			return fmt.Errorf("第 %d 个参与者缺少用户 ID", i+1)
		}
		if seen[p.UserID] {
			return fmt.Errorf("参与者 %d 重复出现", p.UserID)
		}
		seen[p.UserID] = true

		if (p.CustomStart == "") != (p.CustomEnd == "") {
			return fmt.Errorf("第 %d 个参与者的自定义时间必须成对给出", i+1)
		}
	}

	return nil
}

// NormalizeShift 校验班次载荷并为每个参与者算好 HoursServed。
// 签到签退可以只给时刻（HH:MM），也可以给完整的日期时间
// （YYYY-MM-DDTHH:MM），后者用于跨多天的特殊班次；
// 入库前统一截断成时刻，时长已经算好所以不会丢信息
func NormalizeShift(s *domain.Shift) error {
	if _, _, err := timeutil.ParseDateStamp(s.Date); err != nil {
		return fmt.Errorf("班次日期格式错误: %w", err)
	}
	if !slices.Contains(Teams, s.Team) {
		return fmt.Errorf("未知的队伍 %q", s.Team)
	}
	if len(s.Participants) == 0 {
		return errors.New("班次至少要有一个参与者")
	}

	seen := make(map[int64]bool)
	for i := range s.Participants {
		sp := &s.Participants[i]
		if sp.UserID == 0 {
			return fmt.Errorf("第 %d 个参与者缺少用户 ID", i+1)
		}
		if seen[sp.UserID] {
			return fmt.Errorf("参与者 %d 重复出现", sp.UserID)
		}
		seen[sp.UserID] = true

		if sp.CheckIn == "" || sp.CheckOut == "" {
			return fmt.Errorf("第 %d 个参与者缺少签到或签退时刻", i+1)
		}
		if _, err := timeutil.ParseTimePoint(sp.CheckIn); err != nil {
			return fmt.Errorf("第 %d 个参与者的签到时刻格式错误: %w", i+1, err)
		}
		if _, err := timeutil.ParseTimePoint(sp.CheckOut); err != nil {
			return fmt.Errorf("第 %d 个参与者的签退时刻格式错误: %w", i+1, err)
		}

		checkIn := sp.CheckIn
		checkOut := sp.CheckOut
		if date, _ := timeutil.SplitDateTime(checkIn); date == "" {
			checkIn = s.Date + "T" + checkIn
		}
		if date, clock := timeutil.SplitDateTime(checkOut); date == "" {
			// 没带日期的签退按不跨天或跨一天处理
			checkOut = s.Date + "T" + clock
			if timeutil.TimeToMinutes(clock) <= timeutil.TimeToMinutes(checkIn) {
				checkOut = timeutil.NextDate(s.Date) + "T" + clock
			}
		}

		sp.HoursServed = int32(timeutil.CalculateHours(checkIn, checkOut))

		_, sp.CheckIn = timeutil.SplitDateTime(checkIn)
		_, sp.CheckOut = timeutil.SplitDateTime(checkOut)
	}

	return nil
}
