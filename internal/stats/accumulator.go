package stats

import (
	"fmt"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
	"github.com/minfang-dev/station-manager/backend/internal/timeutil"
)

// EffectiveWindow 返回参与者在任务中的有效时间窗口：
// 参与者自定义了时间就用自定义的，否则用任务本身的时间窗口
func EffectiveWindow(m *domain.Mission, p *domain.MissionParticipant) (start, end string) {
	if p.CustomStart != "" && p.CustomEnd != "" {
		return p.CustomStart, p.CustomEnd
	}
	return m.Date + "T" + m.StartTime, m.Date + "T" + m.EndTime
}

// ShiftWindow 根据班次日期还原参与者签到签退的完整时间窗口。
// 签退时刻不晚于签到时刻说明班次跨零点，签退落在次日；
// 两个时刻相等按整整一天的班次处理，而不是零长度窗口
func ShiftWindow(s *domain.Shift, sp *domain.ShiftParticipant) (start, end string) {
	endDate := s.Date
	if timeutil.TimeToMinutes(sp.CheckOut) <= timeutil.TimeToMinutes(sp.CheckIn) {
		endDate = timeutil.NextDate(s.Date)
	}
	return s.Date + "T" + sp.CheckIn, endDate + "T" + sp.CheckOut
}

// coveredByShift 判断用户在给定日期是否有班次覆盖了指定的时间窗口。
// excludeShiftID 用于在班次自身的对账过程中排除正在处理的班次
func coveredByShift(store Store, userID int64, date string, start, end string, excludeShiftID int64) (bool, error) {
	shifts, err := store.GetShiftsByUserAndDate(userID, date)
	if err != nil {
		return false, err
	}

	for _, shift := range shifts {
		if shift.ID == excludeShiftID {
			continue
		}
		for i := range shift.Participants {
			sp := &shift.Participants[i]
			if sp.UserID != userID {
				continue
			}
			shiftStart, shiftEnd := ShiftWindow(shift, sp)
			if timeutil.Overlaps(start, end, shiftStart, shiftEnd) {
				return true, nil
			}
		}
	}

	return false, nil
}

// applyMission 把任务对每个参与者的贡献按 sign（+1 累加 / -1 回退）
// 计入当月累计值。任务次数无条件计入；工时只在没有班次覆盖
// 同一时间段时计入，避免同一小时被任务和班次重复统计
func applyMission(store Store, m *domain.Mission, sign int32, deltas *[]domain.AccumulatorDelta) error {
	for i := range m.Participants {
		p := &m.Participants[i]
		if p.UserID == 0 {
			return fmt.Errorf("任务 %d 的参与者缺少用户 ID", m.ID)
		}

		start, end := EffectiveWindow(m, p)
		hours := int32(timeutil.CalculateHours(start, end))

		covered, err := coveredByShift(store, p.UserID, m.Date, start, end, 0)
		if err != nil {
			return err
		}
		if covered {
			hours = 0
		}

		if err := addCounters(store, deltas, p.UserID, domain.RecordKindMission, m.ID, sign, hours, 1, 0); err != nil {
			return err
		}
	}

	return nil
}

// applyShift 把班次对每个参与者的贡献按 sign 计入当月累计值。
// 班次的工时和到岗天数无条件计入；随后检查该用户当天的任务：
// 与本班次时间重叠、且没有其他班次仍然覆盖的任务，
// 其工时需要反向调整（累加班次时扣掉已计入的任务工时，
// 回退班次时把之前扣掉的任务工时补回来）
func applyShift(store Store, s *domain.Shift, sign int32, deltas *[]domain.AccumulatorDelta) error {
	for i := range s.Participants {
		sp := &s.Participants[i]

		if err := addCounters(store, deltas, sp.UserID, domain.RecordKindShift, s.ID, sign, sp.HoursServed, 0, 1); err != nil {
			return err
		}

		shiftStart, shiftEnd := ShiftWindow(s, sp)

		missions, err := store.GetMissionsByUserAndDate(sp.UserID, s.Date)
		if err != nil {
			return err
		}

		for _, m := range missions {
			for j := range m.Participants {
				p := &m.Participants[j]
				if p.UserID != sp.UserID {
					continue
				}

				start, end := EffectiveWindow(m, p)
				if !timeutil.Overlaps(start, end, shiftStart, shiftEnd) {
					continue
				}

				// 还有别的班次覆盖这个任务时工时本来就没计入，不能再扣一次
				covered, err := coveredByShift(store, sp.UserID, s.Date, start, end, s.ID)
				if err != nil {
					return err
				}
				if covered {
					continue
				}

				hours := int32(timeutil.CalculateHours(start, end))
				if err := addCounters(store, deltas, sp.UserID, domain.RecordKindMission, m.ID, -sign, hours, 0, 0); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func addCounters(store Store, deltas *[]domain.AccumulatorDelta, userID int64, kind domain.RecordKind, recordID int64, sign, hours, missions, days int32) error {
	if err := store.AddToUserCounters(userID, sign*hours, sign*missions, sign*days); err != nil {
		return err
	}

	op := domain.DeltaOpApply
	if sign < 0 {
		op = domain.DeltaOpRevert
	}
	*deltas = append(*deltas, domain.AccumulatorDelta{
		UserID:        userID,
		RecordKind:    kind,
		RecordID:      recordID,
		Op:            op,
		HoursDelta:    sign * hours,
		MissionsDelta: sign * missions,
		DaysDelta:     sign * days,
	})

	return nil
}
