package stats

import (
	"fmt"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
	"github.com/minfang-dev/station-manager/backend/internal/timeutil"
)

// Reconciler 负责任务和班次在创建、修改、删除时的累计值对账：
// 先回退旧记录的贡献，落库，再计入新记录的贡献。
// 整个对账过程在一个事务内完成，任何一步出错都会整体回滚
type Reconciler struct {
	store Store
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// inActiveMonth 判断记录日期是否落在当前开放的月份。
// 归档月份的记录仍然可以增删改，但不再影响累计值
func inActiveMonth(store Store, date string) (bool, error) {
	settings, err := store.GetSettings()
	if err != nil {
		return false, err
	}

	month, year, err := timeutil.ParseDateStamp(date)
	if err != nil {
		return false, err
	}

	return int32(month) == settings.ActiveMonth && int32(year) == settings.ActiveYear, nil
}

func validateMission(m *domain.Mission) error {
	if _, _, err := timeutil.ParseDateStamp(m.Date); err != nil {
		return err
	}
	if _, err := timeutil.ParseTimePoint(m.StartTime); err != nil {
		return err
	}
	if _, err := timeutil.ParseTimePoint(m.EndTime); err != nil {
		return err
	}
	for i, p := range m.Participants {
		if p.UserID == 0 {
			return fmt.Errorf("第 %d 个参与者缺少用户 ID", i+1)
		}
		if (p.CustomStart == "") != (p.CustomEnd == "") {
			return fmt.Errorf("第 %d 个参与者的自定义时间必须成对给出", i+1)
		}
	}
	return nil
}

func validateShift(s *domain.Shift) error {
	if _, _, err := timeutil.ParseDateStamp(s.Date); err != nil {
		return err
	}
	for i, sp := range s.Participants {
		if sp.UserID == 0 {
			return fmt.Errorf("第 %d 个参与者缺少用户 ID", i+1)
		}
		if sp.CheckIn == "" || sp.CheckOut == "" {
			return fmt.Errorf("第 %d 个参与者缺少签到或签退时刻", i+1)
		}
	}
	return nil
}

func (r *Reconciler) CreateMission(m *domain.Mission) ([]domain.AccumulatorDelta, error) {
	if err := validateMission(m); err != nil {
		return nil, err
	}

	var deltas []domain.AccumulatorDelta
	err := r.store.InTx(func(tx Store) error {
		if err := tx.CreateMission(m); err != nil {
			return err
		}

		active, err := inActiveMonth(tx, m.Date)
		if err != nil {
			return err
		}
		if !active {
			return nil
		}

		return applyMission(tx, m, 1, &deltas)
	})
	if err != nil {
		return nil, err
	}

	return deltas, nil
}

func (r *Reconciler) UpdateMission(m *domain.Mission) ([]domain.AccumulatorDelta, error) {
	if err := validateMission(m); err != nil {
		return nil, err
	}

	var deltas []domain.AccumulatorDelta
	err := r.store.InTx(func(tx Store) error {
		old, err := tx.GetMissionByID(m.ID)
		if err != nil {
			return err
		}

		// 先把旧状态的贡献回退掉，相当于删除旧记录
		oldActive, err := inActiveMonth(tx, old.Date)
		if err != nil {
			return err
		}
		if oldActive {
			if err := applyMission(tx, old, -1, &deltas); err != nil {
				return err
			}
		}

		if err := tx.UpdateMission(m); err != nil {
			return err
		}

		newActive, err := inActiveMonth(tx, m.Date)
		if err != nil {
			return err
		}
		if !newActive {
			return nil
		}

		return applyMission(tx, m, 1, &deltas)
	})
	if err != nil {
		return nil, err
	}

	return deltas, nil
}

func (r *Reconciler) DeleteMission(id int64) ([]domain.AccumulatorDelta, error) {
	var deltas []domain.AccumulatorDelta
	err := r.store.InTx(func(tx Store) error {
		m, err := tx.GetMissionByID(id)
		if err != nil {
			return err
		}

		active, err := inActiveMonth(tx, m.Date)
		if err != nil {
			return err
		}
		if active {
			if err := applyMission(tx, m, -1, &deltas); err != nil {
				return err
			}
		}

		return tx.DeleteMission(id)
	})
	if err != nil {
		return nil, err
	}

	return deltas, nil
}

func (r *Reconciler) CreateShift(s *domain.Shift) ([]domain.AccumulatorDelta, error) {
	if err := validateShift(s); err != nil {
		return nil, err
	}

	var deltas []domain.AccumulatorDelta
	err := r.store.InTx(func(tx Store) error {
		if err := tx.CreateShift(s); err != nil {
			return err
		}

		active, err := inActiveMonth(tx, s.Date)
		if err != nil {
			return err
		}
		if active {
			if err := applyShift(tx, s, 1, &deltas); err != nil {
				return err
			}
		}

		return recomputeAttendance(tx, s.Date)
	})
	if err != nil {
		return nil, err
	}

	return deltas, nil
}

func (r *Reconciler) UpdateShift(s *domain.Shift) ([]domain.AccumulatorDelta, error) {
	if err := validateShift(s); err != nil {
		return nil, err
	}

	var deltas []domain.AccumulatorDelta
	err := r.store.InTx(func(tx Store) error {
		old, err := tx.GetShiftByID(s.ID)
		if err != nil {
			return err
		}

		oldActive, err := inActiveMonth(tx, old.Date)
		if err != nil {
			return err
		}
		if oldActive {
			if err := applyShift(tx, old, -1, &deltas); err != nil {
				return err
			}
		}

		if err := tx.UpdateShift(s); err != nil {
			return err
		}

		newActive, err := inActiveMonth(tx, s.Date)
		if err != nil {
			return err
		}
		if newActive {
			if err := applyShift(tx, s, 1, &deltas); err != nil {
				return err
			}
		}

		// 日期被修改时，旧日期的考勤要根据剩下的班次重算
		if old.Date != s.Date {
			if err := recomputeAttendance(tx, old.Date); err != nil {
				return err
			}
		}

		return recomputeAttendance(tx, s.Date)
	})
	if err != nil {
		return nil, err
	}

	return deltas, nil
}

func (r *Reconciler) DeleteShift(id int64) ([]domain.AccumulatorDelta, error) {
	var deltas []domain.AccumulatorDelta
	err := r.store.InTx(func(tx Store) error {
		s, err := tx.GetShiftByID(id)
		if err != nil {
			return err
		}

		active, err := inActiveMonth(tx, s.Date)
		if err != nil {
			return err
		}
		if active {
			if err := applyShift(tx, s, -1, &deltas); err != nil {
				return err
			}
		}

		if err := tx.DeleteShift(id); err != nil {
			return err
		}

		return recomputeAttendance(tx, s.Date)
	})
	if err != nil {
		return nil, err
	}

	return deltas, nil
}

// recomputeAttendance 根据给定日期现存的班次重算当日考勤：
// 出现在任意班次中的在编人员记在岗，否则记缺勤；
// 当日已经没有任何班次时清空当日考勤
func recomputeAttendance(store Store, date string) error {
	shifts, err := store.GetShiftsByDate(date)
	if err != nil {
		return err
	}

	if len(shifts) == 0 {
		return store.DeleteAttendanceByDate(date)
	}

	onDuty := make(map[int64]bool)
	for _, s := range shifts {
		for _, sp := range s.Participants {
			onDuty[sp.UserID] = true
		}
	}

	staff, err := store.GetUsersByRoles(domain.StaffRoles)
	if err != nil {
		return err
	}

	for _, u := range staff {
		code := domain.AttendanceAbsent
		if onDuty[u.ID] {
			code = domain.AttendancePresent
		}
		if err := store.UpsertAttendance(&domain.AttendanceRecord{Date: date, UserID: u.ID, Code: code}); err != nil {
			return err
		}
	}

	return nil
}
