package stats

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

func newTestShift(date string, userID int64, checkIn, checkOut string, hours int32) *domain.Shift {
	return &domain.Shift{
		Date: date,
		Team: "1",
		Participants: []domain.ShiftParticipant{
			{UserID: userID, CheckIn: checkIn, CheckOut: checkOut, HoursServed: hours},
		},
	}
}

func newTestMission(date, start, end string, userID int64) *domain.Mission {
	return &domain.Mission{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Type:      domain.MissionTypeFire,
		Team:      "1",
		Participants: []domain.MissionParticipant{
			{UserID: userID},
		},
	}
}

// 24 小时班次覆盖同日任务：任务工时被抑制，任务次数照常计入
func TestReconciler_ShiftCoversMission(t *testing.T) {
	store := newFakeStore(11, 2025)
	u := store.addUser(1, domain.RoleEmployee)
	r := NewReconciler(store)

	_, err := r.CreateShift(newTestShift("2025-11-10", 1, "08:00", "08:00", 24))
	require.NoError(t, err)
	require.Equal(t, int32(24), u.CurrentMonthHours)
	require.Equal(t, int32(1), u.CurrentMonthDays)

	_, err = r.CreateMission(newTestMission("2025-11-10", "09:00", "11:00", 1))
	require.NoError(t, err)

	require.Equal(t, int32(24), u.CurrentMonthHours, "任务工时应被班次覆盖抑制")
	require.Equal(t, int32(1), u.CurrentMonthMissions, "任务次数无条件计入")
}

// 删除覆盖任务的班次后，任务工时要补回来
func TestReconciler_DeleteCoveringShift(t *testing.T) {
	store := newFakeStore(11, 2025)
	u := store.addUser(1, domain.RoleEmployee)
	r := NewReconciler(store)

	shift := newTestShift("2025-11-10", 1, "08:00", "08:00", 24)
	_, err := r.CreateShift(shift)
	require.NoError(t, err)
	_, err = r.CreateMission(newTestMission("2025-11-10", "09:00", "11:00", 1))
	require.NoError(t, err)

	_, err = r.DeleteShift(shift.ID)
	require.NoError(t, err)

	require.Equal(t, int32(2), u.CurrentMonthHours, "班次删除后任务的 2 小时应补回")
	require.Equal(t, int32(1), u.CurrentMonthMissions)
	require.Equal(t, int32(0), u.CurrentMonthDays)
}

// 先有任务后有班次：创建班次时扣掉已计入的任务工时
func TestReconciler_ShiftCreatedAfterMission(t *testing.T) {
	store := newFakeStore(11, 2025)
	u := store.addUser(1, domain.RoleEmployee)
	r := NewReconciler(store)

	_, err := r.CreateMission(newTestMission("2025-11-10", "09:00", "11:00", 1))
	require.NoError(t, err)
	require.Equal(t, int32(2), u.CurrentMonthHours)

	_, err = r.CreateShift(newTestShift("2025-11-10", 1, "08:00", "16:00", 8))
	require.NoError(t, err)

	require.Equal(t, int32(8), u.CurrentMonthHours, "任务工时已由班次覆盖，应只剩班次的 8 小时")
	require.Equal(t, int32(1), u.CurrentMonthMissions)
}

// 两个班次先后覆盖同一个任务：任务工时只能被扣一次
func TestReconciler_SecondCoveringShiftDoesNotDoubleExclude(t *testing.T) {
	store := newFakeStore(11, 2025)
	u := store.addUser(1, domain.RoleEmployee)
	r := NewReconciler(store)

	_, err := r.CreateMission(newTestMission("2025-11-10", "09:00", "11:00", 1))
	require.NoError(t, err)

	first := newTestShift("2025-11-10", 1, "08:00", "12:00", 4)
	_, err = r.CreateShift(first)
	require.NoError(t, err)
	require.Equal(t, int32(4), u.CurrentMonthHours)

	second := newTestShift("2025-11-10", 1, "09:00", "13:00", 4)
	_, err = r.CreateShift(second)
	require.NoError(t, err)
	require.Equal(t, int32(8), u.CurrentMonthHours, "第二个班次不应再扣一次任务工时")

	// 删掉其中一个班次：另一个仍覆盖任务，工时不能补回
	_, err = r.DeleteShift(first.ID)
	require.NoError(t, err)
	require.Equal(t, int32(4), u.CurrentMonthHours)

	// 删掉最后一个覆盖班次后任务工时才补回
	_, err = r.DeleteShift(second.ID)
	require.NoError(t, err)
	require.Equal(t, int32(2), u.CurrentMonthHours)
}

func TestReconciler_UpdateMissionRevertsOldState(t *testing.T) {
	store := newFakeStore(11, 2025)
	u := store.addUser(1, domain.RoleEmployee)
	u2 := store.addUser(2, domain.RoleEmployee)
	r := NewReconciler(store)

	m := newTestMission("2025-11-10", "09:00", "11:00", 1)
	_, err := r.CreateMission(m)
	require.NoError(t, err)
	require.Equal(t, int32(2), u.CurrentMonthHours)

	// 换人并延长时间
	m.EndTime = "13:00"
	m.Participants = []domain.MissionParticipant{{UserID: 2}}
	_, err = r.UpdateMission(m)
	require.NoError(t, err)

	require.Equal(t, int32(0), u.CurrentMonthHours)
	require.Equal(t, int32(0), u.CurrentMonthMissions)
	require.Equal(t, int32(4), u2.CurrentMonthHours)
	require.Equal(t, int32(1), u2.CurrentMonthMissions)
}

// 参与者自定义时间窗口优先于任务本身的时间窗口
func TestReconciler_CustomParticipantWindow(t *testing.T) {
	store := newFakeStore(11, 2025)
	u := store.addUser(1, domain.RoleEmployee)
	r := NewReconciler(store)

	m := newTestMission("2025-11-10", "09:00", "17:00", 1)
	m.Participants[0].CustomStart = "10:00"
	m.Participants[0].CustomEnd = "13:00"
	_, err := r.CreateMission(m)
	require.NoError(t, err)

	require.Equal(t, int32(3), u.CurrentMonthHours)
}

// 归档月份的记录可以增删改，但不触碰累计值
func TestReconciler_InactiveMonthSkipsAccumulators(t *testing.T) {
	store := newFakeStore(11, 2025)
	u := store.addUser(1, domain.RoleEmployee)
	r := NewReconciler(store)

	deltas, err := r.CreateMission(newTestMission("2025-10-05", "09:00", "11:00", 1))
	require.NoError(t, err)
	require.Empty(t, deltas)
	require.Equal(t, int32(0), u.CurrentMonthHours)
	require.Equal(t, int32(0), u.CurrentMonthMissions)
	require.Len(t, store.missions, 1, "记录本身仍然要保存")
}

// 日期从归档月份改到开放月份时只应计入新贡献
func TestReconciler_UpdateFromArchivedToActive(t *testing.T) {
	store := newFakeStore(11, 2025)
	u := store.addUser(1, domain.RoleEmployee)
	r := NewReconciler(store)

	m := newTestMission("2025-10-05", "09:00", "11:00", 1)
	_, err := r.CreateMission(m)
	require.NoError(t, err)

	m.Date = "2025-11-05"
	_, err = r.UpdateMission(m)
	require.NoError(t, err)

	require.Equal(t, int32(2), u.CurrentMonthHours)
	require.Equal(t, int32(1), u.CurrentMonthMissions)
}

func TestReconciler_MissionNotFound(t *testing.T) {
	store := newFakeStore(11, 2025)
	store.addUser(1, domain.RoleEmployee)
	r := NewReconciler(store)

	_, err := r.DeleteMission(42)
	require.ErrorIs(t, err, sql.ErrNoRows)

	_, err = r.UpdateMission(&domain.Mission{ID: 42, Date: "2025-11-10", StartTime: "08:00", EndTime: "10:00"})
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReconciler_ValidationErrors(t *testing.T) {
	store := newFakeStore(11, 2025)
	r := NewReconciler(store)

	_, err := r.CreateShift(&domain.Shift{
		Date:         "2025-11-10",
		Participants: []domain.ShiftParticipant{{UserID: 1, CheckIn: "08:00"}},
	})
	require.Error(t, err, "缺少签退时刻必须报错")
	require.Empty(t, store.shifts, "校验失败不应落库")

	_, err = r.CreateMission(&domain.Mission{Date: "2025-11-10", StartTime: "8点", EndTime: "10:00"})
	require.Error(t, err)

	_, err = r.CreateMission(&domain.Mission{
		Date: "2025-11-10", StartTime: "08:00", EndTime: "10:00",
		Participants: []domain.MissionParticipant{{}},
	})
	require.Error(t, err, "参与者缺少用户 ID 必须报错")
}

func TestReconciler_AttendanceRecompute(t *testing.T) {
	store := newFakeStore(11, 2025)
	store.addUser(1, domain.RoleEmployee)
	store.addUser(2, domain.RoleHead)
	store.addUser(3, domain.RoleAdminStaff)
	r := NewReconciler(store)

	shift := newTestShift("2025-11-10", 1, "08:00", "16:00", 8)
	_, err := r.CreateShift(shift)
	require.NoError(t, err)

	require.Equal(t, domain.AttendancePresent, store.attendance["2025-11-10|1"])
	require.Equal(t, domain.AttendanceAbsent, store.attendance["2025-11-10|2"])
	require.Equal(t, domain.AttendanceAbsent, store.attendance["2025-11-10|3"])

	// 班次改期：旧日期的考勤被清空，新日期重算
	shift.Date = "2025-11-11"
	_, err = r.UpdateShift(shift)
	require.NoError(t, err)

	_, exists := store.attendance["2025-11-10|1"]
	require.False(t, exists, "旧日期已无班次，考勤应清空")
	require.Equal(t, domain.AttendancePresent, store.attendance["2025-11-11|1"])

	_, err = r.DeleteShift(shift.ID)
	require.NoError(t, err)
	_, exists = store.attendance["2025-11-11|1"]
	require.False(t, exists)
}

func TestReconciler_EmitsDeltas(t *testing.T) {
	store := newFakeStore(11, 2025)
	store.addUser(1, domain.RoleEmployee)
	r := NewReconciler(store)

	deltas, err := r.CreateMission(newTestMission("2025-11-10", "09:00", "11:00", 1))
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	require.Equal(t, domain.DeltaOpApply, deltas[0].Op)
	require.Equal(t, int32(2), deltas[0].HoursDelta)
	require.Equal(t, int32(1), deltas[0].MissionsDelta)
	require.Equal(t, domain.RecordKindMission, deltas[0].RecordKind)
}
