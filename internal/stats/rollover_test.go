package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

func TestRollover_SnapshotsAndResets(t *testing.T) {
	store := newFakeStore(11, 2025)
	store.addUser(1, domain.RoleEmployee)
	store.addUser(2, domain.RoleHead)
	r := NewReconciler(store)

	_, err := r.CreateShift(newTestShift("2025-11-05", 1, "08:00", "16:00", 8))
	require.NoError(t, err)

	m := newTestMission("2025-11-06", "09:00", "11:00", 1)
	m.Type = domain.MissionTypeRescue
	_, err = r.CreateMission(m)
	require.NoError(t, err)
	_, err = r.CreateMission(newTestMission("2025-11-07", "20:00", "22:00", 1))
	require.NoError(t, err)

	ro := NewRollover(store)
	newMonth, newYear, err := ro.Run(11, 2025)
	require.NoError(t, err)
	require.Equal(t, int32(12), newMonth)
	require.Equal(t, int32(2025), newYear)

	report := store.reports[reportKey(1, 11, 2025)]
	require.NotNil(t, report)
	require.Equal(t, int32(12), report.TotalHours)
	require.Equal(t, int32(2), report.TotalMissions)
	require.Equal(t, int32(1), report.TotalDays)
	require.Equal(t, int32(1), report.TypeCounts.Rescue)
	require.Equal(t, int32(1), report.TypeCounts.Fire)

	// 没有任何记录的用户也要有一份全零报表
	empty := store.reports[reportKey(2, 11, 2025)]
	require.NotNil(t, empty)
	require.Equal(t, int32(0), empty.TotalHours)

	for _, u := range store.users {
		require.Equal(t, int32(0), u.CurrentMonthHours)
		require.Equal(t, int32(0), u.CurrentMonthMissions)
		require.Equal(t, int32(0), u.CurrentMonthDays)
	}

	settings, err := store.GetSettings()
	require.NoError(t, err)
	require.Equal(t, int32(12), settings.ActiveMonth)
	require.Equal(t, int32(2025), settings.ActiveYear)
	require.Equal(t, "1", settings.LastMonthEndTeam)
}

// 重复结转同一个月份是无操作，不会二次清零也不会覆盖报表
func TestRollover_RunTwiceIsNoop(t *testing.T) {
	store := newFakeStore(11, 2025)
	store.addUser(1, domain.RoleEmployee)
	r := NewReconciler(store)
	ro := NewRollover(store)

	_, err := r.CreateMission(newTestMission("2025-11-06", "09:00", "11:00", 1))
	require.NoError(t, err)

	_, _, err = ro.Run(11, 2025)
	require.NoError(t, err)
	require.Equal(t, int32(2), store.reports[reportKey(1, 11, 2025)].TotalHours)

	// 新月份里又攒了数据，重复结转旧月份不能动它
	_, err = r.CreateMission(newTestMission("2025-12-03", "09:00", "13:00", 1))
	require.NoError(t, err)

	newMonth, newYear, err := ro.Run(11, 2025)
	require.NoError(t, err)
	require.Equal(t, int32(12), newMonth)
	require.Equal(t, int32(2025), newYear)

	require.Equal(t, int32(2), store.reports[reportKey(1, 11, 2025)].TotalHours)
	require.Equal(t, int32(4), store.users[1].CurrentMonthHours, "新月份的累计值不能被误清零")
	require.Len(t, store.reports, 1)
}

func TestRollover_EndTeamFromLastShift(t *testing.T) {
	store := newFakeStore(11, 2025)
	store.addUser(1, domain.RoleEmployee)
	r := NewReconciler(store)

	early := newTestShift("2025-11-03", 1, "08:00", "16:00", 8)
	early.Team = "1"
	_, err := r.CreateShift(early)
	require.NoError(t, err)

	late := newTestShift("2025-11-28", 1, "08:00", "16:00", 8)
	late.Team = "2"
	_, err = r.CreateShift(late)
	require.NoError(t, err)

	ro := NewRollover(store)
	_, _, err = ro.Run(11, 2025)
	require.NoError(t, err)

	settings, err := store.GetSettings()
	require.NoError(t, err)
	require.Equal(t, "2", settings.LastMonthEndTeam, "轮换起点取月内时间最晚的班次")
}

// 当月没有任何班次时轮换起点约定为 '3'
func TestRollover_EndTeamDefaultsWithoutShifts(t *testing.T) {
	store := newFakeStore(11, 2025)
	store.addUser(1, domain.RoleEmployee)

	ro := NewRollover(store)
	_, _, err := ro.Run(11, 2025)
	require.NoError(t, err)

	settings, err := store.GetSettings()
	require.NoError(t, err)
	require.Equal(t, "3", settings.LastMonthEndTeam)
}

func TestRollover_DecemberAdvancesYear(t *testing.T) {
	store := newFakeStore(12, 2025)
	store.addUser(1, domain.RoleEmployee)

	ro := NewRollover(store)
	newMonth, newYear, err := ro.Run(12, 2025)
	require.NoError(t, err)
	require.Equal(t, int32(1), newMonth)
	require.Equal(t, int32(2026), newYear)
}

func TestRollover_RejectsBadMonth(t *testing.T) {
	store := newFakeStore(11, 2025)
	ro := NewRollover(store)

	_, _, err := ro.Run(0, 2025)
	require.Error(t, err)
	_, _, err = ro.Run(13, 2025)
	require.Error(t, err)
}

func TestNextMonth(t *testing.T) {
	m, y := NextMonth(1, 2025)
	require.Equal(t, int32(2), m)
	require.Equal(t, int32(2025), y)

	m, y = NextMonth(12, 2025)
	require.Equal(t, int32(1), m)
	require.Equal(t, int32(2026), y)
}
