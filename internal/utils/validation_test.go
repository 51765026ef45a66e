package utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

func TestNormalizeShift_ComputesHours(t *testing.T) {
	s := &domain.Shift{
		Date: "2025-11-10",
		Team: "1",
		Participants: []domain.ShiftParticipant{
			{UserID: 1, CheckIn: "08:00", CheckOut: "16:00"},
		},
	}

	require.NoError(t, NormalizeShift(s))
	require.Equal(t, int32(8), s.Participants[0].HoursServed)
	require.Equal(t, "08:00", s.Participants[0].CheckIn)
	require.Equal(t, "16:00", s.Participants[0].CheckOut)
}

// 签退时刻不晚于签到时刻的班次按跨天处理
func TestNormalizeShift_OvernightAndFullDay(t *testing.T) {
	s := &domain.Shift{
		Date: "2025-11-10",
		Team: "2",
		Participants: []domain.ShiftParticipant{
			{UserID: 1, CheckIn: "22:00", CheckOut: "02:00"},
			{UserID: 2, CheckIn: "08:00", CheckOut: "08:00"},
		},
	}

	require.NoError(t, NormalizeShift(s))
	require.Equal(t, int32(4), s.Participants[0].HoursServed)
	require.Equal(t, int32(24), s.Participants[1].HoursServed)
}

// 带完整日期的签退支持跨多天的班次，入库时截断成时刻
func TestNormalizeShift_MultiDayCheckOut(t *testing.T) {
	s := &domain.Shift{
		Date: "2025-11-10",
		Team: "3",
		Participants: []domain.ShiftParticipant{
			{UserID: 1, CheckIn: "08:00", CheckOut: "2025-11-12T08:00"},
		},
	}

	require.NoError(t, NormalizeShift(s))
	require.Equal(t, int32(48), s.Participants[0].HoursServed)
	require.Equal(t, "08:00", s.Participants[0].CheckOut)
}

func TestNormalizeShift_Rejections(t *testing.T) {
	base := func() *domain.Shift {
		return &domain.Shift{
			Date: "2025-11-10",
			Team: "1",
			Participants: []domain.ShiftParticipant{
				{UserID: 1, CheckIn: "08:00", CheckOut: "16:00"},
			},
		}
	}

	s := base()
	s.Date = "2025/11/10"
	require.Error(t, NormalizeShift(s))

	s = base()
	s.Team = "4"
	require.Error(t, NormalizeShift(s))

	s = base()
	s.Participants = nil
	require.Error(t, NormalizeShift(s))

	s = base()
	s.Participants[0].CheckOut = ""
	require.Error(t, NormalizeShift(s))

	s = base()
	s.Participants[0].CheckIn = "25:00"
	require.Error(t, NormalizeShift(s))

	s = base()
	s.Participants = append(s.Participants, domain.ShiftParticipant{UserID: 1, CheckIn: "09:00", CheckOut: "10:00"})
	require.Error(t, NormalizeShift(s), "重复参与者必须报错")
}

func TestNormalizeMission(t *testing.T) {
	m := &domain.Mission{
		Date:      "2025-11-10",
		StartTime: "09:00",
		EndTime:   "11:00",
		Type:      domain.MissionTypeRescue,
		Team:      "1",
		Participants: []domain.MissionParticipant{
			{UserID: 1},
			{UserID: 2, CustomStart: "09:30", CustomEnd: "10:30"},
		},
	}
	require.NoError(t, NormalizeMission(m))

	bad := *m
	bad.Type = "演习"
	require.Error(t, NormalizeMission(&bad))

	bad = *m
	bad.StartTime = "9 点"
	require.Error(t, NormalizeMission(&bad))

	bad = *m
	bad.Participants = []domain.MissionParticipant{{UserID: 1, CustomStart: "09:30"}}
	require.Error(t, NormalizeMission(&bad), "自定义时间只给一半必须报错")
}
