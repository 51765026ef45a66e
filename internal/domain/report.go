package domain

import (
	"time"
)

// MonthlyReport 是月度结转生成的归档快照，每个 (用户, 月, 年) 至多一条，
// 生成后不再修改
type MonthlyReport struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userID"`
	Month         int32     `json:"month"`
	Year          int32     `json:"year"`
	TotalHours    int32     `json:"totalHours"`
	TotalMissions int32     `json:"totalMissions"`
	TotalDays     int32     `json:"totalDays"`
	TypeCounts    MissionTypeCounts `json:"typeCounts"`
	CreatedAt     time.Time `json:"createdAt"`
}

type MissionTypeCounts struct {
	Fire          int32 `json:"fire"`
	Rescue        int32 `json:"rescue"`
	Medic         int32 `json:"medic"`
	PublicService int32 `json:"publicService"`
	Misc          int32 `json:"misc"`
}

func (c *MissionTypeCounts) Add(t MissionType) {
	switch t {
	case MissionTypeFire:
		c.Fire++
	case MissionTypeRescue:
		c.Rescue++
	case MissionTypeMedic:
		c.Medic++
	case MissionTypePublicService:
		c.PublicService++
	default:
		c.Misc++
	}
}
