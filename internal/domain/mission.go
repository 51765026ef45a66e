package domain

import (
	"time"
)

type MissionType string

const (
	MissionTypeFire          MissionType = "火情"
	MissionTypeRescue        MissionType = "救援"
	MissionTypeMedic         MissionType = "医疗"
	MissionTypePublicService MissionType = "公共服务"
	MissionTypeMisc          MissionType = "其他"
)

var MissionTypes = []MissionType{
	MissionTypeFire,
	MissionTypeRescue,
	MissionTypeMedic,
	MissionTypePublicService,
	MissionTypeMisc,
}

// MissionParticipant 的 CustomStart/CustomEnd 为空时，
// 该参与者的有效时间窗口就是任务本身的时间窗口
type MissionParticipant struct {
	UserID      int64  `json:"userID"`
	CustomStart string `json:"customStart,omitempty"`
	CustomEnd   string `json:"customEnd,omitempty"`
}

type Mission struct {
	ID           int64                `json:"id"`
	Date         string               `json:"date"`      // YYYY-MM-DD
	StartTime    string               `json:"startTime"` // HH:MM
	EndTime      string               `json:"endTime"`   // HH:MM
	Type         MissionType          `json:"type"`
	Team         string               `json:"team"`
	Address      string               `json:"address"`
	Description  string               `json:"description"`
	Participants []MissionParticipant `json:"participants"`
	VehicleIDs   []int64              `json:"vehicleIDs"`
	CreatedAt    time.Time            `json:"createdAt"`
	Version      int32                `json:"-"`
}
