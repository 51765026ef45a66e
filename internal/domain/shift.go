package domain

import (
	"time"
)

// ShiftParticipant 的签到签退只保存时刻（HH:MM），日期由所属班次提供。
// HoursServed 在创建时根据完整的日期时间算好后落库，读取时不再重算，
// 因为仅凭时刻无法无损地还原跨天班次的时长。
type ShiftParticipant struct {
	UserID      int64  `json:"userID"`
	CheckIn     string `json:"checkIn"`  // HH:MM
	CheckOut    string `json:"checkOut"` // HH:MM
	HoursServed int32  `json:"hoursServed"`
}

type Shift struct {
	ID           int64              `json:"id"`
	Date         string             `json:"date"` // YYYY-MM-DD
	Team         string             `json:"team"`
	Note         string             `json:"note"`
	Participants []ShiftParticipant `json:"participants"`
	CreatedAt    time.Time          `json:"createdAt"`
	Version      int32              `json:"-"`
}
