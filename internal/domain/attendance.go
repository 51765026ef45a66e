package domain

type AttendanceCode string

const (
	AttendancePresent AttendanceCode = "在岗"
	AttendanceAbsent  AttendanceCode = "缺勤"
)

type AttendanceRecord struct {
	Date   string         `json:"date"` // YYYY-MM-DD
	UserID int64          `json:"userID"`
	Code   AttendanceCode `json:"code"`
}
