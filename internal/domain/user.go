package domain

import (
	"time"
)

type Role string

const (
	RoleEmployee   Role = "队员"
	RoleHead       Role = "站长"
	RoleAdminStaff Role = "文员"
)

// StaffRoles 是需要参与每日考勤统计的角色
var StaffRoles = []Role{RoleEmployee, RoleHead, RoleAdminStaff}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Team         string    `json:"team"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`

	// 当月累计值，只允许由 stats 包（任务/班次变更与月度结转）修改
	CurrentMonthHours    int32 `json:"currentMonthHours"`
	CurrentMonthMissions int32 `json:"currentMonthMissions"`
	CurrentMonthDays     int32 `json:"currentMonthDays"`
}
