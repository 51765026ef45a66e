// Package stats 实现系统的核心统计逻辑：
// 参与者工时的累加与回退、任务/班次变更的对账、以及月度结转。
// 本包不直接依赖数据库，所有持久化操作都通过 Store 接口完成
package stats

import (
	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

// Store 是核心逻辑需要的持久化能力。
// repository.Repository 实现了这个接口；测试中用内存假实现替代。
// 按 ID 查询在记录不存在时返回 sql.ErrNoRows；
// GetLastShiftOfMonth 在当月没有班次时返回 (nil, nil)
type Store interface {
	GetSettings() (*domain.Settings, error)
	UpsertSettings(s *domain.Settings) error

	GetAllUsers() ([]*domain.User, error)
	GetUsersByRoles(roles []domain.Role) ([]*domain.User, error)
	AddToUserCounters(userID int64, hours, missions, days int32) error
	ResetAllUserCounters() error

	GetMissionByID(id int64) (*domain.Mission, error)
	CreateMission(m *domain.Mission) error
	UpdateMission(m *domain.Mission) error
	DeleteMission(id int64) error
	GetMissionsByUserAndDate(userID int64, date string) ([]*domain.Mission, error)
	GetMissionsByMonth(month, year int32) ([]*domain.Mission, error)

	GetShiftByID(id int64) (*domain.Shift, error)
	CreateShift(s *domain.Shift) error
	UpdateShift(s *domain.Shift) error
	DeleteShift(id int64) error
	GetShiftsByDate(date string) ([]*domain.Shift, error)
	GetShiftsByUserAndDate(userID int64, date string) ([]*domain.Shift, error)
	GetLastShiftOfMonth(month, year int32) (*domain.Shift, error)

	CreateMonthlyReportIfAbsent(r *domain.MonthlyReport) error

	UpsertAttendance(rec *domain.AttendanceRecord) error
	DeleteAttendanceByDate(date string) error

	// InTx 在单个数据库事务中执行 fn，fn 返回错误时整体回滚。
	// 对账的回退、落库、重算三步必须在同一个事务中完成，
	// 避免中途失败留下不一致的累计值
	InTx(fn func(Store) error) error
}
