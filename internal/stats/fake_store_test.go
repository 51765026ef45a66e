package stats

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

// fakeStore 是 Store 的内存实现，只在测试中使用
type fakeStore struct {
	settings   domain.Settings
	users      map[int64]*domain.User
	missions   map[int64]*domain.Mission
	shifts     map[int64]*domain.Shift
	reports    map[string]*domain.MonthlyReport
	attendance map[string]domain.AttendanceCode // "date|userID" -> code
	nextID     int64
}

var _ Store = (*fakeStore)(nil)

func newFakeStore(activeMonth, activeYear int32) *fakeStore {
	return &fakeStore{
		settings:   domain.Settings{ActiveMonth: activeMonth, ActiveYear: activeYear, LastMonthEndTeam: "3"},
		users:      make(map[int64]*domain.User),
		missions:   make(map[int64]*domain.Mission),
		shifts:     make(map[int64]*domain.Shift),
		reports:    make(map[string]*domain.MonthlyReport),
		attendance: make(map[string]domain.AttendanceCode),
	}
}

func (f *fakeStore) addUser(id int64, role domain.Role) *domain.User {
	u := &domain.User{ID: id, Username: fmt.Sprintf("user%d", id), Role: role, IsActive: true}
	f.users[id] = u
	return u
}

func (f *fakeStore) genID() int64 {
	f.nextID++
	return f.nextID
}

func monthPrefix(month, year int32) string {
	return fmt.Sprintf("%04d-%02d-", year, month)
}

func (f *fakeStore) GetSettings() (*domain.Settings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeStore) UpsertSettings(s *domain.Settings) error {
	f.settings = *s
	return nil
}

func (f *fakeStore) GetAllUsers() ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeStore) GetUsersByRoles(roles []domain.Role) ([]*domain.User, error) {
	all, _ := f.GetAllUsers()
	users := make([]*domain.User, 0)
	for _, u := range all {
		for _, role := range roles {
			if u.Role == role {
				users = append(users, u)
				break
			}
		}
	}
	return users, nil
}

func (f *fakeStore) AddToUserCounters(userID int64, hours, missions, days int32) error {
	u, exists := f.users[userID]
	if !exists {
		return sql.ErrNoRows
	}
	u.CurrentMonthHours += hours
	u.CurrentMonthMissions += missions
	u.CurrentMonthDays += days
	return nil
}

func (f *fakeStore) ResetAllUserCounters() error {
	for _, u := range f.users {
		u.CurrentMonthHours = 0
		u.CurrentMonthMissions = 0
		u.CurrentMonthDays = 0
	}
	return nil
}

func (f *fakeStore) GetMissionByID(id int64) (*domain.Mission, error) {
	m, exists := f.missions[id]
	if !exists {
		return nil, sql.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

func (f *fakeStore) CreateMission(m *domain.Mission) error {
	if m.ID == 0 {
		m.ID = f.genID()
	}
	cp := *m
	f.missions[m.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateMission(m *domain.Mission) error {
	if _, exists := f.missions[m.ID]; !exists {
		return sql.ErrNoRows
	}
	cp := *m
	f.missions[m.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteMission(id int64) error {
	delete(f.missions, id)
	return nil
}

func (f *fakeStore) GetMissionsByUserAndDate(userID int64, date string) ([]*domain.Mission, error) {
	missions := make([]*domain.Mission, 0)
	for _, m := range f.missions {
		if m.Date != date {
			continue
		}
		for _, p := range m.Participants {
			if p.UserID == userID {
				missions = append(missions, m)
				break
			}
		}
	}
	sort.Slice(missions, func(i, j int) bool { return missions[i].ID < missions[j].ID })
	return missions, nil
}

func (f *fakeStore) GetMissionsByMonth(month, year int32) ([]*domain.Mission, error) {
	prefix := monthPrefix(month, year)
	missions := make([]*domain.Mission, 0)
	for _, m := range f.missions {
		if strings.HasPrefix(m.Date, prefix) {
			missions = append(missions, m)
		}
	}
	sort.Slice(missions, func(i, j int) bool { return missions[i].ID < missions[j].ID })
	return missions, nil
}

func (f *fakeStore) GetShiftByID(id int64) (*domain.Shift, error) {
	s, exists := f.shifts[id]
	if !exists {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) CreateShift(s *domain.Shift) error {
	if s.ID == 0 {
		s.ID = f.genID()
	}
	cp := *s
	f.shifts[s.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateShift(s *domain.Shift) error {
	if _, exists := f.shifts[s.ID]; !exists {
		return sql.ErrNoRows
	}
	cp := *s
	f.shifts[s.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteShift(id int64) error {
	delete(f.shifts, id)
	return nil
}

func (f *fakeStore) GetShiftsByDate(date string) ([]*domain.Shift, error) {
	shifts := make([]*domain.Shift, 0)
	for _, s := range f.shifts {
		if s.Date == date {
			shifts = append(shifts, s)
		}
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].ID < shifts[j].ID })
	return shifts, nil
}

func (f *fakeStore) GetShiftsByUserAndDate(userID int64, date string) ([]*domain.Shift, error) {
	byDate, _ := f.GetShiftsByDate(date)
	shifts := make([]*domain.Shift, 0)
	for _, s := range byDate {
		for _, sp := range s.Participants {
			if sp.UserID == userID {
				shifts = append(shifts, s)
				break
			}
		}
	}
	return shifts, nil
}

func (f *fakeStore) GetLastShiftOfMonth(month, year int32) (*domain.Shift, error) {
	prefix := monthPrefix(month, year)
	var last *domain.Shift
	for _, s := range f.shifts {
		if !strings.HasPrefix(s.Date, prefix) {
			continue
		}
		if last == nil || s.Date > last.Date || (s.Date == last.Date && s.ID > last.ID) {
			last = s
		}
	}
	return last, nil
}

func reportKey(userID int64, month, year int32) string {
	return fmt.Sprintf("%d|%d|%d", userID, month, year)
}

func (f *fakeStore) CreateMonthlyReportIfAbsent(r *domain.MonthlyReport) error {
	key := reportKey(r.UserID, r.Month, r.Year)
	if _, exists := f.reports[key]; exists {
		return nil
	}
	cp := *r
	f.reports[key] = &cp
	return nil
}

func (f *fakeStore) UpsertAttendance(rec *domain.AttendanceRecord) error {
	f.attendance[fmt.Sprintf("%s|%d", rec.Date, rec.UserID)] = rec.Code
	return nil
}

func (f *fakeStore) DeleteAttendanceByDate(date string) error {
	for key := range f.attendance {
		if strings.HasPrefix(key, date+"|") {
			delete(f.attendance, key)
		}
	}
	return nil
}

func (f *fakeStore) InTx(fn func(Store) error) error {
	return fn(f)
}
