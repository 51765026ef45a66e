package repository

import (
	"database/sql"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

func (r *Repository) CreateMission(m *domain.Mission) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO missions (date, start_time, end_time, type, team, address, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{m.Date, m.StartTime, m.EndTime, m.Type, m.Team, m.Address, m.Description}
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.CreatedAt, &m.Version); err != nil {
		return err
	}

	return r.insertMissionChildren(m)
}

func (r *Repository) UpdateMission(m *domain.Mission) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		UPDATE missions
		SET
			date = $1,
			start_time = $2,
			end_time = $3,
			type = $4,
			team = $5,
			address = $6,
			description = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING created_at, version
	`

	args := []any{m.Date, m.StartTime, m.EndTime, m.Type, m.Team, m.Address, m.Description, m.ID, m.Version}
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&m.CreatedAt, &m.Version); err != nil {
		return err
	}

	// 参与者和车辆整体重建，比对逐行差异不值得
	query = `DELETE FROM mission_participants WHERE mission_id = $1`
	if _, err := r.q.ExecContext(ctx, query, m.ID); err != nil {
		return err
	}
	query = `DELETE FROM mission_vehicles WHERE mission_id = $1`
	if _, err := r.q.ExecContext(ctx, query, m.ID); err != nil {
		return err
	}

	return r.insertMissionChildren(m)
}

func (r *Repository) insertMissionChildren(m *domain.Mission) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	for _, p := range m.Participants {
		query := `
			INSERT INTO mission_participants (mission_id, user_id, custom_start, custom_end)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := r.q.ExecContext(ctx, query, m.ID, p.UserID, p.CustomStart, p.CustomEnd); err != nil {
			return err
		}
	}

	for _, vehicleID := range m.VehicleIDs {
		query := `
			INSERT INTO mission_vehicles (mission_id, vehicle_id)
			VALUES ($1, $2)
		`
		if _, err := r.q.ExecContext(ctx, query, m.ID, vehicleID); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) DeleteMission(id int64) error {
	query := `
		DELETE FROM missions WHERE id = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.q.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetMissionByID(id int64) (*domain.Mission, error) {
	missions, err := r.queryMissions(`WHERE m.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(missions) == 0 {
		return nil, sql.ErrNoRows
	}
	return missions[0], nil
}

func (r *Repository) GetMissionsByUserAndDate(userID int64, date string) ([]*domain.Mission, error) {
	return r.queryMissions(`
		WHERE m.date = $1 AND m.id IN (
			SELECT mission_id FROM mission_participants WHERE user_id = $2
		)
	`, date, userID)
}

func (r *Repository) GetMissionsByMonth(month, year int32) ([]*domain.Mission, error) {
	return r.queryMissions(`WHERE m.date LIKE $1`, monthDatePattern(month, year))
}

func (r *Repository) GetMissionsByDate(date string) ([]*domain.Mission, error) {
	return r.queryMissions(`WHERE m.date = $1`, date)
}

// queryMissions 把任务及其参与者、车辆一次性查出来再按任务 ID 组装。
// LEFT JOIN 会让参与者和车辆组合成笛卡尔积，组装时要去重
func (r *Repository) queryMissions(where string, args ...any) ([]*domain.Mission, error) {
	query := `
		SELECT
			m.id,
			m.date,
			m.start_time,
			m.end_time,
			m.type,
			m.team,
			m.address,
			m.description,
			m.created_at,
			m.version,
			mp.user_id,
			mp.custom_start,
			mp.custom_end,
			mv.vehicle_id
		FROM missions m
		LEFT JOIN mission_participants mp ON m.id = mp.mission_id
		LEFT JOIN mission_vehicles mv ON m.id = mv.mission_id
		` + where + `
		ORDER BY m.id, mp.user_id, mv.vehicle_id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	missions := make([]*domain.Mission, 0)
	byID := make(map[int64]*domain.Mission)
	seenParticipant := make(map[int64]map[int64]bool)
	seenVehicle := make(map[int64]map[int64]bool)

	for rows.Next() {
		var (
			id          int64
			m           domain.Mission
			userID      sql.NullInt64
			customStart sql.NullString
			customEnd   sql.NullString
			vehicleID   sql.NullInt64
		)

		dst := []any{&id, &m.Date, &m.StartTime, &m.EndTime, &m.Type, &m.Team, &m.Address, &m.Description, &m.CreatedAt, &m.Version, &userID, &customStart, &customEnd, &vehicleID}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		mission, exists := byID[id]
		if !exists {
			m.ID = id
			m.Participants = make([]domain.MissionParticipant, 0)
			m.VehicleIDs = make([]int64, 0)
			mission = &m
			byID[id] = mission
			seenParticipant[id] = make(map[int64]bool)
			seenVehicle[id] = make(map[int64]bool)
			missions = append(missions, mission)
		}

		if userID.Valid && !seenParticipant[id][userID.Int64] {
			seenParticipant[id][userID.Int64] = true
			mission.Participants = append(mission.Participants, domain.MissionParticipant{
				UserID:      userID.Int64,
				CustomStart: customStart.String,
				CustomEnd:   customEnd.String,
			})
		}

		if vehicleID.Valid && !seenVehicle[id][vehicleID.Int64] {
			seenVehicle[id][vehicleID.Int64] = true
			mission.VehicleIDs = append(mission.VehicleIDs, vehicleID.Int64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return missions, nil
}
