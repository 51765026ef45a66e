package repository

import (
	"database/sql"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

func (r *Repository) CreateShift(s *domain.Shift) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO shifts (date, team, note)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	if err := r.q.QueryRowContext(ctx, query, s.Date, s.Team, s.Note).Scan(&s.ID, &s.CreatedAt, &s.Version); err != nil {
		return err
	}

	return r.insertShiftParticipants(s)
}

func (r *Repository) UpdateShift(s *domain.Shift) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		UPDATE shifts
		SET
			date = $1,
			team = $2,
			note = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	if err := r.q.QueryRowContext(ctx, query, s.Date, s.Team, s.Note, s.ID, s.Version).Scan(&s.CreatedAt, &s.Version); err != nil {
		return err
	}

	query = `DELETE FROM shift_participants WHERE shift_id = $1`
	if _, err := r.q.ExecContext(ctx, query, s.ID); err != nil {
		return err
	}

	return r.insertShiftParticipants(s)
}

func (r *Repository) insertShiftParticipants(s *domain.Shift) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	for _, sp := range s.Participants {
		query := `
			INSERT INTO shift_participants (shift_id, user_id, check_in, check_out, hours_served)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := r.q.ExecContext(ctx, query, s.ID, sp.UserID, sp.CheckIn, sp.CheckOut, sp.HoursServed); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.q.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	shifts, err := r.queryShifts(`WHERE s.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, sql.ErrNoRows
	}
	return shifts[0], nil
}

func (r *Repository) GetShiftsByDate(date string) ([]*domain.Shift, error) {
	return r.queryShifts(`WHERE s.date = $1`, date)
}

func (r *Repository) GetShiftsByUserAndDate(userID int64, date string) ([]*domain.Shift, error) {
	return r.queryShifts(`
		WHERE s.date = $1 AND s.id IN (
			SELECT shift_id FROM shift_participants WHERE user_id = $2
		)
	`, date, userID)
}

func (r *Repository) GetShiftsByMonth(month, year int32) ([]*domain.Shift, error) {
	return r.queryShifts(`WHERE s.date LIKE $1`, monthDatePattern(month, year))
}

// GetLastShiftOfMonth 返回当月日期最晚的班次，没有班次时返回 (nil, nil)
func (r *Repository) GetLastShiftOfMonth(month, year int32) (*domain.Shift, error) {
	query := `
		SELECT id FROM shifts
		WHERE date LIKE $1
		ORDER BY date DESC, id DESC
		LIMIT 1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	var id int64
	if err := r.q.QueryRowContext(ctx, query, monthDatePattern(month, year)).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return r.GetShiftByID(id)
}

func (r *Repository) queryShifts(where string, args ...any) ([]*domain.Shift, error) {
	query := `
		SELECT
			s.id,
			s.date,
			s.team,
			s.note,
			s.created_at,
			s.version,
			sp.user_id,
			sp.check_in,
			sp.check_out,
			sp.hours_served
		FROM shifts s
		LEFT JOIN shift_participants sp ON s.id = sp.shift_id
		` + where + `
		ORDER BY s.id, sp.user_id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	byID := make(map[int64]*domain.Shift)

	for rows.Next() {
		var (
			id          int64
			s           domain.Shift
			userID      sql.NullInt64
			checkIn     sql.NullString
			checkOut    sql.NullString
			hoursServed sql.NullInt32
		)

		dst := []any{&id, &s.Date, &s.Team, &s.Note, &s.CreatedAt, &s.Version, &userID, &checkIn, &checkOut, &hoursServed}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		shift, exists := byID[id]
		if !exists {
			s.ID = id
			s.Participants = make([]domain.ShiftParticipant, 0)
			shift = &s
			byID[id] = shift
			shifts = append(shifts, shift)
		}

		if userID.Valid {
			shift.Participants = append(shift.Participants, domain.ShiftParticipant{
				UserID:      userID.Int64,
				CheckIn:     checkIn.String,
				CheckOut:    checkOut.String,
				HoursServed: hoursServed.Int32,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
