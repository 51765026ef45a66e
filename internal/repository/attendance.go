package repository

import (
	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

func (r *Repository) UpsertAttendance(rec *domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance (date, user_id, code)
		VALUES ($1, $2, $3)
		ON CONFLICT (date, user_id) DO UPDATE SET code = EXCLUDED.code
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.q.ExecContext(ctx, query, rec.Date, rec.UserID, rec.Code); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAttendanceByDate(date string) error {
	query := `
		DELETE FROM attendance WHERE date = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.q.ExecContext(ctx, query, date); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAttendanceByDate(date string) ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT date, user_id, code FROM attendance
		WHERE date = $1 ORDER BY user_id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.AttendanceRecord, 0)
	for rows.Next() {
		rec := &domain.AttendanceRecord{}
		if err := rows.Scan(&rec.Date, &rec.UserID, &rec.Code); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) GetAttendanceByUserAndMonth(userID int64, month, year int32) ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT date, user_id, code FROM attendance
		WHERE user_id = $1 AND date LIKE $2 ORDER BY date
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, userID, monthDatePattern(month, year))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.AttendanceRecord, 0)
	for rows.Next() {
		rec := &domain.AttendanceRecord{}
		if err := rows.Scan(&rec.Date, &rec.UserID, &rec.Code); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
