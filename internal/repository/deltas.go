package repository

import (
	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

// InsertAccumulatorDelta 由 audit worker 调用，把队列里消费到的
// 增量记录落库留痕
func (r *Repository) InsertAccumulatorDelta(d *domain.AccumulatorDelta) error {
	query := `
		INSERT INTO accumulator_deltas
			(user_id, record_kind, record_id, op, hours_delta, missions_delta, days_delta, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	args := []any{d.UserID, d.RecordKind, d.RecordID, d.Op, d.HoursDelta, d.MissionsDelta, d.DaysDelta, d.OccurredAt}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAccumulatorDeltasByUser(userID int64) ([]*domain.AccumulatorDelta, error) {
	query := `
		SELECT user_id, record_kind, record_id, op, hours_delta, missions_delta, days_delta, occurred_at
		FROM accumulator_deltas
		WHERE user_id = $1
		ORDER BY occurred_at
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deltas := make([]*domain.AccumulatorDelta, 0)
	for rows.Next() {
		d := &domain.AccumulatorDelta{}
		dst := []any{&d.UserID, &d.RecordKind, &d.RecordID, &d.Op, &d.HoursDelta, &d.MissionsDelta, &d.DaysDelta, &d.OccurredAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		deltas = append(deltas, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return deltas, nil
}
