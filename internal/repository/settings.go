package repository

import (
	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

// 单站点部署，settings 表只有 id = 1 这一行，由建表迁移写入初始值

func (r *Repository) GetSettings() (*domain.Settings, error) {
	query := `
		SELECT active_month, active_year, last_month_end_team, version
		FROM settings WHERE id = 1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	settings := &domain.Settings{}
	dst := []any{&settings.ActiveMonth, &settings.ActiveYear, &settings.LastMonthEndTeam, &settings.Version}
	if err := r.q.QueryRowContext(ctx, query).Scan(dst...); err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *Repository) UpsertSettings(s *domain.Settings) error {
	query := `
		UPDATE settings
		SET
			active_month = $1,
			active_year = $2,
			last_month_end_team = $3,
			version = version + 1
		WHERE id = 1
		RETURNING version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	args := []any{s.ActiveMonth, s.ActiveYear, s.LastMonthEndTeam}
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&s.Version); err != nil {
		return err
	}

	return nil
}
