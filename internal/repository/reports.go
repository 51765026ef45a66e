package repository

import (
	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

// CreateMonthlyReportIfAbsent 在 (用户, 月, 年) 还没有报表时插入一条，
// 已经存在时什么都不做。唯一约束保证并发下也不会出现重复报表
func (r *Repository) CreateMonthlyReportIfAbsent(report *domain.MonthlyReport) error {
	query := `
		INSERT INTO monthly_reports
			(user_id, month, year, total_hours, total_missions, total_days,
			fire_count, rescue_count, medic_count, public_service_count, misc_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, month, year) DO NOTHING
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	args := []any{
		report.UserID, report.Month, report.Year,
		report.TotalHours, report.TotalMissions, report.TotalDays,
		report.TypeCounts.Fire, report.TypeCounts.Rescue, report.TypeCounts.Medic,
		report.TypeCounts.PublicService, report.TypeCounts.Misc,
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetMonthlyReports(month, year int32) ([]*domain.MonthlyReport, error) {
	query := `
		SELECT id, user_id, month, year, total_hours, total_missions, total_days,
			fire_count, rescue_count, medic_count, public_service_count, misc_count, created_at
		FROM monthly_reports
		WHERE month = $1 AND year = $2
		ORDER BY user_id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]*domain.MonthlyReport, 0)
	for rows.Next() {
		report := &domain.MonthlyReport{}
		dst := []any{
			&report.ID, &report.UserID, &report.Month, &report.Year,
			&report.TotalHours, &report.TotalMissions, &report.TotalDays,
			&report.TypeCounts.Fire, &report.TypeCounts.Rescue, &report.TypeCounts.Medic,
			&report.TypeCounts.PublicService, &report.TypeCounts.Misc, &report.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *Repository) GetMonthlyReportsByUser(userID int64) ([]*domain.MonthlyReport, error) {
	query := `
		SELECT id, user_id, month, year, total_hours, total_missions, total_days,
			fire_count, rescue_count, medic_count, public_service_count, misc_count, created_at
		FROM monthly_reports
		WHERE user_id = $1
		ORDER BY year, month
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]*domain.MonthlyReport, 0)
	for rows.Next() {
		report := &domain.MonthlyReport{}
		dst := []any{
			&report.ID, &report.UserID, &report.Month, &report.Year,
			&report.TotalHours, &report.TotalMissions, &report.TotalDays,
			&report.TypeCounts.Fire, &report.TypeCounts.Rescue, &report.TypeCounts.Medic,
			&report.TypeCounts.PublicService, &report.TypeCounts.Misc, &report.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}
