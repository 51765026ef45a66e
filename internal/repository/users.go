package repository

import (
	"database/sql"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT username, password_hash, full_name, email, role, team, is_active, created_at, version,
			current_month_hours, current_month_missions, current_month_days
		FROM users WHERE id = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Username, &user.PasswordHash, &user.FullName, &user.Email, &user.Role, &user.Team, &user.IsActive, &user.CreatedAt, &user.Version, &user.CurrentMonthHours, &user.CurrentMonthMissions, &user.CurrentMonthDays}
	if err := r.q.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByUsername(username string) (*domain.User, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, team, is_active, created_at, version,
			current_month_hours, current_month_missions, current_month_days
		FROM users WHERE username = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	user := &domain.User{
		Username: username,
	}

	dst := []any{&user.ID, &user.PasswordHash, &user.FullName, &user.Email, &user.Role, &user.Team, &user.IsActive, &user.CreatedAt, &user.Version, &user.CurrentMonthHours, &user.CurrentMonthMissions, &user.CurrentMonthDays}
	if err := r.q.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) CreateUser(user *domain.User) error {
	query := `
		INSERT INTO users (username, password_hash, full_name, email, role, team)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	args := []any{user.Username, user.PasswordHash, user.FullName, user.Email, user.Role, user.Team}
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateUser(user *domain.User) error {
	query := `
		UPDATE users
		SET
			password_hash = $1,
			full_name = $2,
			email = $3,
			role = $4,
			team = $5,
			is_active = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING username, created_at, version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	args := []any{user.PasswordHash, user.FullName, user.Email, user.Role, user.Team, user.IsActive, user.ID, user.Version}
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&user.Username, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteUser(id int64) error {
	query := `
		DELETE FROM users WHERE id = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.q.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllUsers() ([]*domain.User, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role, team, is_active, created_at, version,
			current_month_hours, current_month_missions, current_month_days
		FROM users ORDER BY id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := []any{&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.Email, &user.Role, &user.Team, &user.IsActive, &user.CreatedAt, &user.Version, &user.CurrentMonthHours, &user.CurrentMonthMissions, &user.CurrentMonthDays}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) GetUsersByRoles(roles []domain.Role) ([]*domain.User, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role, team, is_active, created_at, version,
			current_month_hours, current_month_missions, current_month_days
		FROM users WHERE role = ANY($1) AND is_active = true ORDER BY id
	`

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := []any{&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.Email, &user.Role, &user.Team, &user.IsActive, &user.CreatedAt, &user.Version, &user.CurrentMonthHours, &user.CurrentMonthMissions, &user.CurrentMonthDays}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) AddToUserCounters(userID int64, hours, missions, days int32) error {
	query := `
		UPDATE users
		SET
			current_month_hours = current_month_hours + $1,
			current_month_missions = current_month_missions + $2,
			current_month_days = current_month_days + $3
		WHERE id = $4
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	res, err := r.q.ExecContext(ctx, query, hours, missions, days, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *Repository) ResetAllUserCounters() error {
	query := `
		UPDATE users
		SET
			current_month_hours = 0,
			current_month_missions = 0,
			current_month_days = 0
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.q.ExecContext(ctx, query); err != nil {
		return err
	}

	return nil
}
