package repository

import (
	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

func (r *Repository) CreateVehicle(v *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (name, plate_number, kind)
		VALUES ($1, $2, $3)
		RETURNING id, is_operational, created_at, version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	args := []any{v.Name, v.PlateNumber, v.Kind}
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&v.ID, &v.IsOperational, &v.CreatedAt, &v.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateVehicle(v *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET
			name = $1,
			plate_number = $2,
			kind = $3,
			is_operational = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	args := []any{v.Name, v.PlateNumber, v.Kind, v.IsOperational, v.ID, v.Version}
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&v.CreatedAt, &v.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteVehicle(id int64) error {
	query := `
		DELETE FROM vehicles WHERE id = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.q.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetVehicleByID(id int64) (*domain.Vehicle, error) {
	query := `
		SELECT name, plate_number, kind, is_operational, created_at, version
		FROM vehicles WHERE id = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	v := &domain.Vehicle{
		ID: id,
	}

	dst := []any{&v.Name, &v.PlateNumber, &v.Kind, &v.IsOperational, &v.CreatedAt, &v.Version}
	if err := r.q.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return v, nil
}

func (r *Repository) GetAllVehicles() ([]*domain.Vehicle, error) {
	query := `
		SELECT id, name, plate_number, kind, is_operational, created_at, version
		FROM vehicles ORDER BY id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0)
	for rows.Next() {
		v := &domain.Vehicle{}
		dst := []any{&v.ID, &v.Name, &v.PlateNumber, &v.Kind, &v.IsOperational, &v.CreatedAt, &v.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vehicles, nil
}
