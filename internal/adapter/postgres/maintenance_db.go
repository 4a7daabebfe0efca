package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garagehub/garage_services/internal/core/domain"
)

const maintenanceColumns = `id, vehicle_id, mechanic_id, start_date, end_date, amount, description, status, created_at, updated_at`

type MaintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMaintenance(row rowScanner) (*domain.MaintenanceTask, error) {
	var (
		task     domain.MaintenanceTask
		mechanic sql.NullInt64
		endDate  sql.NullTime
	)
	err := row.Scan(
		&task.ID,
		&task.VehicleID,
		&mechanic,
		&task.StartDate,
		&endDate,
		&task.Amount,
		&task.Description,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if mechanic.Valid {
		id := mechanic.Int64
		task.MechanicID = &id
	}
	if endDate.Valid {
		t := endDate.Time
		task.EndDate = &t
	}
	return &task, nil
}

func (r *MaintenanceRepository) CreateMaintenance(ctx context.Context, task *domain.MaintenanceTask) (*domain.MaintenanceTask, error) {
	query := `INSERT INTO maintenances (vehicle_id, mechanic_id, start_date, end_date, amount, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + maintenanceColumns

	created, err := scanMaintenance(r.db.QueryRowContext(ctx, query,
		task.VehicleID,
		task.MechanicID,
		task.StartDate,
		task.EndDate,
		task.Amount,
		task.Description,
		task.Status,
	))
	if err != nil {
		return nil, mapError(err, "maintenance already exists")
	}
	return created, nil
}

func (r *MaintenanceRepository) GetMaintenanceByID(ctx context.Context, id int64) (*domain.MaintenanceTask, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances WHERE id = $1`

	task, err := scanMaintenance(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewError(domain.ErrNotFound, "maintenance %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *MaintenanceRepository) ListMaintenances(ctx context.Context) ([]*domain.MaintenanceTask, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances ORDER BY start_date, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.MaintenanceTask, 0)
	for rows.Next() {
		task, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *MaintenanceRepository) UpdateMaintenanceStatus(ctx context.Context, task *domain.MaintenanceTask, expected domain.MaintenanceStatus) (*domain.MaintenanceTask, error) {
	query := `UPDATE maintenances
		SET status = $1, amount = $2, mechanic_id = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4 AND status = $5
		RETURNING ` + maintenanceColumns

	updated, err := scanMaintenance(r.db.QueryRowContext(ctx, query,
		task.Status,
		task.Amount,
		task.MechanicID,
		task.ID,
		expected,
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("error updating maintenance: %w", mapError(err, "maintenance conflict"))
	}

	// Nothing matched: either the row is gone or another request moved it first.
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM maintenances WHERE id = $1)`, task.ID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewError(domain.ErrNotFound, "maintenance %d not found", task.ID)
	}
	return nil, domain.NewError(domain.ErrConflict, "maintenance %d was modified concurrently", task.ID)
}

func (r *MaintenanceRepository) DeleteMaintenance(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM maintenances WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.NewError(domain.ErrNotFound, "maintenance %d not found", id)
	}
	return nil
}
