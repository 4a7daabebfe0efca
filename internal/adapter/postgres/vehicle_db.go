package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garagehub/garage_services/internal/core/domain"
)

const vehicleColumns = `id, marque, modele, annee, num_immatriculation, kilometrage, proprietaire_id, created_at, updated_at`

type VehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(
		&v.ID,
		&v.Marque,
		&v.Modele,
		&v.Annee,
		&v.NumImmatriculation,
		&v.Kilometrage,
		&v.ProprietaireID,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	query := `INSERT INTO vehicles (marque, modele, annee, num_immatriculation, kilometrage, proprietaire_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + vehicleColumns

	created, err := scanVehicle(r.db.QueryRowContext(ctx, query,
		vehicle.Marque,
		vehicle.Modele,
		vehicle.Annee,
		vehicle.NumImmatriculation,
		vehicle.Kilometrage,
		vehicle.ProprietaireID,
	))
	if err != nil {
		return nil, mapError(err, "registration number already exists")
	}
	return created, nil
}

func (r *VehicleRepository) GetVehicleByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	vehicle, err := scanVehicle(r.db.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewError(domain.ErrNotFound, "vehicle %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (r *VehicleRepository) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0)
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *VehicleRepository) UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	query := `UPDATE vehicles
		SET marque = $1, modele = $2, annee = $3, num_immatriculation = $4,
			kilometrage = $5, proprietaire_id = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING ` + vehicleColumns

	updated, err := scanVehicle(r.db.QueryRowContext(ctx, query,
		vehicle.Marque,
		vehicle.Modele,
		vehicle.Annee,
		vehicle.NumImmatriculation,
		vehicle.Kilometrage,
		vehicle.ProprietaireID,
		vehicle.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.ErrNotFound, "vehicle %d not found", vehicle.ID)
		}
		return nil, fmt.Errorf("error updating vehicle: %w", mapError(err, "registration number already exists"))
	}
	return updated, nil
}

func (r *VehicleRepository) DeleteVehicle(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.NewError(domain.ErrNotFound, "vehicle %d not found", id)
	}
	return nil
}
