package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vehicleCols = []string{"id", "marque", "modele", "annee", "num_immatriculation", "kilometrage", "proprietaire_id", "created_at", "updated_at"}

func TestVehicleRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVehicleRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM vehicles WHERE id = \$1`).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows(vehicleCols).
			AddRow(int64(12), "Toyota", "Corolla", 2018, "DK-1234-A", 85000, int64(4), now, now))

	vehicle, err := repo.GetVehicleByID(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "Toyota Corolla", vehicle.Label())
	assert.Equal(t, int64(4), vehicle.ProprietaireID)
}

func TestVehicleRepository_UpdateNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVehicleRepository(db)

	mock.ExpectQuery(`UPDATE vehicles`).WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateVehicle(context.Background(), &domain.Vehicle{ID: 99})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestVehicleRepository_DuplicatePlate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVehicleRepository(db)

	mock.ExpectQuery(`INSERT INTO vehicles`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateVehicle(context.Background(), &domain.Vehicle{NumImmatriculation: "DK-1234-A"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}
