package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garagehub/garage_services/internal/core/domain"
)

const userColumns = `id, first_name, last_name, address, email, password, role, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user    domain.User
		address sql.NullString
	)
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&address,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Address = address.String
	return &user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (first_name, last_name, address, email, password, role)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.Address,
		user.Email,
		user.Password,
		user.Role,
	))
	if err != nil {
		return nil, mapError(err, "email already in use")
	}
	return created, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewError(domain.ErrNotFound, "user %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewError(domain.ErrNotFound, "user %s not found", email)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `UPDATE users
		SET
			first_name = COALESCE(NULLIF($1, ''), first_name),
			last_name = COALESCE(NULLIF($2, ''), last_name),
			address = COALESCE(NULLIF($3, ''), address),
			email = COALESCE(NULLIF($4, ''), email),
			password = COALESCE(NULLIF($5, ''), password),
			role = COALESCE(NULLIF($6, ''), role),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING ` + userColumns

	updated, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.Address,
		user.Email,
		user.Password,
		user.Role,
		user.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.ErrNotFound, "user %d not found", user.ID)
		}
		return nil, fmt.Errorf("error updating user: %w", mapError(err, "email already in use"))
	}
	return updated, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.NewError(domain.ErrNotFound, "user %d not found", id)
	}
	return nil
}
