package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/user"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, name, department, position, role,
	   hire_date, address, bank, account_number, deleted, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	var deleted bool
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Department, &u.Position, &u.Role,
		&u.HireDate, &u.Address, &u.Bank, &u.AccountNumber, &deleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	u.Status = user.StatusActive
	if deleted {
		u.Status = user.StatusDeleted
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	if u.ID == "" {
		u.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (id, email, password_hash, name, department, position, role, hire_date, address, bank, account_number, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Department, u.Position, string(u.Role),
		u.HireDate, u.Address, u.Bank, u.AccountNumber,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	u.Status = user.StatusActive
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND NOT deleted`
	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND NOT deleted`
	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// ListActive implements user.UserRepository.
func (r *userRepository) ListActive(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE NOT deleted ORDER BY lower(coalesce(name, '')) ASC`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListActiveIDs implements user.UserRepository.
func (r *userRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM users WHERE NOT deleted`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountActive implements user.UserRepository.
func (r *userRepository) CountActive(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT count(*) FROM users WHERE NOT deleted`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// UpdateProfile implements user.UserRepository.
func (r *userRepository) UpdateProfile(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET name = $2, department = $3, position = $4, address = $5, bank = $6,
		    account_number = $7, updated_at = now()
		WHERE id = $1 AND NOT deleted
	`
	tag, err := q.Exec(ctx, query, u.ID, u.Name, u.Department, u.Position, u.Address, u.Bank, u.AccountNumber)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateRole implements user.UserRepository.
func (r *userRepository) UpdateRole(ctx context.Context, id string, role user.Role) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET role = $2, updated_at = now() WHERE id = $1 AND NOT deleted`, id, string(role))
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// SoftDelete implements user.UserRepository.
func (r *userRepository) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET deleted = true, updated_at = now() WHERE id = $1 AND NOT deleted`, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
