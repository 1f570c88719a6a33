package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/trusttrip/booking-service/internal/domain"
)

// UserFilter narrows user listings.
type UserFilter struct {
	Search   *string
	Verified *bool
}

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter, params ListParams) ([]domain.User, error)
	Count(ctx context.Context, filter UserFilter) (int, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id, role string) error
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error
}

var userSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"email":     "email",
}

const userColumns = `id, name, email, password_hash, role, status, bio, phone, profile_image, verified, created_at, updated_at`

type userRepository struct {
	db DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password_hash, role, status, bio, phone, profile_image, verified)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.Bio,
		user.Phone,
		user.ProfileImage,
		user.Verified,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email)=LOWER($1)`, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter, params ListParams) ([]domain.User, error) {
	cond := userConditions(filter)
	query := `SELECT ` + userColumns + ` FROM users` + cond.where() + page(params, userSortColumns)

	rows, err := r.db.Query(ctx, query, cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func (r *userRepository) Count(ctx context.Context, filter UserFilter) (int, error) {
	cond := userConditions(filter)
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+cond.where(), cond.args...).Scan(&total)
	return total, err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return execOne(ctx, r.db, `UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`, passwordHash, id)
}

func (r *userRepository) UpdateRole(ctx context.Context, id, role string) error {
	return execOne(ctx, r.db, `UPDATE users SET role=$1, updated_at=NOW() WHERE id=$2`, role, id)
}

func (r *userRepository) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error {
	return execOne(ctx, r.db, `UPDATE users SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
}

func userConditions(filter UserFilter) conditions {
	var cond conditions
	if filter.Search != nil && *filter.Search != "" {
		cond.add("(LOWER(name) LIKE %[1]s OR LOWER(email) LIKE %[1]s)", likePattern(*filter.Search))
	}
	if filter.Verified != nil {
		cond.add("verified=%s", *filter.Verified)
	}
	return cond
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.Bio,
		&user.Phone,
		&user.ProfileImage,
		&user.Verified,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
