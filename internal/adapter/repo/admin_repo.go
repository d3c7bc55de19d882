package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"dealership/internal/domain"
)

// AdminUserRepositoryPG implements domain.AdminUserRepository using PostgreSQL.
type AdminUserRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewAdminUserRepository(pool *pgxpool.Pool) *AdminUserRepositoryPG {
	return &AdminUserRepositoryPG{pool: pool}
}

func (r *AdminUserRepositoryPG) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := r.pool.QueryRow(ctx, `
SELECT id, username, password, email, created_at
FROM admin_users
WHERE username = $1;
`, username).Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AdminUserRepositoryPG) Create(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
	out := *user
	err := r.pool.QueryRow(ctx, `
INSERT INTO admin_users (username, password, email)
VALUES ($1, $2, $3)
RETURNING id, created_at;
`, user.Username, user.Password, user.Email).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, err
	}
	return &out, nil
}

var _ domain.AdminUserRepository = (*AdminUserRepositoryPG)(nil)
