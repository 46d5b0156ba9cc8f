package repository

import (
	"context"
	"fmt"

	"delivery-coordinator/internal/apperr"
	"delivery-coordinator/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, role, national_id, username, email, phone, first_name, last_name,
        birth_date, password_hash, availability, created_at`

// UserRepo represents the identity store.
type UserRepo struct{ db *pgxpool.Pool }

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{db: db} }

// Get - returns user by its ID, nil when absent.
func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// FindByLoginKey looks a user up by national id when key is all digits,
// otherwise by exact username or email. Nil when absent.
func (r *UserRepo) FindByLoginKey(ctx context.Context, key string) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1 ORDER BY id LIMIT 1`
	if isDigits(key) {
		q = `SELECT ` + userColumns + ` FROM users WHERE national_id = $1`
	}

	u, err := scanUser(r.db.QueryRow(ctx, q, key))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by login key: %w", err)
	}
	return u, nil
}

// Create - creates a new user with availability "available".
func (r *UserRepo) Create(ctx context.Context, u *domain.NewUser) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO users (role, national_id, username, email, phone, first_name, last_name, birth_date, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `, string(u.Role), u.NationalID, u.Username, u.Email, u.Phone, u.FirstName, u.LastName, u.BirthDate, u.PasswordHash,
	).Scan(&id)
	if err != nil {
		switch {
		case IsDuplicate(err):
			return 0, apperr.E(apperr.ErrDuplicate, "create user", err)
		case IsCheckViolation(err):
			return 0, apperr.E(apperr.ErrInvalid, "create user", err)
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// ListByRole returns users of the given role ordered by id.
func (r *UserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY id`, string(role))
	if err != nil {
		return nil, fmt.Errorf("list users by role %q: %w", role, err)
	}
	defer rows.Close()

	out := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// Delete removes a user that no delivery request references.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if IsForeignKey(err) {
			return apperr.E(apperr.ErrConflict, "delete user", err)
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.E(apperr.ErrNotFound, "delete user", nil)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID, &u.Role, &u.NationalID, &u.Username, &u.Email, &u.Phone, &u.FirstName, &u.LastName,
		&u.BirthDate, &u.PasswordHash, &u.Availability, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
