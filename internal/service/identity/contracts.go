package identity

import (
	"context"
	"time"

	"delivery-coordinator/internal/domain"
)

type userRepository interface {
	FindByLoginKey(ctx context.Context, key string) (*domain.User, error)
	Create(ctx context.Context, u *domain.NewUser) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

type tokenIssuer interface {
	Issue(userID int64, role domain.Role) (string, time.Time, error)
}
