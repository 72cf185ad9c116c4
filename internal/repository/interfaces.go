package repository

import (
	"context"

	"github.com/dom/product-catalog-api/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	// FirstValidByUser returns the newest active session for the user.
	FirstValidByUser(ctx context.Context, userID uuid.UUID) (*domain.Session, error)
	// Invalidate flips the session to the invalidated state. Invalidating
	// an already-invalid or absent session is a no-op.
	Invalidate(ctx context.Context, id uuid.UUID) error
	InvalidateAllByUser(ctx context.Context, userID uuid.UUID) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByProductID(ctx context.Context, productID string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, productID string) error
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
	Product ProductRepository
}
