// Package port defines the interfaces between services, stores and
// supporting infrastructure.
package port

import (
	"context"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
)

// CRUD is the generic store contract every entity collection fulfils.
// Update replaces the stored record wholesale; partial updates are the
// caller's concern.
type CRUD[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id int) error
}

// UserStore adds email lookup on top of the user collection.
type UserStore interface {
	CRUD[domain.User]
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// EmployeeStore is the staff collection.
type EmployeeStore interface {
	CRUD[domain.Employee]
}

// ProductStore is the finished-goods collection.
type ProductStore interface {
	CRUD[domain.Product]
}

// MaterialStore is the raw-materials collection.
type MaterialStore interface {
	CRUD[domain.RawMaterial]
}

// ServiceStore is the bookable-services collection.
type ServiceStore interface {
	CRUD[domain.Service]
}

// OrderStore hands out sequential order numbers alongside CRUD.
type OrderStore interface {
	CRUD[domain.Order]
	NextNumber() string
}

// ReturnStore hands out sequential return numbers alongside CRUD.
type ReturnStore interface {
	CRUD[domain.Return]
	NextNumber() string
}

// QuoteStore hands out sequential quote numbers alongside CRUD.
type QuoteStore interface {
	CRUD[domain.Quote]
	NextNumber() string
}

// WorkshopStore is the workshop collection.
type WorkshopStore interface {
	CRUD[domain.Workshop]
}

// BlogStore is the blog-post collection.
type BlogStore interface {
	CRUD[domain.BlogPost]
}

// RefreshTokenStore keeps hashed refresh tokens for rotation.
type RefreshTokenStore interface {
	Save(ctx context.Context, token domain.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (domain.RefreshToken, error)
	Revoke(ctx context.Context, id string) error
	RevokeAllForUser(ctx context.Context, userID int) error
}

// Cache is a TTL cache for public storefront projections.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// Notifier delivers status-transition events to an external sink.
// Publish must never block the calling workflow.
type Notifier interface {
	Publish(event domain.TransitionEvent)
}
