package ports

import (
	"context"
	"time"

	"memorial-records-server/internal/model"
)

type AuthenticationService interface {
	Login(ctx context.Context, identifier, credential string) (*model.Authentication, error)
	Find(ctx context.Context, identifier string) (*model.Authentication, error)
	Introspect(ctx context.Context, rawSecret, tokenType string) (bool, error)
	Refresh(ctx context.Context, rawSecret, tokenType string) (*model.Authentication, error)
	Revoke(ctx context.Context, rawSecret, tokenType string) error
	Logout(ctx context.Context, identifier string) error
}

// AuthenticationRepositoryInterface : хранилище агрегата Authentication.
// Методы, принимающие сырой секрет, сами вычисляют его отпечаток;
// сырые секреты в хранилище не попадают
type AuthenticationRepositoryInterface interface {
	Create(ctx context.Context, identifier, userUUID string, abilities []model.Role,
		accessSecret string, accessTTL time.Duration,
		refreshSecret string, refreshTTL time.Duration) (*model.Authentication, error)
	FindByIdentifier(ctx context.Context, identifier string) (*model.Authentication, error)
	Introspect(ctx context.Context, rawSecret string, tokenType model.TokenType) (bool, error)
	Rotate(ctx context.Context, rawRefreshSecret string, accessTTL, refreshTTL time.Duration) (*model.Authentication, error)
	Revoke(ctx context.Context, rawSecret string, tokenType model.TokenType) (string, error)
	Delete(ctx context.Context, identifier string) error
}
