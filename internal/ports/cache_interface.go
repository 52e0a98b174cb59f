package ports

import (
	"context"

	"memorial-records-server/internal/model"
)

// AuthenticationCache : кэш агрегата по идентификатору.
// Промах не считается ошибкой: возвращается (nil, nil)
type AuthenticationCache interface {
	GetAuthentication(ctx context.Context, identifier string) (*model.Authentication, error)
	SetAuthentication(ctx context.Context, authentication *model.Authentication) error
	DeleteAuthentication(ctx context.Context, identifier string) error
}
