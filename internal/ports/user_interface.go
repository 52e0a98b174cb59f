package ports

import (
	"context"

	"memorial-records-server/internal/model"
)

// UserStore проверяет пару идентификатор/секрет и возвращает
// UUID владельца учётной записи вместе с его ролью
type UserStore interface {
	Verify(ctx context.Context, identifier, credential string) (string, model.Role, error)
}

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
}

type UserService interface {
	Register(ctx context.Context, identifier, credential string, role model.Role) (*model.User, error)
	Verify(ctx context.Context, identifier, credential string) (string, model.Role, error)
}
