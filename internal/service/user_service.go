package service

import (
	"context"
	"fmt"

	"memorial-records-server/internal/model"
	"memorial-records-server/internal/ports"
	"memorial-records-server/internal/security"

	"github.com/google/uuid"
)

type UserService struct {
	userRepository ports.UserRepositoryInterface
}

func NewUserService(userRepository ports.UserRepositoryInterface) *UserService {
	return &UserService{userRepository: userRepository}
}

// Register создаёт учётную запись с заданной ролью
func (s *UserService) Register(ctx context.Context, identifier, credential string, role model.Role) (*model.User, error) {
	hash, err := security.HashPassword(credential)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш секрета: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Identifier:   identifier,
		PasswordHash: hash,
		Role:         role,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка создания учётной записи: %w", err)
	}

	return created, nil
}

// Verify проверяет пару идентификатор/секрет.
// Возвращает UUID владельца учётной записи и его роль
func (s *UserService) Verify(ctx context.Context, identifier, credential string) (string, model.Role, error) {
	user, err := s.userRepository.FindByIdentifier(ctx, identifier)
	if err != nil {
		return "", "", err
	}

	if !security.CheckPassword(credential, user.PasswordHash) {
		return "", "", fmt.Errorf("%w: неверный секрет", model.ErrAccessDenied)
	}

	return user.UUID, user.Role, nil
}
