package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"memorial-records-server/config"
	"memorial-records-server/internal/model"
	"memorial-records-server/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет новую учётную запись
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, identifier, password_hash, role)
	VALUES ($1, $2, $3, $4)
	RETURNING uuid, identifier, role, created_at
	`

	createdUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query, user.UUID, user.Identifier, user.PasswordHash, user.Role).
		Scan(&createdUser.UUID, &createdUser.Identifier, &createdUser.Role, &createdUser.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: идентификатор %s", model.ErrConflict, user.Identifier)
		}
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByIdentifier : ищет учётную запись по публичному идентификатору
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	query := `SELECT uuid, identifier, password_hash, role, created_at FROM users WHERE identifier = $1`

	var user model.User
	if err := sqlx.GetContext(ctx, r.DB, &user, query, identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: идентификатор %s", model.ErrNotFound, identifier)
		}
		return nil, util.LogError("[UserRepo] не удалось найти учётную запись", err)
	}

	return &user, nil
}
