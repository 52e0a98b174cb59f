package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"memorial-records-server/config"
	"memorial-records-server/internal/model"
	"memorial-records-server/internal/ports"
	"memorial-records-server/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// код ошибки unique_violation в Postgres
const pgUniqueViolation = "23505"

// AuthenticationRepository владеет таблицей authentications.
// Вместо значений токенов хранятся только их отпечатки
type AuthenticationRepository struct {
	*config.Database
	hasher    ports.TokenHasherInterface
	generator ports.SecretGeneratorInterface
}

func NewAuthenticationRepository(
	database *config.Database,
	hasher ports.TokenHasherInterface,
	generator ports.SecretGeneratorInterface,
) *AuthenticationRepository {
	return &AuthenticationRepository{database, hasher, generator}
}

type authenticationRow struct {
	Identifier         string         `db:"identifier"`
	UserUUID           string         `db:"user_uuid"`
	AccessFingerprint  *string        `db:"access_fingerprint"`
	AccessExpiresAt    *time.Time     `db:"access_expires_at"`
	RefreshFingerprint *string        `db:"refresh_fingerprint"`
	RefreshExpiresAt   *time.Time     `db:"refresh_expires_at"`
	Abilities          pq.StringArray `db:"abilities"`
	CreatedAt          time.Time      `db:"created_at"`
}

func (r *authenticationRow) toModel() *model.Authentication {
	authentication := &model.Authentication{
		Identifier: r.Identifier,
		User:       r.UserUUID,
		Abilities:  make([]model.Role, 0, len(r.Abilities)),
		CreatedAt:  r.CreatedAt,
	}
	for _, ability := range r.Abilities {
		authentication.Abilities = append(authentication.Abilities, model.Role(ability))
	}
	if r.AccessFingerprint != nil {
		authentication.AccessToken = &model.Token{Type: model.TokenTypeAccess, ExpiresAt: r.AccessExpiresAt}
	}
	if r.RefreshFingerprint != nil {
		authentication.RefreshToken = &model.Token{Type: model.TokenTypeRefresh, ExpiresAt: r.RefreshExpiresAt}
	}
	return authentication
}

// Create сохраняет новую сессию с отпечатками обоих секретов.
// Возвращает model.ErrConflict, если идентификатор уже занят
func (r *AuthenticationRepository) Create(
	ctx context.Context,
	identifier, userUUID string,
	abilities []model.Role,
	accessSecret string, accessTTL time.Duration,
	refreshSecret string, refreshTTL time.Duration,
) (*model.Authentication, error) {
	query := `
	INSERT INTO authentications (identifier, user_uuid, abilities, access_fingerprint, access_expires_at, refresh_fingerprint, refresh_expires_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now().UTC()
	accessExpiresAt := now.Add(accessTTL)
	refreshExpiresAt := now.Add(refreshTTL)

	abilityNames := make(pq.StringArray, 0, len(abilities))
	for _, ability := range abilities {
		abilityNames = append(abilityNames, string(ability))
	}

	_, err := r.DB.ExecContext(ctx, query,
		identifier,
		userUUID,
		abilityNames,
		r.hasher.Fingerprint(accessSecret),
		accessExpiresAt,
		r.hasher.Fingerprint(refreshSecret),
		refreshExpiresAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: идентификатор %s", model.ErrConflict, identifier)
		}
		return nil, util.LogError("[AuthRepo] ошибка вставки данных в БД", err)
	}

	return &model.Authentication{
		Identifier: identifier,
		User:       userUUID,
		Abilities:  abilities,
		AccessToken: &model.Token{
			Type:      model.TokenTypeAccess,
			Value:     accessSecret,
			ExpiresAt: &accessExpiresAt,
		},
		RefreshToken: &model.Token{
			Type:      model.TokenTypeRefresh,
			Value:     refreshSecret,
			ExpiresAt: &refreshExpiresAt,
		},
		CreatedAt: now,
	}, nil
}

// FindByIdentifier возвращает агрегат без сырых секретов
// (из отпечатков они невосстановимы)
func (r *AuthenticationRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.Authentication, error) {
	query := `
	SELECT identifier, user_uuid, access_fingerprint, access_expires_at, refresh_fingerprint, refresh_expires_at, abilities, created_at
	FROM authentications WHERE identifier = $1
	`

	row := &authenticationRow{}
	if err := sqlx.GetContext(ctx, r.DB, row, query, identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: идентификатор %s", model.ErrNotFound, identifier)
		}
		return nil, util.LogError("[AuthRepo] ошибка поиска сессии", err)
	}

	return row.toModel(), nil
}

// Introspect : чисто булева проверка живости токена.
// Отсутствие записи и просроченный токен не считаются ошибкой
func (r *AuthenticationRepository) Introspect(ctx context.Context, rawSecret string, tokenType model.TokenType) (bool, error) {
	column, err := fingerprintColumn(tokenType)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`SELECT %s_expires_at FROM authentications WHERE %s_fingerprint = $1`, column, column)

	var expiresAt sql.NullTime
	if err := r.DB.QueryRowContext(ctx, query, r.hasher.Fingerprint(rawSecret)).Scan(&expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, util.LogError("[AuthRepo] ошибка проверки токена", err)
	}

	return expiresAt.Valid && time.Now().UTC().Before(expiresAt.Time), nil
}

// Rotate обменивает refresh-секрет на новую пару токенов.
// Запись новой пары условная: она проходит только если refresh-отпечаток
// всё ещё равен найденному, поэтому из конкурирующих refresh-запросов
// с одним и тем же секретом выигрывает ровно один
func (r *AuthenticationRepository) Rotate(ctx context.Context, rawRefreshSecret string, accessTTL, refreshTTL time.Duration) (*model.Authentication, error) {
	oldFingerprint := r.hasher.Fingerprint(rawRefreshSecret)

	query := `
	SELECT identifier, user_uuid, access_fingerprint, access_expires_at, refresh_fingerprint, refresh_expires_at, abilities, created_at
	FROM authentications WHERE refresh_fingerprint = $1
	`

	row := &authenticationRow{}
	if err := sqlx.GetContext(ctx, r.DB, row, query, oldFingerprint); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: refresh токен не найден", model.ErrInvalidToken)
		}
		return nil, util.LogError("[AuthRepo] ошибка поиска refresh токена", err)
	}

	if row.RefreshExpiresAt == nil || !time.Now().UTC().Before(*row.RefreshExpiresAt) {
		return nil, fmt.Errorf("%w: refresh токен просрочен", model.ErrInvalidToken)
	}

	accessSecret, err := r.generator.Generate()
	if err != nil {
		return nil, util.LogError("[AuthRepo] ошибка генерации access секрета", err)
	}
	refreshSecret, err := r.generator.Generate()
	if err != nil {
		return nil, util.LogError("[AuthRepo] ошибка генерации refresh секрета", err)
	}

	now := time.Now().UTC()
	accessExpiresAt := now.Add(accessTTL)
	refreshExpiresAt := now.Add(refreshTTL)

	updateQuery := `
	UPDATE authentications
	SET access_fingerprint = $1, access_expires_at = $2, refresh_fingerprint = $3, refresh_expires_at = $4
	WHERE identifier = $5 AND refresh_fingerprint = $6
	`

	result, err := r.DB.ExecContext(ctx, updateQuery,
		r.hasher.Fingerprint(accessSecret),
		accessExpiresAt,
		r.hasher.Fingerprint(refreshSecret),
		refreshExpiresAt,
		row.Identifier,
		oldFingerprint,
	)
	if err != nil {
		return nil, util.LogError("[AuthRepo] не удалось обновить пару токенов", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, util.LogError("[AuthRepo] не удалось проверить, обновлена ли запись", err)
	}
	if rowsAffected == 0 {
		// пара уже ротирована конкурирующим запросом
		return nil, fmt.Errorf("%w: refresh токен уже был использован", model.ErrInvalidToken)
	}

	authentication := row.toModel()
	authentication.AccessToken = &model.Token{
		Type:      model.TokenTypeAccess,
		Value:     accessSecret,
		ExpiresAt: &accessExpiresAt,
	}
	authentication.RefreshToken = &model.Token{
		Type:      model.TokenTypeRefresh,
		Value:     refreshSecret,
		ExpiresAt: &refreshExpiresAt,
	}

	return authentication, nil
}

// Revoke очищает слот токена, отпечаток которого совпал с rawSecret.
// Второй слот не затрагивается; запись остаётся до logout.
// Возвращает идентификатор затронутой сессии
func (r *AuthenticationRepository) Revoke(ctx context.Context, rawSecret string, tokenType model.TokenType) (string, error) {
	column, err := fingerprintColumn(tokenType)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf(`
	UPDATE authentications
	SET %s_fingerprint = NULL, %s_expires_at = NULL
	WHERE %s_fingerprint = $1
	RETURNING identifier
	`, column, column, column)

	var identifier string
	if err := r.DB.QueryRowContext(ctx, query, r.hasher.Fingerprint(rawSecret)).Scan(&identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: токен не найден", model.ErrInvalidToken)
		}
		return "", util.LogError("[AuthRepo] не удалось отозвать токен", err)
	}

	return identifier, nil
}

// Delete полностью удаляет сессию
func (r *AuthenticationRepository) Delete(ctx context.Context, identifier string) error {
	query := `DELETE FROM authentications WHERE identifier = $1`

	result, err := r.DB.ExecContext(ctx, query, identifier)
	if err != nil {
		return util.LogError("[AuthRepo] не удалось удалить сессию", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[AuthRepo] не удалось проверить, удалена ли сессия", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: идентификатор %s", model.ErrNotFound, identifier)
	}

	return nil
}

func fingerprintColumn(tokenType model.TokenType) (string, error) {
	switch tokenType {
	case model.TokenTypeAccess:
		return "access", nil
	case model.TokenTypeRefresh:
		return "refresh", nil
	default:
		return "", fmt.Errorf("%w: неизвестный тип токена %q", model.ErrInvalidArgument, tokenType)
	}
}
