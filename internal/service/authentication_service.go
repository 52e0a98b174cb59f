package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"memorial-records-server/config"
	"memorial-records-server/internal/model"
	"memorial-records-server/internal/ports"
	"memorial-records-server/internal/util"
)

type AuthenticationService struct {
	authenticationRepository ports.AuthenticationRepositoryInterface
	userStore                ports.UserStore
	cacheRepository          ports.AuthenticationCache
	generator                ports.SecretGeneratorInterface
	*config.AppConfig
}

func NewAuthenticationService(
	repo ports.AuthenticationRepositoryInterface,
	userStore ports.UserStore,
	cache ports.AuthenticationCache,
	generator ports.SecretGeneratorInterface,
	cfg *config.AppConfig,
) *AuthenticationService {
	return &AuthenticationService{
		repo,
		userStore,
		cache,
		generator,
		cfg,
	}
}

// Login выдаёт новую пару токенов.
// Проверку учётных данных выполняет UserStore; роль владельца
// становится единственным элементом abilities новой сессии.
// Возвращённый агрегат — единственное место, где клиент видит
// сырые значения секретов
func (s *AuthenticationService) Login(ctx context.Context, identifier, credential string) (*model.Authentication, error) {
	userUUID, role, err := s.userStore.Verify(ctx, identifier, credential)
	if err != nil {
		return nil, fmt.Errorf("не удалось проверить учётные данные: %w", err)
	}

	accessTTL, refreshTTL, err := s.tokenTTLs()
	if err != nil {
		return nil, err
	}

	accessSecret, err := s.generator.Generate()
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}
	refreshSecret, err := s.generator.Generate()
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	authentication, err := s.authenticationRepository.Create(ctx,
		identifier, userUUID, []model.Role{role},
		accessSecret, accessTTL,
		refreshSecret, refreshTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания сессии: %w", err)
	}

	return authentication, nil
}

// Find возвращает агрегат по идентификатору, сквозь кэш
func (s *AuthenticationService) Find(ctx context.Context, identifier string) (*model.Authentication, error) {
	if cached, err := s.cacheRepository.GetAuthentication(ctx, identifier); err == nil && cached != nil {
		return cached, nil
	}

	authentication, err := s.authenticationRepository.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepository.SetAuthentication(ctx, authentication); err != nil {
		log.Printf("не удалось сохранить сессию в кэш: %v", err)
	}

	return authentication, nil
}

// Introspect : булева проверка живости токена.
// Единственная ошибка уровня домена здесь — нераспознанный тип
func (s *AuthenticationService) Introspect(ctx context.Context, rawSecret, tokenType string) (bool, error) {
	parsedType, err := model.ParseTokenType(tokenType)
	if err != nil {
		return false, err
	}

	return s.authenticationRepository.Introspect(ctx, rawSecret, parsedType)
}

// Refresh обменивает refresh-секрет на новую пару.
// Access-типизированный секрет отклоняется до обращения к хранилищу
func (s *AuthenticationService) Refresh(ctx context.Context, rawSecret, tokenType string) (*model.Authentication, error) {
	parsedType, err := model.ParseTokenType(tokenType)
	if err != nil {
		return nil, err
	}
	if parsedType == model.TokenTypeAccess {
		return nil, fmt.Errorf("%w: обмену подлежит только refresh токен", model.ErrInvalidToken)
	}

	accessTTL, refreshTTL, err := s.tokenTTLs()
	if err != nil {
		return nil, err
	}

	authentication, err := s.authenticationRepository.Rotate(ctx, rawSecret, accessTTL, refreshTTL)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, authentication.Identifier)
	return authentication, nil
}

// Revoke очищает один слот токена; сессия при этом не удаляется
func (s *AuthenticationService) Revoke(ctx context.Context, rawSecret, tokenType string) error {
	parsedType, err := model.ParseTokenType(tokenType)
	if err != nil {
		return err
	}

	identifier, err := s.authenticationRepository.Revoke(ctx, rawSecret, parsedType)
	if err != nil {
		return err
	}

	s.invalidateCache(ctx, identifier)
	return nil
}

// Logout удаляет сессию целиком
func (s *AuthenticationService) Logout(ctx context.Context, identifier string) error {
	if err := s.authenticationRepository.Delete(ctx, identifier); err != nil {
		return err
	}

	s.invalidateCache(ctx, identifier)
	return nil
}

func (s *AuthenticationService) tokenTTLs() (time.Duration, time.Duration, error) {
	accessTTL, err := time.ParseDuration(s.Token.AccessTokenTTL)
	if err != nil {
		return 0, 0, util.LogError("ошибка парсинга access TTL", err)
	}

	refreshTTL, err := time.ParseDuration(s.Token.RefreshTokenTTL)
	if err != nil {
		return 0, 0, util.LogError("ошибка парсинга refresh TTL", err)
	}

	return accessTTL, refreshTTL, nil
}

func (s *AuthenticationService) invalidateCache(ctx context.Context, identifier string) {
	if err := s.cacheRepository.DeleteAuthentication(ctx, identifier); err != nil {
		log.Printf("не удалось удалить сессию из кэша: %v", err)
	}
}
