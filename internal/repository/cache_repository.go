package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"memorial-records-server/config"
	"memorial-records-server/internal/model"
	"memorial-records-server/internal/util"

	"github.com/redis/go-redis/v9"
)

// CacheRepository кэширует агрегат Authentication по идентификатору.
// Сырые секреты в кэш не попадают
type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) GetAuthentication(ctx context.Context, identifier string) (*model.Authentication, error) {
	data, err := r.client.Client.Get(ctx, r.key(identifier)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("ошибка чтения из Redis", err)
	}

	var authentication model.Authentication
	if err := json.Unmarshal(data, &authentication); err != nil {
		return nil, util.LogError("ошибка десериализации сессии", err)
	}

	return &authentication, nil
}

func (r *CacheRepository) SetAuthentication(ctx context.Context, authentication *model.Authentication) error {
	data, err := json.Marshal(sanitize(authentication))
	if err != nil {
		return util.LogError("ошибка сериализации сессии", err)
	}

	if err := r.client.Client.Set(ctx, r.key(authentication.Identifier), data, r.ttl).Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}

	return nil
}

func (r *CacheRepository) DeleteAuthentication(ctx context.Context, identifier string) error {
	if err := r.client.Client.Del(ctx, r.key(identifier)).Err(); err != nil {
		return util.LogError("ошибка удаления из Redis", err)
	}

	return nil
}

func (r *CacheRepository) key(identifier string) string {
	return "authentication:" + identifier
}

// sanitize возвращает копию агрегата без значений токенов
func sanitize(authentication *model.Authentication) *model.Authentication {
	sanitized := *authentication
	if sanitized.AccessToken != nil {
		token := *sanitized.AccessToken
		token.Value = ""
		sanitized.AccessToken = &token
	}
	if sanitized.RefreshToken != nil {
		token := *sanitized.RefreshToken
		token.Value = ""
		sanitized.RefreshToken = &token
	}
	return &sanitized
}
