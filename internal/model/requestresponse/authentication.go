package requestresponse

import (
	"time"

	"memorial-records-server/internal/model"
)

// LoginRequest : тело запроса на выдачу пары токенов
type LoginRequest struct {
	Identifier string `json:"identifier" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	Credential string `json:"credential" example:"P@ssw0rd123"`
}

// TokenPayload : выданный токен.
// Value присутствует только в ответах login и refresh
type TokenPayload struct {
	Type      string     `json:"type" example:"ACCESS"`
	Value     string     `json:"value,omitempty" example:"fKj3...64 символа...Qp9Z"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// AuthenticationResponse : агрегат сессии
type AuthenticationResponse struct {
	Response struct {
		Identifier   string        `json:"identifier" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
		User         string        `json:"user" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
		Abilities    []string      `json:"abilities" example:"ADMIN"`
		AccessToken  *TokenPayload `json:"access_token,omitempty"`
		RefreshToken *TokenPayload `json:"refresh_token,omitempty"`
	} `json:"response"`
}

// IntrospectRequest : запрос проверки живости токена
type IntrospectRequest struct {
	Token string `json:"token" example:"fKj3...Qp9Z"`
	Type  string `json:"type" example:"ACCESS"`
}

// IntrospectResponse : результат проверки живости
type IntrospectResponse struct {
	Active bool `json:"active" example:"true"`
}

// RefreshRequest : запрос на обмен refresh-секрета
type RefreshRequest struct {
	Token string `json:"token" example:"fKj3...Qp9Z"`
	Type  string `json:"type" example:"REFRESH"`
}

// RevokeRequest : запрос на отзыв одного слота токена
type RevokeRequest struct {
	Token string `json:"token" example:"fKj3...Qp9Z"`
	Type  string `json:"type" example:"ACCESS"`
}

// ErrorResponse : тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error" example:"Bad Request"`
	Message string `json:"message" example:"невалидный токен"`
	Code    int    `json:"code" example:"400"`
}

// NewAuthenticationResponse собирает ответ из агрегата
func NewAuthenticationResponse(authentication *model.Authentication) AuthenticationResponse {
	resp := AuthenticationResponse{}
	resp.Response.Identifier = authentication.Identifier
	resp.Response.User = authentication.User
	resp.Response.Abilities = make([]string, 0, len(authentication.Abilities))
	for _, ability := range authentication.Abilities {
		resp.Response.Abilities = append(resp.Response.Abilities, string(ability))
	}
	resp.Response.AccessToken = newTokenPayload(authentication.AccessToken)
	resp.Response.RefreshToken = newTokenPayload(authentication.RefreshToken)
	return resp
}

func newTokenPayload(token *model.Token) *TokenPayload {
	if token == nil {
		return nil
	}
	return &TokenPayload{
		Type:      string(token.Type),
		Value:     token.Value,
		ExpiresAt: token.ExpiresAt,
	}
}
