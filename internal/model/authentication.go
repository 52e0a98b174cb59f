package model

import (
	"fmt"
	"time"
)

// TokenType : тип токена в выданной паре
type TokenType string

const (
	TokenTypeAccess  TokenType = "ACCESS"
	TokenTypeRefresh TokenType = "REFRESH"
)

// ParseTokenType разбирает строковое представление типа токена.
// Возвращает ErrInvalidArgument для нераспознанного значения
func ParseTokenType(value string) (TokenType, error) {
	switch TokenType(value) {
	case TokenTypeAccess:
		return TokenTypeAccess, nil
	case TokenTypeRefresh:
		return TokenTypeRefresh, nil
	default:
		return "", fmt.Errorf("%w: неизвестный тип токена %q", ErrInvalidArgument, value)
	}
}

// Token : значение токена.
// Value заполняется только в момент выдачи (login, refresh) и никогда не сохраняется.
// ExpiresAt == nil означает, что токен отозван или не был выдан
type Token struct {
	Type      TokenType  `json:"type"`
	Value     string     `json:"value,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Authentication : агрегат авторизованной сессии.
// В БД вместо значений токенов хранятся их отпечатки,
// поэтому у прочитанного из хранилища агрегата Token.Value всегда пустой
type Authentication struct {
	Identifier   string    `json:"identifier"`
	User         string    `json:"user"`
	Abilities    []Role    `json:"abilities"`
	AccessToken  *Token    `json:"access_token,omitempty"`
	RefreshToken *Token    `json:"refresh_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
