package model

import (
	"fmt"
	"time"
)

// Role : роль владельца сессии
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleCustomer Role = "CUSTOMER"
)

// ParseRole разбирает строковое представление роли
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin, RoleEmployee, RoleCustomer:
		return Role(value), nil
	default:
		return "", fmt.Errorf("%w: неизвестная роль %q", ErrInvalidArgument, value)
	}
}

type User struct {
	UUID         string    `db:"uuid" json:"uuid"`
	Identifier   string    `db:"identifier" json:"identifier"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
