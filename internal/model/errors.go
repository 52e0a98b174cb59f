package model

import "errors"

// Доменные ошибки подсистемы аутентификации.
// Слои выше проверяют их через errors.Is и отображают в HTTP-статусы
var (
	// ErrConflict : идентификатор сессии уже занят
	ErrConflict = errors.New("идентификатор уже существует")

	// ErrNotFound : запись не найдена по идентификатору
	ErrNotFound = errors.New("запись не найдена")

	// ErrInvalidToken : секрет не найден, просрочен, имеет неверный тип
	// или проиграл гонку ротации
	ErrInvalidToken = errors.New("невалидный токен")

	// ErrInvalidArgument : нераспознанное значение на входе
	ErrInvalidArgument = errors.New("некорректный аргумент")

	// ErrAccessDenied : неверные учётные данные
	ErrAccessDenied = errors.New("доступ запрещён")
)
