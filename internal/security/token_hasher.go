package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// TokenHasher вычисляет детерминированный отпечаток секрета токена.
// Отпечаток используется и при записи, и при поиске по равенству,
// поэтому схема не может быть рандомизированной (bcrypt здесь не подходит).
// Быстрый keyed-хэш допустим: энтропию обеспечивает сам секрет
type TokenHasher struct {
	salt []byte
}

// NewTokenHasher принимает серверную соль, единую на весь процесс
func NewTokenHasher(salt string) *TokenHasher {
	return &TokenHasher{salt: []byte(salt)}
}

// Fingerprint : HMAC-SHA256 от секрета с серверной солью, hex-строка.
// Исходный секрет из отпечатка невосстановим
func (h *TokenHasher) Fingerprint(secret string) string {
	mac := hmac.New(sha256.New, h.salt)
	mac.Write([]byte(secret))
	return hex.EncodeToString(mac.Sum(nil))
}
