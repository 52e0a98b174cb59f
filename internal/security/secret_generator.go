package security

import (
	"crypto/rand"
	"math/big"

	"memorial-records-server/internal/util"
)

// Набор символов достаточно широк, чтобы перебор 64-символьного секрета
// был невозможен за время жизни любого токена
const secretCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const DefaultSecretLength = 64

// SecretGenerator генерирует случайные секреты токенов фиксированной длины.
// Секреты пары access/refresh генерируются независимыми вызовами
// и не выводимы друг из друга
type SecretGenerator struct {
	length int
}

func NewSecretGenerator(length int) *SecretGenerator {
	if length <= 0 {
		length = DefaultSecretLength
	}
	return &SecretGenerator{length: length}
}

// Generate возвращает новый секрет из криптографически стойкого источника
func (g *SecretGenerator) Generate() (string, error) {
	secret := make([]byte, g.length)
	charsetSize := big.NewInt(int64(len(secretCharset)))

	for i := range secret {
		n, err := rand.Int(rand.Reader, charsetSize)
		if err != nil {
			return "", util.LogError("ошибка генерации секрета", err)
		}
		secret[i] = secretCharset[n.Int64()]
	}

	return string(secret), nil
}
