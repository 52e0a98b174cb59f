package security

import "golang.org/x/crypto/bcrypt"

// HashPassword хэширует секрет учётной записи.
// В отличие от токенов здесь нужен именно медленный адаптивный хэш
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
