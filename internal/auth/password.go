package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength — минимальная длина пароля администратора
const MinPasswordLength = 8

// ErrWeakPassword — пароль короче MinPasswordLength
var ErrWeakPassword = fmt.Errorf("пароль короче %d символов", MinPasswordLength)

// HashPassword хеширует пароль администратора для auth.admin_password_hash
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// CheckPassword сверяет пароль с хешем. Повреждённый хеш считается несовпадением.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
