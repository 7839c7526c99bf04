package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/annel0/skyblob/internal/config"
)

const (
	issuer       = "skyblob"
	adminSubject = "admin"
)

var (
	// ErrInvalidCredentials — неверный пароль администратора
	ErrInvalidCredentials = errors.New("auth: неверные учётные данные")
	// ErrInvalidToken — токен не прошёл проверку
	ErrInvalidToken = errors.New("auth: недействительный токен")
	// ErrLoginDisabled — хеш пароля администратора не задан
	ErrLoginDisabled = errors.New("auth: вход администратора отключён")
)

// Claims represents JWT claims
type Claims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// AdminAuth проверяет пароль администратора и выдаёт HS256 токены
type AdminAuth struct {
	passwordHash string
	secret       []byte
	tokenExpiry  time.Duration
	now          func() time.Time
}

// NewAdminAuth создаёт аутентификатор по конфигурации.
// Без jwt_secret генерируется случайный ключ: токены живут до перезапуска процесса.
func NewAdminAuth(cfg config.AuthConfig) (*AdminAuth, error) {
	a := &AdminAuth{
		passwordHash: cfg.AdminPasswordHash,
		tokenExpiry:  12 * time.Hour,
		now:          time.Now,
	}

	if cfg.JWTSecret == "" {
		a.secret = make([]byte, 32)
		if _, err := rand.Read(a.secret); err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		return a, nil
	}

	secret, err := DecodeSecret(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	a.secret = secret
	return a, nil
}

// Login сверяет пароль с bcrypt-хешем и выдаёт токен администратора
func (a *AdminAuth) Login(password string) (string, error) {
	if a.passwordHash == "" {
		return "", ErrLoginDisabled
	}
	if !CheckPassword(a.passwordHash, password) {
		return "", ErrInvalidCredentials
	}
	return a.GenerateJWT()
}

// GenerateJWT creates a signed admin token
func (a *AdminAuth) GenerateJWT() (string, error) {
	now := a.now()
	claims := &Claims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   adminSubject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ValidateJWT checks token validity and returns its claims
func (a *AdminAuth) ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// GenerateSecureSecret generates a new secure secret key
func GenerateSecureSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeSecret разбирает base64-ключ и проверяет его длину
func DecodeSecret(secret string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("jwt secret: %w", err)
	}
	if len(decoded) < 32 {
		return nil, errors.New("secret key must be at least 32 bytes")
	}
	return decoded, nil
}
