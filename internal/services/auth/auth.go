// Package services содержит логику авторизации администратора.
//
// Доступ защищён одним общим паролем: при совпадении выдаётся подписанный
// JWT с ролью admin и ограниченным сроком действия. Пароль хэшируется
// bcrypt при старте, так что сравнение на входе выполняется за
// постоянное время.
package services

import (
	"errors"

	"github.com/vlourenco/rodizio/internal/lib/jwt"
	"github.com/vlourenco/rodizio/internal/lib/password"
)

// AdminRole роль, зашиваемая в токен администратора.
const AdminRole = "admin"

// ErrInvalidPassword возвращается при неверном пароле администратора.
var ErrInvalidPassword = errors.New("incorrect password")

// AuthService отвечает за вход администратора и валидацию JWT.
type AuthService struct {
	passwordHash string
	jwtMaker     jwt.Maker
}

// NewAuthService создает сервис авторизации, хэшируя настроенный пароль.
func NewAuthService(adminPassword string, jwtMaker jwt.Maker) (*AuthService, error) {
	hash, err := password.GetHash(adminPassword)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		passwordHash: hash,
		jwtMaker:     jwtMaker,
	}, nil
}

// Login проверяет пароль и возвращает подписанный токен администратора.
func (s *AuthService) Login(rawPassword string) (string, error) {
	if err := password.CompareHash(s.passwordHash, rawPassword); err != nil {
		return "", ErrInvalidPassword
	}
	return s.jwtMaker.GenerateToken(AdminRole)
}

// ValidateToken проверяет токен и возвращает его claims.
// Причина отказа (подпись, срок, формат) наружу не различается.
func (s *AuthService) ValidateToken(tokenStr string) (*jwt.Claims, error) {
	return s.jwtMaker.ParseToken(tokenStr)
}
