// Package jwt реализует генерацию и проверку JWT токенов администратора.
//
// Токен несёт роль и время выпуска; срок жизни задаётся при создании Maker.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims данные, хранящиеся в токене администратора.
type Claims struct {
	Role                 string `json:"role"`
	jwt.RegisteredClaims        // стандартные claims (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает интерфейс генерации и парсинга токенов.
type Maker interface {
	// GenerateToken создаёт подписанный токен с указанной ролью.
	GenerateToken(role string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует Maker на основе секретного ключа и TTL токена.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создаёт новый экземпляр MakerImpl.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// GenerateToken создаёт JWT с ролью, подписанный секретным ключом HS256.
func (j *MakerImpl) GenerateToken(role string) (string, error) {
	const op = "jwt.GenerateToken"
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken парсит токен, проверяет подпись и срок действия.
// Любая причина отказа (подпись, срок, формат) возвращается единой ошибкой.
func (j *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
