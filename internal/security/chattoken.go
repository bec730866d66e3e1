package security

import (
	"errors"
	"strings"
	"time"

	"github.com/jobora/chat-service/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Используется SigningMethodHS256: чат-токен короткоживущий и с одной
// аудиторией, общего секрета достаточно.
type ChatTokenSigner struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewChatTokenSigner(secret []byte, issuer string, ttl time.Duration) *ChatTokenSigner {
	return &ChatTokenSigner{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
	}
}

func (s *ChatTokenSigner) TTL() time.Duration {
	return s.ttl
}

type ChatClaims struct {
	SenderID string `json:"senderId"`
	jwt.RegisteredClaims
}

// Sign выпускает чат-токен с senderId и exp=now+ttl.
func (s *ChatTokenSigner) Sign(senderID string, now time.Time) (string, error) {
	claims := ChatClaims{
		SenderID: senderID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// Validate проверяет подпись и exp, возвращает senderId из клеймов.
// Просроченный токен → domain.ErrTokenExpired, всё остальное
// (битый payload, чужая подпись, пустой senderId) → domain.ErrTokenMalformed.
func (s *ChatTokenSigner) Validate(tokenStr string) (string, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return "", domain.ErrTokenMalformed
	}

	claims := &ChatClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenMalformed
	}
	if !token.Valid {
		return "", domain.ErrTokenMalformed
	}
	if claims.SenderID == "" {
		return "", domain.ErrTokenMalformed
	}

	return claims.SenderID, nil
}
