package service

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "calibration-system/pkg/errors"
)

// SessionClaims - содержимое сессионной куки: email, имя и время входа.
// Состав повторяет прежнюю JSON-куку, но токен подписан HMAC.
type SessionClaims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	LoginTime int64  `json:"loginTime"` // unix millis
	jwt.RegisteredClaims
}

type SessionService interface {
	IssueToken(userID, email, name string) (string, error)
	ValidateToken(tokenString string) (*SessionClaims, error)
	GetTTL() time.Duration
}

type sessionService struct {
	secretKey string
	ttl       time.Duration
}

func NewSessionService(secretKey string, ttl time.Duration) SessionService {
	return &sessionService{
		secretKey: secretKey,
		ttl:       ttl,
	}
}

func (s *sessionService) IssueToken(userID, email, name string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:    userID,
		Email:     email,
		Name:      name,
		LoginTime: now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(s.secretKey))
}

func (s *sessionService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(s.secretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	// Срок жизни сессии считается от момента входа, ровно 24 часа.
	loginTime := time.UnixMilli(claims.LoginTime)
	if time.Since(loginTime) >= s.ttl {
		return nil, apperrors.ErrSessionExpired
	}

	return claims, nil
}

func (s *sessionService) GetTTL() time.Duration {
	return s.ttl
}
