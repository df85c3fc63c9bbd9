package services

import (
  "errors"
  "fmt"
  "time"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "github.com/yungbote/focustown-backend/internal/logger"
)

var ErrInvalidToken = errors.New("invalid token")

type AuthService interface {
  IssueToken(userID uuid.UUID) (string, error)
  ParseToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
  secret []byte
  ttl    time.Duration
  log    *logger.Logger
}

func NewAuthService(secret string, ttl time.Duration, baseLog *logger.Logger) AuthService {
  return &authService{
    secret: []byte(secret),
    ttl:    ttl,
    log:    baseLog.With("service", "AuthService"),
  }
}

func (as *authService) IssueToken(userID uuid.UUID) (string, error) {
  now := time.Now()
  claims := jwt.RegisteredClaims{
    Subject:   userID.String(),
    IssuedAt:  jwt.NewNumericDate(now),
    ExpiresAt: jwt.NewNumericDate(now.Add(as.ttl)),
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  signed, err := token.SignedString(as.secret)
  if err != nil {
    return "", fmt.Errorf("sign token: %w", err)
  }
  return signed, nil
}

func (as *authService) ParseToken(tokenString string) (uuid.UUID, error) {
  token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
    }
    return as.secret, nil
  })
  if err != nil || !token.Valid {
    return uuid.Nil, ErrInvalidToken
  }
  claims, ok := token.Claims.(*jwt.RegisteredClaims)
  if !ok || claims.Subject == "" {
    return uuid.Nil, ErrInvalidToken
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return uuid.Nil, ErrInvalidToken
  }
  return userID, nil
}
