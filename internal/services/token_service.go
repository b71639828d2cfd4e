package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService は解錠トークンの生成と検証を扱います。
// パスコード照合に成功したスラッグを24時間有効なトークンに焼き込みます。
// 暗号学的な本人確認ではなく、クライアント側の「unlocked_{slug}」フラグに相当します。
type TokenService struct {
	secret []byte
}

// NewTokenService は新しいTokenServiceを作成します。
func NewTokenService() *TokenService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	return &TokenService{secret: []byte(secret)}
}

// GenerateToken はスラッグに紐付く解錠トークンを生成します。
func (s *TokenService) GenerateToken(slug string) (string, error) {
	claims := &jwt.MapClaims{
		"slug": slug,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour * 24).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign unlock token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken はトークンを検証し、解錠済みのスラッグを返します。
func (s *TokenService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid unlock token")
	}

	slug, ok := claims["slug"].(string)
	if !ok || slug == "" {
		return "", fmt.Errorf("slug not found in token claims")
	}
	return slug, nil
}
