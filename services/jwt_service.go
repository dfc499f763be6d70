package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"qrasset-http-service/config"
)

// JWTService JWT 토큰 발급/검증 서비스
type JWTService struct {
	secretKey string
	issuer    string
}

// JWTClaims JWT 토큰 클레임 구조
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTService 새 JWT 서비스 생성
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "qrasset-http-service",
	}
}

// GenerateToken JWT 토큰 생성
func (s *JWTService) GenerateToken(userID, email, role string) (string, error) {
	// 토큰 유효기간 24시간
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &JWTClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken JWT 토큰 검증
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 서명 알고리즘 확인
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims 토큰에서 클레임 추출
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	jwtClaims := &JWTClaims{}
	if userID, ok := claims["user_id"].(string); ok {
		jwtClaims.UserID = userID
	}
	if email, ok := claims["email"].(string); ok {
		jwtClaims.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		jwtClaims.Role = role
	}
	if jwtClaims.UserID == "" {
		return nil, errors.New("invalid token claims")
	}

	return jwtClaims, nil
}
