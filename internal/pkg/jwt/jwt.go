package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"teamforge/internal/pkg/config"
	pkgErrors "teamforge/pkg/errors"
)

// UserClaims 用户Claims
type UserClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateAccessToken 生成访问Token, 过期时间取 auth.jwt.access_token_expire
func GenerateAccessToken(userID int64, email string) (string, error) {
	cfg := config.GlobalConfig.Auth.JWT
	now := time.Now()

	claims := UserClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.AccessTokenExpire) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseToken 解析并校验Token(签名与过期时间)
func ParseToken(tokenString string) (*UserClaims, error) {
	cfg := config.GlobalConfig.Auth.JWT

	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		// 过期、签名错误、格式错误统一返回同一提示
		return nil, pkgErrors.Wrap(pkgErrors.CodeUnauthorized, pkgErrors.ErrUnauthorized.Message, err)
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, pkgErrors.ErrUnauthorized
	}

	return claims, nil
}
