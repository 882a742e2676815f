package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token süresi (30 gün). Gerçek oturum sonu logout'ta cihaz kaydının silinmesi.
const TokenExpiryLogin = 30 * 24 * time.Hour

type SessionClaims struct {
	UserName string `json:"user_name"`
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

func GenerateToken(secret, userName, deviceID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserName: userName,
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiryLogin)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(secret, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserName == "" || claims.DeviceID == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
