package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añade AccessLevel para que el middleware de autorización pueda tomar
// decisiones sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	AccessLevel string `json:"access_level"` // "admin" | "user" | "guest"
}

// Generate genera un token JWT firmado (HS256) que incluye userID, email y accessLevel.
func Generate(secret, userID, email, accessLevel, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:      userID,
		Email:       email,
		AccessLevel: accessLevel,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve userID, email y accessLevel.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (userID, email, accessLevel string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwt: método de firma inesperado %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", "", fmt.Errorf("jwt: parse: %w", err)
	}
	if !token.Valid {
		return "", "", "", fmt.Errorf("jwt: token inválido")
	}
	return claims.UserID, claims.Email, claims.AccessLevel, nil
}
