package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"collegesphere/models"
)

var (
	secretKey   = []byte("supersecret")
	tokenExpiry = 3 * time.Hour
)

// ConfigureTokens overrides the signing secret and expiry; called once at
// startup before any token is issued.
func ConfigureTokens(secret string, expiry time.Duration) {
	secretKey = []byte(secret)
	tokenExpiry = expiry
}

// Claims snapshots the caller's identity at login time. isApproved is frozen
// into the token: an organizer approved after login keeps hitting the
// approval gate until they re-authenticate.
type Claims struct {
	UserID     int64       `json:"userId"`
	Role       models.Role `json:"role"`
	IsApproved bool        `json:"isApproved"`
	CollegeID  string      `json:"collegeId,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(u models.User) (string, error) {
	claims := Claims{
		UserID:     u.ID,
		Role:       u.Role,
		IsApproved: u.IsApproved,
		CollegeID:  u.CollegeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

func VerifyToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, errors.New("could not parse token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
