package services

import (
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService gates the admin surface behind a single shared password. This
// is presentation-tier gating, not a security boundary.
type AuthService struct {
	passwordHash []byte
	jwtSecret    string
}

func NewAuthService(adminPassword, jwtSecret string) *AuthService {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	return &AuthService{
		passwordHash: hash,
		jwtSecret:    jwtSecret,
	}
}

// Login compares the submitted password against the configured one and, on a
// match, issues a signed admin token. A mismatch yields ("", false).
func (s *AuthService) Login(password string) (string, bool) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", false
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		log.Printf("Failed to sign admin token: %v", err)
		return "", false
	}
	return signed, true
}

// ValidateToken parses and verifies an admin token.
func ValidateToken(tokenString, jwtSecret string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
