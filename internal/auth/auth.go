// Package auth issues and verifies the auth_token session cookie. The
// token is a signed HS256 JWT rather than an opaque string, so the check
// endpoint can verify authenticity instead of mere cookie presence.
package auth

import (
	"encoding/base64"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "auth_token"
	TokenTTL   = 24 * time.Hour
)

type Service struct{ hmac []byte }

func NewService(secret string) *Service { return &Service{hmac: []byte(secret)} }

type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // "student" or "admin"
	jwt.RegisteredClaims
}

func (s *Service) Issue(userID, name, email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Name:  name,
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "alphaquiz",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.hmac)
}

func (s *Service) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.hmac, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	c, _ := token.Claims.(*Claims)
	return c, nil
}

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// ValidEmail applies the same loose shape check the login form does.
func ValidEmail(email string) bool { return emailRe.MatchString(email) }

// UserID derives the stable user id from an email: base64 of the
// lowercased address, non-alphanumerics stripped, first 16 chars. The same
// email always maps to the same id, which is what makes cross-device
// progress sync work.
func UserID(email string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(strings.ToLower(strings.TrimSpace(email))))
	enc = nonAlnumRe.ReplaceAllString(enc, "")
	if len(enc) > 16 {
		enc = enc[:16]
	}
	return enc
}
