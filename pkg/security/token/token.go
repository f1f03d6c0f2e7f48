// Package token issues and verifies the service's HS256 JWTs. Access and
// refresh tokens share the claim layout and differ only in the "type" claim
// and TTL; a refresh token is never accepted where an access token is
// required, and vice versa.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

// Tagged verification failures. Callers branch on these instead of parsing
// library errors.
var (
	ErrInvalid   = errors.New("invalid token")
	ErrExpired   = errors.New("token expired")
	ErrWrongType = errors.New("wrong token type")
)

// Claims includes the registered set plus the access/refresh discriminator.
type Claims struct {
	jwt.RegisteredClaims
	Type Type `json:"type"`
}

// UserID parses the subject claim back into a numeric user id.
func (c Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

type Manager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret, issuer string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (m *Manager) IssueAccess(userID int64) (string, Claims, error) {
	return m.issue(userID, TypeAccess, m.accessTTL)
}

func (m *Manager) IssueRefresh(userID int64) (string, Claims, error) {
	return m.issue(userID, TypeRefresh, m.refreshTTL)
}

func (m *Manager) issue(userID int64, typ Type, ttl time.Duration) (string, Claims, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Type: typ,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, claims, nil
}

// Verify parses and validates tok, requiring the given token type.
// Failures come back as ErrExpired, ErrWrongType or ErrInvalid; no leeway
// is applied to exp.
func (m *Manager) Verify(tok string, expected Type) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tok, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrInvalid
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalid
	}
	if m.issuer != "" && claims.Issuer != m.issuer {
		return Claims{}, ErrInvalid
	}
	if claims.Type != expected {
		return Claims{}, ErrWrongType
	}
	return *claims, nil
}
