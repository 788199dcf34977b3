package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

var ErrInvalidToken = errors.New("invalid token")

// Identity is what the rest of the service knows about an authenticated caller.
type Identity struct {
	UserID uint
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// TokenManager validates HS256 access tokens. Tokens are issued elsewhere; Generate
// exists for tooling and tests that need a token signed with the same secret.
type TokenManager struct {
	accessSecret []byte
}

func NewTokenManager(accessSecret string) *TokenManager {
	return &TokenManager{accessSecret: []byte(accessSecret)}
}

func (m *TokenManager) Generate(id Identity, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(id.UserID), 10),
		"exp":  time.Now().Add(ttl).Unix(),
		"type": "access",
	}
	if id.Role != "" {
		claims["role"] = id.Role
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessSecret)
}

func (m *TokenManager) Validate(tokenStr string) (Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.accessSecret, nil
	}, jwt.WithExpirationRequired(), jwt.WithLeeway(30*time.Second))
	if err != nil {
		return Identity{}, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	if typ, _ := claims["type"].(string); typ != "" && typ != "access" {
		return Identity{}, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return Identity{}, ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	return Identity{UserID: uint(userID), Role: role}, nil
}
