package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated pigeon account identity extracted from a token.
type Claims struct {
	AccountID string
}

// JWT provides methods to generate and validate JWT tokens.
type JWT struct {
	secretKey string
	exp       time.Duration
}

// Opt configures a JWT instance.
type Opt func(*JWT)

// WithSecretKey sets the signing secret.
func WithSecretKey(secret string) Opt {
	return func(j *JWT) { j.secretKey = secret }
}

// WithExpiration sets the token lifetime.
func WithExpiration(exp time.Duration) Opt {
	return func(j *JWT) { j.exp = exp }
}

// New creates a new JWT instance.
func New(opts ...Opt) *JWT {
	j := &JWT{exp: time.Hour}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Generate creates a signed token for a pigeon account id.
func (j *JWT) Generate(ctx context.Context, accountID string) (string, error) {
	claims := jwt.MapClaims{
		"account_id": accountID,
		"exp":        time.Now().Add(j.exp).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// GetClaims parses the token string and returns the claims if the token is valid.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	accountID, ok := claims["account_id"].(string)
	if !ok || accountID == "" {
		return nil, errors.New("account_id not found in token")
	}

	return &Claims{AccountID: accountID}, nil
}

// Validate checks that a token is well formed, signed by us, and not expired.
func (j *JWT) Validate(ctx context.Context, tokenString string) error {
	_, err := j.GetClaims(ctx, tokenString)
	return err
}

// GetTokenFromRequest extracts the bearer token from the Authorization header.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
