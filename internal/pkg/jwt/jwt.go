package jwt

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// sseTokenTTL bounds how long a query-string token can open a stream
const sseTokenTTL = 5 * time.Minute

type Service interface {
	GenerateAccessToken(subject string, role auth.Role) (token string, expiresAt int64, err error)
	GenerateSSEToken(subject string, role auth.Role) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (auth.Principal, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	exp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenExpirationTime: exp,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}

// GenerateAccessToken mints a bearer token for a device or an operator
func (j *JWTService) GenerateAccessToken(subject string, role auth.Role) (token string, expiresAt int64, err error) {
	if strings.TrimSpace(subject) == "" {
		return "", 0, auth.ErrSubjectRequired
	}
	if _, ok := auth.ParseRole(string(role)); !ok {
		return "", 0, auth.ErrInvalidRole
	}

	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()
	_, token, err = j.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"role": string(role),
		"type": string(auth.TokenTypeAccess),
		"exp":  expiresAt,
	})
	return token, expiresAt, err
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(subject string, role auth.Role) (token string, expiresIn int, err error) {
	expiresAt := time.Now().Add(sseTokenTTL).Unix()

	_, token, err = j.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"role": string(role),
		"type": string(auth.TokenTypeSSE),
		"exp":  expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return token, int(sseTokenTTL.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns its principal
func (j *JWTService) ValidateSSEToken(tokenString string) (auth.Principal, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != string(auth.TokenTypeSSE) {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	return principalOf(token.Subject(), token)
}

func principalOf(subject string, token jwt.Token) (auth.Principal, error) {
	if subject == "" {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	roleVal, ok := token.Get("role")
	if !ok {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	roleStr, _ := roleVal.(string)
	role, ok := auth.ParseRole(roleStr)
	if !ok {
		return auth.Principal{}, auth.ErrInvalidRole
	}
	return auth.Principal{Subject: subject, Role: role}, nil
}

// PrincipalFromClaims reads the principal of a verified access token
func PrincipalFromClaims(claims map[string]interface{}) (auth.Principal, error) {
	tokenType, _ := claims["type"].(string)
	if tokenType != string(auth.TokenTypeAccess) {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	roleStr, _ := claims["role"].(string)
	role, ok := auth.ParseRole(roleStr)
	if !ok {
		return auth.Principal{}, auth.ErrInvalidRole
	}
	return auth.Principal{Subject: subject, Role: role}, nil
}
