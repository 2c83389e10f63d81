package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Actor identifies the authenticated caller. Tokens themselves are
// issued by the hosted auth provider; this service only verifies the
// shared-secret signature and reads claims.
type Actor struct {
	UserID  string
	IsAdmin bool
}

type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	ActorFromContext(ctx context.Context) (Actor, error)
	GenerateEventToken(userID string) (token string, expiresIn int, err error)
	ValidateEventToken(tokenString string) (userID string, err error)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// ActorFromContext reads the verified claims placed on the request
// context by the jwtauth verifier.
func (j *JWTService) ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	isAdmin, _ := claims["is_admin"].(bool)

	return Actor{UserID: userID, IsAdmin: isAdmin}, nil
}

// GenerateEventToken generates a short-lived token for SSE connections,
// which cannot carry an Authorization header.
func (j *JWTService) GenerateEventToken(userID string) (token string, expiresIn int, err error) {
	expiresIn = 300
	expiresAt := time.Now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    "events",
		"exp":     expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateEventToken validates an event-stream token and returns the
// user ID it was minted for.
func (j *JWTService) ValidateEventToken(tokenString string) (userID string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "events" {
		return "", jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	userID, ok = userIDVal.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	return userID, nil
}
