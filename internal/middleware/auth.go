package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "wealthtracker/internal/errors"
	"wealthtracker/internal/uuid"
)

const (
	// SupabaseAudience is the aud claim carried by signed-in users' access tokens.
	SupabaseAudience = "authenticated"

	// accessTokenQueryParam carries the token for clients that cannot set
	// headers, such as browser WebSocket connections.
	accessTokenQueryParam = "access_token"
)

// SupabaseClaims represents the claims in a Supabase access token.
type SupabaseClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ParseAccessToken validates a Supabase access token signed with secret and
// returns its claims. The subject must be a UUID.
func ParseAccessToken(tokenString, secret string) (*SupabaseClaims, error) {
	claims := &SupabaseClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(SupabaseAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}
	if !uuid.IsValid(claims.Subject) {
		return nil, fmt.Errorf("invalid subject %q", claims.Subject)
	}
	return claims, nil
}

// AuthMiddleware verifies the Supabase access token and sets the user in the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}

		claims, err := ParseAccessToken(tokenString, secret)
		if err != nil {
			abortWithError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set("userID", claims.Subject)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// bearerToken reads the token from the Authorization header, falling back
// to the access_token query parameter.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token := c.Query(accessTokenQueryParam)
		return token, token != ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
