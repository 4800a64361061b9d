package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lexio-dev/lexio/db"
	"github.com/lexio-dev/lexio/internal/auth"
	"github.com/lexio-dev/lexio/internal/models"
	"github.com/lexio-dev/lexio/internal/types"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

func bearerToken(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

func resolveUser(ctx *gin.Context, tokens *auth.TokenService, tokenString string) bool {
	subject, err := tokens.Verify(tokenString)

	if err != nil {
		types.Error(ctx, http.StatusUnauthorized, types.CodeInvalidToken, "Invalid or expired token")
		ctx.Abort()
		return false
	}

	var user models.User

	if err := db.DB.Where("username = ?", subject).First(&user).Error; err != nil {
		types.Error(ctx, http.StatusUnauthorized, types.CodeInvalidToken, "User not found")
		ctx.Abort()
		return false
	}

	authenticated := AuthenticatedUser{ID: user.ID, Username: user.Username}

	if user.Email != nil {
		authenticated.Email = *user.Email
	}

	ctx.Set(types.ContextUserKey, authenticated)
	return true
}

// RequireAuth rejects requests without a valid bearer token. In auth-disabled
// mode no identity can be established, so every request is rejected; the
// endpoints behind this middleware are only reachable with auth configured.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if tokens.Mode() == auth.ModeDisabled {
			types.Error(ctx, http.StatusUnauthorized, types.CodeUnauthorized, "Authentication is not configured")
			ctx.Abort()
			return
		}

		tokenString, ok := bearerToken(ctx)

		if !ok {
			types.Error(ctx, http.StatusUnauthorized, types.CodeUnauthorized, "Authorization header format must be Bearer {token}")
			ctx.Abort()
			return
		}

		if !resolveUser(ctx, tokens, tokenString) {
			return
		}

		ctx.Next()
	}
}

// OptionalAuth establishes an identity when a bearer token is supplied and
// auth is enabled. Requests without a token pass through anonymously; a
// token that is present but invalid is still rejected. In auth-disabled
// mode tokens are ignored entirely.
func OptionalAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if tokens.Mode() == auth.ModeDisabled {
			ctx.Next()
			return
		}

		tokenString, ok := bearerToken(ctx)

		if !ok {
			ctx.Next()
			return
		}

		if !resolveUser(ctx, tokens, tokenString) {
			return
		}

		ctx.Next()
	}
}

// CurrentUser returns the authenticated user stashed by the middleware,
// or false for anonymous requests.
func CurrentUser(ctx *gin.Context) (AuthenticatedUser, bool) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return AuthenticatedUser{}, false
	}

	user, ok := value.(AuthenticatedUser)

	if !ok {
		return AuthenticatedUser{}, false
	}

	return user, ok
}
