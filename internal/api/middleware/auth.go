package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pmi-competition/portal-api/internal/api/handler/v1/response"
	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/pkg/jwthelper"
)

const (
	ContextKeyUserID = "userID"
	ContextKeyRole   = "userRole"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errMissingRole  = errors.New("missing role information")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token and stores the
// caller's id and role in the gin context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			response.RenderErr(ctx, response.ErrUnauthenticated(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, strings.TrimSpace(tokenString), ctx.Request.UserAgent())
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthenticated(err))
			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Set(ContextKeyRole, claims.Role)
		ctx.Next()
	}
}

// RequireRole lets through only callers whose token carries one of roles.
// It must run after VerifyJWT.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := ctx.GetString(ContextKeyRole)
		if role == "" {
			response.RenderErr(ctx, response.ErrUnauthenticated(errMissingRole))
			return
		}

		for _, r := range roles {
			if domain.Role(role) == r {
				ctx.Next()
				return
			}
		}

		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("role %s may not access this resource", role)))
	}
}
