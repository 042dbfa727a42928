package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/pmi-competition/portal-api/internal/api/handler/v1/response"
	"github.com/pmi-competition/portal-api/internal/api/middleware"
	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/service"
)

var errMissingUserID = errors.New("missing user id in context")

type UserService interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
}

// getUserFromContext loads the account behind the token verified by
// middleware.VerifyJWT.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	userID := ctx.GetString(middleware.ContextKeyUserID)
	if userID == "" {
		return domain.User{}, response.ErrUnauthenticated(errMissingUserID)
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthenticated(fmt.Errorf("user %s no longer exists", userID))
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("getUserFromContext -> uSvc.GetUser -> %w", err))
	}

	return user, nil
}
