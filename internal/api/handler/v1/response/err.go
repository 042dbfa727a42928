package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	KindInvalidArgument  = "invalid-argument"
	KindUnauthenticated  = "unauthenticated"
	KindPermissionDenied = "permission-denied"
	KindNotFound         = "not-found"
	KindConflict         = "conflict"
	KindInternal         = "internal"
)

// Err is the body of every error response.
type Err struct {
	HTTPStatusCode int    `json:"-"`
	Kind           string `json:"kind"`
	Message        string `json:"message"`
	Details        string `json:"details,omitempty"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, err *Err) {
	ctx.AbortWithStatusJSON(err.HTTPStatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusBadRequest,
		Kind:           KindInvalidArgument,
		Message:        err.Error(),
	}
}

func ErrUnauthenticated(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		Kind:           KindUnauthenticated,
		Message:        err.Error(),
	}
}

func ErrWrongCredentials(_ error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		Kind:           KindUnauthenticated,
		Message:        "email or password is incorrect",
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusForbidden,
		Kind:           KindPermissionDenied,
		Message:        err.Error(),
	}
}

func ErrNotFound(kind, field string, value any) *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		Kind:           KindNotFound,
		Message:        fmt.Sprintf("%v with %v %v not found", kind, field, value),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusConflict,
		Kind:           KindConflict,
		Message:        err.Error(),
	}
}

// ErrInternalServerError logs err and hides it behind a generic message.
func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return &Err{
		HTTPStatusCode: http.StatusInternalServerError,
		Kind:           KindInternal,
		Message:        "internal server error",
		Details:        err.Error(),
	}
}
