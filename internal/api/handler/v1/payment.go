package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pmi-competition/portal-api/internal/api/handler/v1/request"
	"github.com/pmi-competition/portal-api/internal/api/handler/v1/response"
	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/payment"
	"github.com/pmi-competition/portal-api/internal/service"
)

type PaymentService interface {
	CreateTransaction(ctx context.Context, userID string, teamIDs []string) (domain.Checkout, error)
	CheckStatus(ctx context.Context, user domain.User, orderID string) (domain.PaymentSnapshot, error)
	HandleNotification(ctx context.Context, n payment.Notification) (domain.Transaction, error)
}

type PaymentHandler struct {
	svc  PaymentService
	uSvc UserService
}

func NewPaymentHandler(svc PaymentService, uSvc UserService) *PaymentHandler {
	return &PaymentHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreatePayment godoc
// @Summary      Open a checkout for unpaid teams
// @Description  Teams that are not the caller's or are already paid are left out of the order.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreatePaymentRequest  true  "teams to pay for"
// @Success      201      {object}  domain.Checkout
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /payments [post]
// @Security BearerAuth
func (h *PaymentHandler) HandleCreatePayment(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	checkout, err := h.svc.CreateTransaction(ctx.Request.Context(), user.ID, req.TeamIDs)
	if err != nil {
		if errors.Is(err, service.ErrNoEligibleTeams) {
			response.RenderErr(ctx, response.ErrNotFound("payable team", "ids", req.TeamIDs))
			return
		}

		err = fmt.Errorf("v1.HandleCreatePayment -> h.svc.CreateTransaction -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, checkout)
}

// HandleGetPaymentStatus godoc
// @Summary      Ask the gateway for the current state of an order
// @Tags         payments
// @Produce      json
// @Param        orderID  path      string  true  "order id"
// @Success      200      {object}  domain.PaymentSnapshot
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /payments/{orderID}/status [get]
// @Security BearerAuth
func (h *PaymentHandler) HandleGetPaymentStatus(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	orderID := ctx.Param("orderID")
	snapshot, err := h.svc.CheckStatus(ctx.Request.Context(), user, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTransactionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("transaction", "orderID", orderID))
		case errors.Is(err, service.ErrNotOrderOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleGetPaymentStatus -> h.svc.CheckStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, snapshot)
}

// HandleMidtransNotification godoc
// @Summary      Payment gateway notification
// @Description  Accepts JSON or form encoded notifications. Replays are harmless.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.WebhookResult
// @Failure      400  {object}  response.WebhookResult
// @Failure      403  {object}  response.WebhookResult
// @Failure      404  {object}  response.WebhookResult
// @Failure      500  {object}  response.WebhookResult
// @Router       /webhooks/midtrans [post]
func (h *PaymentHandler) HandleMidtransNotification(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.WebhookResult{Error: "Unreadable notification body"})
		return
	}

	n, err := payment.ParseNotification(body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.WebhookResult{Error: err.Error()})
		return
	}

	zap.L().Info("payment notification received",
		zap.String("order_id", n.OrderID),
		zap.String("transaction_status", n.TransactionStatus),
		zap.String("fraud_status", n.FraudStatus))

	if _, err = h.svc.HandleNotification(ctx.Request.Context(), n); err != nil {
		switch {
		case errors.Is(err, service.ErrTransactionNotFound):
			zap.L().Warn("notification for unknown order", zap.String("order_id", n.OrderID))
			ctx.JSON(http.StatusNotFound, response.WebhookResult{Error: "Transaction not found"})
		case errors.Is(err, service.ErrInvalidSignature):
			zap.L().Warn("notification with invalid signature", zap.String("order_id", n.OrderID))
			ctx.JSON(http.StatusForbidden, response.WebhookResult{Error: "Invalid signature"})
		default:
			zap.L().Error("payment notification failed", zap.String("order_id", n.OrderID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, response.WebhookResult{Error: "Failed to process notification"})
		}
		return
	}

	ctx.JSON(http.StatusOK, response.WebhookResult{
		Success: true,
		Message: "Notification processed successfully",
	})
}

// HandleMidtransPing godoc
// @Summary      Payment gateway URL check
// @Tags         webhooks
// @Produce      json
// @Success      200  {object}  response.WebhookResult
// @Router       /webhooks/midtrans [get]
func (h *PaymentHandler) HandleMidtransPing(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.WebhookResult{Success: true, Message: "ok"})
}
