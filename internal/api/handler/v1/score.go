package v1

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pmi-competition/portal-api/internal/api/handler/v1/request"
	"github.com/pmi-competition/portal-api/internal/api/handler/v1/response"
	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/scoring"
	"github.com/pmi-competition/portal-api/internal/service"
)

type ScoreService interface {
	RecordManual(ctx context.Context, admin domain.User, teamID string, values scoring.Values, notes string) (domain.TeamScore, error)
	Ingest(ctx context.Context, in service.IngestScore) (domain.TeamScore, error)
	Approve(ctx context.Context, id string) (domain.TeamScore, error)
	List(ctx context.Context, eventID string, status domain.ScoreStatus) ([]domain.TeamScore, error)
}

type ScoreHandler struct {
	svc  ScoreService
	uSvc UserService
}

func NewScoreHandler(svc ScoreService, uSvc UserService) *ScoreHandler {
	return &ScoreHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleScoreWebhook godoc
// @Summary      Ingest a score sheet from an external source
// @Description  The score waits for admin approval before it counts in any ranking.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        request  body      request.IngestScoreRequest  true  "score sheet"
// @Success      200      {object}  response.ScoreIngestResult
// @Failure      400      {object}  response.ScoreIngestResult
// @Failure      404      {object}  response.ScoreIngestResult
// @Failure      405      {object}  response.ScoreIngestResult
// @Failure      500      {object}  response.ScoreIngestResult
// @Router       /webhooks/scores [post]
func (h *ScoreHandler) HandleScoreWebhook(ctx *gin.Context) {
	if ctx.Request.Method != http.MethodPost {
		ctx.JSON(http.StatusMethodNotAllowed, response.ScoreIngestResult{Error: "Method not allowed"})
		return
	}

	var req request.IngestScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.TeamID == "" || len(req.Scores) == 0 {
		ctx.JSON(http.StatusBadRequest, response.ScoreIngestResult{Error: "teamId and scores are required"})
		return
	}
	if err := req.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, response.ScoreIngestResult{Error: err.Error()})
		return
	}

	score, err := h.svc.Ingest(ctx.Request.Context(), service.IngestScore{
		TeamID:        req.TeamID,
		Scores:        req.Scores,
		ScoredBy:      req.ScoredBy,
		ScoredByName:  req.ScoredByName,
		AttachmentURL: req.AttachmentURL,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			ctx.JSON(http.StatusNotFound, response.ScoreIngestResult{Error: "Team not found"})
		case errors.Is(err, service.ErrEmptyScores):
			ctx.JSON(http.StatusBadRequest, response.ScoreIngestResult{Error: "teamId and scores are required"})
		default:
			zap.L().Error("score ingestion failed", zap.String("team_id", req.TeamID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, response.ScoreIngestResult{Error: "Failed to save score"})
		}
		return
	}

	total := math.Round(score.TotalScore*100) / 100
	ctx.JSON(http.StatusOK, response.ScoreIngestResult{
		Success:    true,
		ScoreID:    score.ID,
		TotalScore: &total,
		Message:    "Score saved successfully, pending admin approval",
	})
}

// HandleCreateScore godoc
// @Summary      Enter a judge's score sheet
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateScoreRequest  true  "score sheet"
// @Success      201      {object}  domain.TeamScore
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/scores [post]
// @Security BearerAuth
func (h *ScoreHandler) HandleCreateScore(ctx *gin.Context) {
	admin, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	score, err := h.svc.RecordManual(ctx.Request.Context(), admin, req.TeamID, req.Scores, req.Notes)
	if err != nil {
		var validationErr *service.ScoreValidationError
		switch {
		case errors.As(err, &validationErr):
			response.RenderErr(ctx, response.ErrBadRequest(validationErr))
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "id", req.TeamID))
		default:
			err = fmt.Errorf("v1.HandleCreateScore -> h.svc.RecordManual -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, score)
}

// HandleGetScores godoc
// @Summary      List score sheets
// @Tags         admin
// @Produce      json
// @Param        competitionId  query     string  false  "competition id"
// @Param        status         query     string  false  "DRAFT, PENDING_APPROVAL or FINAL"
// @Success      200            {array}   domain.TeamScore
// @Failure      400            {object}  response.Err
// @Failure      401            {object}  response.Err
// @Failure      403            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /admin/scores [get]
// @Security BearerAuth
func (h *ScoreHandler) HandleGetScores(ctx *gin.Context) {
	status := domain.ScoreStatus(ctx.Query("status"))
	if status != "" && !status.IsValid() {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown score status %q", status)))
		return
	}

	scores, err := h.svc.List(ctx.Request.Context(), ctx.Query("competitionId"), status)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetScores -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, scores)
}

// HandleApproveScore godoc
// @Summary      Approve a pending score sheet
// @Tags         admin
// @Produce      json
// @Param        scoreID  path      string  true  "score id"
// @Success      200      {object}  domain.TeamScore
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/scores/{scoreID}/approve [post]
// @Security BearerAuth
func (h *ScoreHandler) HandleApproveScore(ctx *gin.Context) {
	scoreID := ctx.Param("scoreID")

	score, err := h.svc.Approve(ctx.Request.Context(), scoreID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScoreNotFound):
			response.RenderErr(ctx, response.ErrNotFound("score", "id", scoreID))
		case errors.Is(err, service.ErrScoreNotPending):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleApproveScore -> h.svc.Approve -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, score)
}
