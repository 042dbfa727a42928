package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmi-competition/portal-api/internal/api/handler/v1/response"
	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/service"
)

type RankingService interface {
	CompetitionRanking(ctx context.Context, eventID string) (domain.CompetitionRanking, error)
	RecalculateOverall(ctx context.Context) ([]domain.OverallRanking, error)
	ListOverall(ctx context.Context) ([]domain.OverallRanking, error)
}

type ExportService interface {
	Export(ctx context.Context) (service.ExportSummary, error)
}

type RankingHandler struct {
	svc     RankingService
	export  ExportService
	catalog *domain.Catalog
}

func NewRankingHandler(svc RankingService, export ExportService, catalog *domain.Catalog) *RankingHandler {
	return &RankingHandler{
		svc:     svc,
		export:  export,
		catalog: catalog,
	}
}

// HandleGetCompetitionRanking godoc
// @Summary      Leaderboard of one competition
// @Tags         rankings
// @Produce      json
// @Param        eventID  path      string  true  "competition id"
// @Success      200      {object}  domain.CompetitionRanking
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /rankings/competitions/{eventID} [get]
func (h *RankingHandler) HandleGetCompetitionRanking(ctx *gin.Context) {
	eventID := ctx.Param("eventID")
	if _, ok := h.catalog.Event(eventID); !ok {
		response.RenderErr(ctx, response.ErrNotFound("competition", "id", eventID))
		return
	}

	ranking, err := h.svc.CompetitionRanking(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCompetitionRanking -> h.svc.CompetitionRanking -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, ranking)
}

// HandleGetOverallRanking godoc
// @Summary      School leaderboard
// @Description  Returns the rollup stored by the last recalculation.
// @Tags         rankings
// @Produce      json
// @Success      200  {array}   domain.OverallRanking
// @Failure      500  {object}  response.Err
// @Router       /rankings/overall [get]
func (h *RankingHandler) HandleGetOverallRanking(ctx *gin.Context) {
	rankings, err := h.svc.ListOverall(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetOverallRanking -> h.svc.ListOverall -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, rankings)
}

// HandleRecalculateRankings godoc
// @Summary      Recompute and store the school leaderboard
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.OverallRanking
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/rankings/recalculate [post]
// @Security BearerAuth
func (h *RankingHandler) HandleRecalculateRankings(ctx *gin.Context) {
	rankings, err := h.svc.RecalculateOverall(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleRecalculateRankings -> h.svc.RecalculateOverall -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, rankings)
}

// HandleExportRankings godoc
// @Summary      Export the leaderboard and team list to the spreadsheet
// @Tags         admin
// @Produce      json
// @Success      200  {object}  service.ExportSummary
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/rankings/export [post]
// @Security BearerAuth
func (h *RankingHandler) HandleExportRankings(ctx *gin.Context) {
	summary, err := h.export.Export(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrExportDisabled) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandleExportRankings -> h.export.Export -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
