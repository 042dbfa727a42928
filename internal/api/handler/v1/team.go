package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmi-competition/portal-api/internal/api/handler/v1/request"
	"github.com/pmi-competition/portal-api/internal/api/handler/v1/response"
	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/service"
)

type TeamService interface {
	Competitions() []domain.Event
	Register(ctx context.Context, user domain.User, eventID, name string, members []domain.Member) (domain.Team, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Team, error)
	List(ctx context.Context, eventID string, status domain.PaymentStatus) ([]domain.Team, error)
}

type TeamHandler struct {
	svc  TeamService
	uSvc UserService
}

func NewTeamHandler(svc TeamService, uSvc UserService) *TeamHandler {
	return &TeamHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetCompetitions godoc
// @Summary      List the competitions open for registration
// @Tags         competitions
// @Produce      json
// @Success      200  {array}   domain.Event
// @Router       /competitions [get]
func (h *TeamHandler) HandleGetCompetitions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.svc.Competitions())
}

// HandleRegisterTeam godoc
// @Summary      Register a team
// @Description  Registers a team of the caller's school. The competition fee is fixed at registration.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterTeamRequest  true  "team"
// @Success      201      {object}  domain.Team
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /teams [post]
// @Security BearerAuth
func (h *TeamHandler) HandleRegisterTeam(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RegisterTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	members := make([]domain.Member, 0, len(req.Members))
	for _, m := range req.Members {
		members = append(members, domain.Member{Name: m.Name, Class: m.Class, NISN: m.NISN})
	}

	team, err := h.svc.Register(ctx.Request.Context(), user, req.CompetitionID, req.TeamName, members)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSchoolOnly):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrUnknownEvent), errors.Is(err, service.ErrInvalidMemberCount):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRegisterTeam -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, team)
}

// HandleGetMyTeams godoc
// @Summary      List the caller's teams
// @Tags         teams
// @Produce      json
// @Success      200  {array}   domain.Team
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /teams [get]
// @Security BearerAuth
func (h *TeamHandler) HandleGetMyTeams(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	teams, err := h.svc.ListByUser(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyTeams -> h.svc.ListByUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, teams)
}

// HandleGetAllTeams godoc
// @Summary      List every registered team
// @Tags         admin
// @Produce      json
// @Param        competitionId  query     string  false  "competition id"
// @Param        paymentStatus  query     string  false  "PENDING, PAID, FAILED or EXPIRED"
// @Success      200            {array}   domain.Team
// @Failure      400            {object}  response.Err
// @Failure      401            {object}  response.Err
// @Failure      403            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /admin/teams [get]
// @Security BearerAuth
func (h *TeamHandler) HandleGetAllTeams(ctx *gin.Context) {
	status := domain.PaymentStatus(ctx.Query("paymentStatus"))
	switch status {
	case "", domain.PaymentPending, domain.PaymentPaid, domain.PaymentFailed, domain.PaymentExpired:
	default:
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown payment status %q", status)))
		return
	}

	teams, err := h.svc.List(ctx.Request.Context(), ctx.Query("competitionId"), status)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEvent) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetAllTeams -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, teams)
}
