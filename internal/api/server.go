package api

import (
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/pmi-competition/portal-api/docs"
	v1 "github.com/pmi-competition/portal-api/internal/api/handler/v1"
	"github.com/pmi-competition/portal-api/internal/api/middleware"
	"github.com/pmi-competition/portal-api/internal/config"
	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/payment"
	"github.com/pmi-competition/portal-api/internal/repository"
	"github.com/pmi-competition/portal-api/internal/repository/dao"
	"github.com/pmi-competition/portal-api/internal/service"
)

const paymentFinishPath = "/payment/success"

type Server struct {
	Config  *config.AppConfig
	Router  *gin.Engine
	catalog *domain.Catalog
}

// NewServer wires every handler on top of db. exporter may be nil when the
// spreadsheet export is not configured.
func NewServer(conf *config.AppConfig, db *gorm.DB, gateway payment.Gateway, exporter service.Exporter) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:  conf,
		Router:  engine,
		catalog: conf.Competition.Catalog(),
	}

	s.MountMiddlewares()

	s.MountHandlers(handlers{
		auth:    s.initAuthHandler(db),
		user:    s.initUserHandler(db),
		team:    s.initTeamHandler(db),
		payment: s.initPaymentHandler(db, gateway),
		score:   s.initScoreHandler(db),
		ranking: s.initRankingHandler(db, exporter),
	})

	return s
}

type handlers struct {
	auth    *v1.AuthHandler
	user    *v1.UserHandler
	team    *v1.TeamHandler
	payment *v1.PaymentHandler
	score   *v1.ScoreHandler
	ranking *v1.RankingHandler
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo, s.Config.API.AdminEmails)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initTeamHandler(db *gorm.DB) *v1.TeamHandler {
	repo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	svc := service.NewTeamService(repo, s.catalog)
	uSvc := s.newUserService(db)
	handler := v1.NewTeamHandler(svc, uSvc)

	return handler
}

func (s *Server) initPaymentHandler(db *gorm.DB, gateway payment.Gateway) *v1.PaymentHandler {
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	txRepo := repository.NewTransactionRepository(dao.NewTransactionDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	finishURL := strings.TrimRight(s.Config.API.PublicURL, "/") + paymentFinishPath
	svc := service.NewPaymentService(teamRepo, txRepo, userRepo, gateway, s.catalog, finishURL)
	handler := v1.NewPaymentHandler(svc, s.newUserService(db))

	return handler
}

func (s *Server) initScoreHandler(db *gorm.DB) *v1.ScoreHandler {
	scoreRepo := repository.NewScoreRepository(dao.NewScoreDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	svc := service.NewScoreService(scoreRepo, teamRepo, s.catalog)
	handler := v1.NewScoreHandler(svc, s.newUserService(db))

	return handler
}

func (s *Server) initRankingHandler(db *gorm.DB, exporter service.Exporter) *v1.RankingHandler {
	scoreRepo := repository.NewScoreRepository(dao.NewScoreDAO(db))
	rankingRepo := repository.NewRankingRepository(dao.NewRankingDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	svc := service.NewRankingService(scoreRepo, rankingRepo)
	exportSvc := service.NewExportService(rankingRepo, teamRepo, exporter, s.catalog)
	handler := v1.NewRankingHandler(svc, exportSvc, s.catalog)

	return handler
}

func (s *Server) newUserService(db *gorm.DB) *service.UserService {
	return service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", h.auth.HandleSignup)
		public.POST("/auth/login", h.auth.HandleLogin)
		public.GET("/competitions", h.team.HandleGetCompetitions)
		public.GET("/rankings/competitions/:eventID", h.ranking.HandleGetCompetitionRanking)
		public.GET("/rankings/overall", h.ranking.HandleGetOverallRanking)
	}

	webhooks := s.Router.Group(basePath + "/webhooks")
	{
		webhooks.POST("/midtrans", h.payment.HandleMidtransNotification)
		webhooks.GET("/midtrans", h.payment.HandleMidtransPing)
		webhooks.Any("/scores", h.score.HandleScoreWebhook)
	}

	users := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		users.GET("/users/me", h.user.HandleGetMe)
		users.POST("/teams", h.team.HandleRegisterTeam)
		users.GET("/teams", h.team.HandleGetMyTeams)
		users.POST("/payments", h.payment.HandleCreatePayment)
		users.GET("/payments/:orderID/status", h.payment.HandleGetPaymentStatus)
	}

	admin := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT(), middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/teams", h.team.HandleGetAllTeams)
		admin.POST("/scores", h.score.HandleCreateScore)
		admin.GET("/scores", h.score.HandleGetScores)
		admin.POST("/scores/:scoreID/approve", h.score.HandleApproveScore)
		admin.POST("/rankings/recalculate", h.ranking.HandleRecalculateRankings)
		admin.POST("/rankings/export", h.ranking.HandleExportRankings)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "PMI Competition Portal API"
	docs.SwaggerInfo.Description = "Registration, payment and leaderboard API for PMI school competitions."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
