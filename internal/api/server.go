package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/rankedpoll/rankedpoll-api/docs"
	v1 "github.com/rankedpoll/rankedpoll-api/internal/api/handler/v1"
	"github.com/rankedpoll/rankedpoll-api/internal/api/middleware"
	"github.com/rankedpoll/rankedpoll-api/internal/config"
	"github.com/rankedpoll/rankedpoll-api/internal/repository"
	"github.com/rankedpoll/rankedpoll-api/internal/repository/dao"
	"github.com/rankedpoll/rankedpoll-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	pollHandler := s.initPollHandler(db)
	ballotHandler := s.initBallotHandler(db)
	resultHandler := s.initResultHandler(db)
	s.MountHandlers(pollHandler, ballotHandler, resultHandler)

	return s
}

func (s *Server) initPollHandler(db *gorm.DB) *v1.PollHandler {
	repo := repository.NewPollRepository(dao.NewPollDAO(db))
	svc := service.NewPollService(repo)
	handler := v1.NewPollHandler(svc)

	return handler
}

func (s *Server) initBallotHandler(db *gorm.DB) *v1.BallotHandler {
	pollRepo := repository.NewPollRepository(dao.NewPollDAO(db))
	ballotRepo := repository.NewBallotRepository(dao.NewBallotDAO(db))
	svc := service.NewBallotService(pollRepo, ballotRepo, dao.NewTxManager(db))
	handler := v1.NewBallotHandler(svc)

	return handler
}

func (s *Server) initResultHandler(db *gorm.DB) *v1.ResultHandler {
	pollRepo := repository.NewPollRepository(dao.NewPollDAO(db))
	resultRepo := repository.NewResultRepository(dao.NewResultDAO(db))
	svc := service.NewPollResultService(pollRepo, resultRepo, dao.NewTxManager(db))
	pollSvc := service.NewPollService(pollRepo)
	handler := v1.NewResultHandler(svc, pollSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(pollHandler *v1.PollHandler, ballotHandler *v1.BallotHandler, resultHandler *v1.ResultHandler) {
	const basePath = "/api/v1"

	polls := s.Router.Group(basePath)
	{
		polls.GET("/polls/:pollID", pollHandler.HandleGetPoll)
		polls.POST("/polls/:pollID/ballots", ballotHandler.HandleCastBallot)
		polls.GET("/polls/:pollID/result", resultHandler.HandleGetResult)
		polls.POST("/polls/:pollID/result/recompute", resultHandler.HandleRecompute)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Ranked Poll API"
	docs.SwaggerInfo.Description = "Instant-runoff poll tallying API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
