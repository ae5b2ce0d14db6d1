package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/reddrop/reddrop-api/docs"
	v1 "github.com/reddrop/reddrop-api/internal/api/handler/v1"
	"github.com/reddrop/reddrop-api/internal/api/middleware"
	"github.com/reddrop/reddrop-api/internal/config"
	"github.com/reddrop/reddrop-api/internal/repository"
	"github.com/reddrop/reddrop-api/internal/repository/dao"
	"github.com/reddrop/reddrop-api/internal/service"
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

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	campHandler, registrationHandler := s.initCampHandlers(db)
	s.MountHandlers(authHandler, userHandler, campHandler, registrationHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db), dao.NewDonorDAO(db))
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db), dao.NewDonorDAO(db))
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initCampHandlers(db *gorm.DB) (*v1.CampHandler, *v1.RegistrationHandler) {
	repo := repository.NewCampRepository(dao.NewCampDAO(db), dao.NewRegistrationDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db), dao.NewDonorDAO(db))
	svc := service.NewCampService(repo, userRepo)

	return v1.NewCampHandler(svc), v1.NewRegistrationHandler(svc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, campHandler *v1.CampHandler, registrationHandler *v1.RegistrationHandler) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)

		// Browsing camps needs no session. Static segments (nearby) must
		// be registered alongside :campID in the same tree; gin resolves
		// static routes before the wildcard.
		public.GET("/camps", campHandler.HandleListCamps)
		public.GET("/camps/nearby", campHandler.HandleFindNearbyCamps)
		public.GET("/camps/:campID", campHandler.HandleGetCamp)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/:userID", userHandler.HandleGetUser)

		authed.GET("/donors/me", userHandler.HandleGetMyDonorProfile)
		authed.POST("/donors/me", userHandler.HandleCreateDonorProfile)
		authed.PUT("/donors/me", userHandler.HandleUpdateDonorProfile)

		authed.POST("/camps", campHandler.HandleCreateCamp)
		authed.GET("/camps/mine", campHandler.HandleListMyCamps)
		authed.PUT("/camps/:campID", campHandler.HandleUpdateCamp)
		authed.DELETE("/camps/:campID", campHandler.HandleDeleteCamp)
		authed.PATCH("/camps/:campID/status", campHandler.HandleUpdateCampStatus)
		authed.GET("/camps/:campID/registrations", campHandler.HandleListCampRegistrations)
		authed.GET("/camps/:campID/statistics", campHandler.HandleGetCampStatistics)
		authed.POST("/camps/:campID/register", campHandler.HandleRegisterForCamp)

		authed.GET("/registrations/mine", registrationHandler.HandleListMyRegistrations)
		authed.POST("/registrations/:registrationID/cancel", registrationHandler.HandleCancelRegistration)
		authed.PATCH("/registrations/:registrationID/status", registrationHandler.HandleUpdateRegistrationStatus)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "RedDrop API"
	docs.SwaggerInfo.Description = "Blood donation camp coordination API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
