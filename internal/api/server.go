package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/dancecash/dancecash-api/docs"
	v1 "github.com/dancecash/dancecash-api/internal/api/handler/v1"
	"github.com/dancecash/dancecash-api/internal/api/middleware"
	"github.com/dancecash/dancecash-api/internal/config"
	"github.com/dancecash/dancecash-api/internal/email"
	"github.com/dancecash/dancecash-api/internal/repository"
	"github.com/dancecash/dancecash-api/internal/repository/dao"
	"github.com/dancecash/dancecash-api/internal/service"
	"github.com/dancecash/dancecash-api/internal/wallet"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	// One rate service so the payment flow and the rate endpoint share
	// the same cache.
	rateSvc := service.NewRateService(conf.Rates)

	authHandler := s.initAuthHandler(db)
	eventHandler, artistHandler, siteHandler := s.initEventHandlers(db)
	studioHandler := s.initStudioHandler(db)
	signupHandler := s.initSignupHandler(db)
	paymentHandler, err := s.initPaymentHandler(db, rateSvc)
	if err != nil {
		return nil, fmt.Errorf("api.NewServer -> %w", err)
	}

	s.MountHandlers(authHandler, studioHandler, eventHandler, artistHandler, signupHandler, paymentHandler, siteHandler)

	return s, nil
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	studioDAO := dao.NewStudioDAO(db)
	repo := repository.NewStudioRepository(studioDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initStudioHandler(db *gorm.DB) *v1.StudioHandler {
	studioDAO := dao.NewStudioDAO(db)
	repo := repository.NewStudioRepository(studioDAO)
	svc := service.NewStudioService(repo)
	eventSvc := service.NewEventService(repository.NewEventRepository(dao.NewEventDAO(db)))
	handler := v1.NewStudioHandler(svc, eventSvc)

	return handler
}

func (s *Server) initEventHandlers(db *gorm.DB) (*v1.EventHandler, *v1.ArtistHandler, *v1.SiteHandler) {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)
	svc := service.NewEventService(repo)

	return v1.NewEventHandler(svc), v1.NewArtistHandler(svc), v1.NewSiteHandler(s.Config.API, svc)
}

func (s *Server) initSignupHandler(db *gorm.DB) *v1.SignupHandler {
	signupRepo := repository.NewSignupRepository(dao.NewSignupDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	addrRepo := repository.NewPaymentAddressRepository(dao.NewPaymentAddressDAO(db))
	svc := service.NewSignupService(signupRepo, eventRepo, addrRepo)
	handler := v1.NewSignupHandler(svc)

	return handler
}

func (s *Server) initPaymentHandler(db *gorm.DB, rateSvc *service.RateService) (*v1.PaymentHandler, error) {
	keys, err := wallet.NewKeyRing(s.Config.BCH.MasterKey, s.Config.BCH.Network)
	if err != nil {
		return nil, fmt.Errorf("wallet.NewKeyRing -> %w", err)
	}

	walletClient := wallet.NewClient(s.Config.BCH.RestURL, s.Config.BCH.Network)
	mailer := email.NewMailer(s.Config.Email, s.Config.BCH.Network)

	addrRepo := repository.NewPaymentAddressRepository(dao.NewPaymentAddressDAO(db))
	signupRepo := repository.NewSignupRepository(dao.NewSignupDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	studioRepo := repository.NewStudioRepository(dao.NewStudioDAO(db))

	svc := service.NewPaymentService(
		s.Config.BCH,
		addrRepo,
		signupRepo,
		eventRepo,
		studioRepo,
		walletClient,
		keys,
		mailer,
		rateSvc,
	)
	handler := v1.NewPaymentHandler(svc, rateSvc)

	return handler, nil
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	studioHandler *v1.StudioHandler,
	eventHandler *v1.EventHandler,
	artistHandler *v1.ArtistHandler,
	signupHandler *v1.SignupHandler,
	paymentHandler *v1.PaymentHandler,
	siteHandler *v1.SiteHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/events", eventHandler.HandleGetEvents)
		public.GET("/events/:eventID", eventHandler.HandleGetEvent)
		public.GET("/artists", artistHandler.HandleGetArtists)
		public.GET("/artists/:artistID", artistHandler.HandleGetArtist)

		public.POST("/events/:eventID/signups", signupHandler.HandleCreateSignup)
		public.POST("/events/:eventID/checkout", signupHandler.HandleCheckout)
		public.GET("/signups/:signupID", signupHandler.HandleGetSignup)
		public.GET("/signups/:signupID/ticket.pdf", signupHandler.HandleGetTicketPDF)
		public.GET("/signups/:signupID/cashstamp", signupHandler.HandleGetCashStamp)

		public.GET("/payments/rate", paymentHandler.HandleGetRate)
		public.POST("/payments/address", paymentHandler.HandleGenerateAddress)
		public.POST("/payments/verify", paymentHandler.HandleVerifyPayment)
	}

	studio := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		studio.GET("/studio/profile", studioHandler.HandleGetProfile)
		studio.PUT("/studio/settings", studioHandler.HandleUpdateSettings)
		studio.GET("/studio/events", eventHandler.HandleGetStudioEvents)
		studio.POST("/events", eventHandler.HandleCreateEvent)
		studio.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		studio.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		studio.POST("/artists", artistHandler.HandleCreateArtist)
		studio.PUT("/artists/:artistID", artistHandler.HandleUpdateArtist)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/sitemap.xml", siteHandler.HandleSitemap)
	s.Router.GET("/robots.txt", siteHandler.HandleRobots)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "dance.cash API"
	docs.SwaggerInfo.Description = "Dance event bookings settled with Bitcoin Cash."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
