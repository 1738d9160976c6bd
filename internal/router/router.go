package router

import (
	"time"

	"schedura/config"
	"schedura/internal/domain"
	"schedura/internal/handler"
	"schedura/internal/middleware"
	"schedura/internal/repository"
	"schedura/internal/service"
	"schedura/internal/ws"
	"schedura/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganisationRepository(db)
	joinRepo := repository.NewJoinRequestRepository(db)
	spaceRepo := repository.NewSpaceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	logRepo := repository.NewAccessLogRepository(db)

	eventHub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	orgHandler := handler.NewOrganisationHandler(orgRepo)
	joinHandler := handler.NewJoinRequestHandler(joinRepo, orgRepo)
	spaceHandler := handler.NewSpaceHandler(spaceRepo, cloud)
	bookingHandler := handler.NewBookingHandler(bookingRepo, spaceRepo, eventHub)
	paymentHandler := handler.NewPaymentHandler(cfg, paymentRepo, bookingRepo)
	webhookHandler := handler.NewPaymentWebhookHandler(cfg, paymentRepo, bookingRepo, eventHub)
	analyticsHandler := handler.NewAnalyticsHandler(bookingRepo, paymentRepo, spaceRepo)
	accessLogHandler := handler.NewAccessLogHandler(logRepo, spaceRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	ownerMw := middleware.RequireRole(domain.RoleOwner)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		orgs := api.Group("/organisations", authMw)
		{
			orgs.POST("", orgHandler.Create)
			orgs.GET("/mine", orgHandler.ListMine)
			orgs.GET("/:id/members", orgHandler.Members)
			orgs.POST("/:id/leave", orgHandler.Leave)
			orgs.GET("/:id/join-requests", joinHandler.ListForOrganisation)
			orgs.GET("/:id/roles", orgHandler.ListRoles)
			orgs.POST("/:id/roles", orgHandler.CreateRole)
			orgs.PUT("/:id/roles/:role_id", orgHandler.UpdateRole)
			orgs.DELETE("/:id/roles/:role_id", orgHandler.DeleteRole)
		}
		api.POST("/join-requests", authMw, joinHandler.Create)
		api.POST("/join-requests/:id/approve", authMw, joinHandler.Approve)
		api.POST("/join-requests/:id/reject", authMw, joinHandler.Reject)

		spaces := api.Group("/spaces")
		{
			spaces.GET("", spaceHandler.List)
			spaces.GET("/categories", spaceHandler.Categories)
			spaces.GET("/mine", authMw, spaceHandler.ListMine)
			spaces.GET("/:id", spaceHandler.Get)
			spaces.POST("", authMw, ownerMw, spaceHandler.Create)
			spaces.PUT("/:id", authMw, ownerMw, spaceHandler.Update)
			spaces.DELETE("/:id", authMw, ownerMw, spaceHandler.Delete)
			spaces.POST("/:id/photos", authMw, ownerMw, spaceHandler.UploadPhoto)
			spaces.GET("/:id/bookings", authMw, bookingHandler.ListForSpace)
			spaces.GET("/:id/analytics", authMw, analyticsHandler.SpaceSummary)
			spaces.POST("/:id/access-logs", authMw, accessLogHandler.Record)
			spaces.GET("/:id/access-logs", authMw, accessLogHandler.ListForSpace)
		}

		bookings := api.Group("/bookings", authMw)
		{
			bookings.POST("", bookingHandler.Create)
			bookings.GET("/mine", bookingHandler.ListMine)
			bookings.POST("/:id/accept", bookingHandler.Accept)
			bookings.POST("/:id/reject", bookingHandler.Reject)
			bookings.POST("/:id/cancel", bookingHandler.Cancel)
		}

		payments := api.Group("/payments", authMw)
		{
			payments.POST("", paymentHandler.Create)
			payments.GET("/mine", paymentHandler.ListMine)
			payments.GET("/:transaction_id", paymentHandler.Get)
		}

		// Signature-gated; the processor authenticates via HMAC, not JWT.
		api.POST("/webhooks/payment", webhookHandler.Handle)
	}

	r.GET("/ws/events", ws.UpgradeEventsWS(&cfg.JWT, eventHub))

	return r
}
