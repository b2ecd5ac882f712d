package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/biyeghor/biyeghor-backend/internal/delivery/http/handler"
	"github.com/biyeghor/biyeghor-backend/internal/delivery/http/middleware"
	"github.com/biyeghor/biyeghor-backend/internal/domain"
)

type Router struct {
	profileHandler  *handler.ProfileHandler
	interestHandler *handler.InterestHandler
	walletHandler   *handler.WalletHandler
	authMiddleware  *middleware.AuthMiddleware
	log             *logrus.Logger
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	interestHandler *handler.InterestHandler,
	walletHandler *handler.WalletHandler,
	authMiddleware *middleware.AuthMiddleware,
	log *logrus.Logger,
) *Router {
	return &Router{
		profileHandler:  profileHandler,
		interestHandler: interestHandler,
		walletHandler:   walletHandler,
		authMiddleware:  authMiddleware,
		log:             log,
	}
}

func (r *Router) Setup() *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("privacy", func(fl validator.FieldLevel) bool {
			return domain.PrivacyLevel(fl.Field().String()).Valid()
		})
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(r.log), gin.Recovery())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Profile views are public; anonymous viewers get the redacted payload.
		v1.GET("/profiles/:id", r.authMiddleware.OptionalAuth(), r.profileHandler.GetProfile)

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			protected.PUT("/profiles/me/privacy", r.profileHandler.UpdatePrivacy)
			protected.POST("/profiles/:id/unlock", r.profileHandler.UnlockProfile)

			interests := protected.Group("/interests")
			{
				interests.POST("", r.interestHandler.SendInterest)
				interests.GET("", r.interestHandler.ListInterests)
				interests.POST("/:id/accept", r.interestHandler.AcceptInterest)
				interests.POST("/:id/reject", r.interestHandler.RejectInterest)
				interests.POST("/:id/cancel", r.interestHandler.CancelInterest)
			}

			wallet := protected.Group("/wallet")
			{
				wallet.GET("", r.walletHandler.GetWallet)
				wallet.POST("/topups", r.walletHandler.TopUp)
			}
		}
	}

	return router
}
