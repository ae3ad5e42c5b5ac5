package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oniks98/learn-lingo-sub000/internal/core"
	"github.com/oniks98/learn-lingo-sub000/internal/identity"
	"github.com/oniks98/learn-lingo-sub000/internal/middleware"
	"github.com/oniks98/learn-lingo-sub000/internal/session"
)

// Services bundles the dependencies SetupRoutes wires into handlers.
type Services struct {
	Accounts AuthAccounts
	Identity *identity.Client
	Sessions *session.Manager
	AuthMW   *middleware.AuthMiddleware

	Users     core.UserService
	Teachers  core.TeacherService
	Bookings  core.BookingService
	Favorites core.FavoriteService
	Rates     core.RatesService
}

// SetupRoutes configures all application routes. Global middleware (logging,
// recovery, CORS) is expected to be applied to the router beforehand.
func SetupRoutes(router *gin.Engine, logger *zap.Logger, deps Services) {
	authHandler := NewAuthHandler(deps.Accounts, deps.Identity, deps.Users, deps.Sessions, logger)
	teacherHandler := NewTeacherHandler(deps.Teachers)
	bookingHandler := NewBookingHandler(deps.Bookings)
	favoriteHandler := NewFavoriteHandler(deps.Favorites)
	profileHandler := NewProfileHandler(deps.Users, deps.Sessions)
	emailHandler := NewEmailHandler(deps.Identity, deps.Users, logger)
	ratesHandler := NewRatesHandler(deps.Rates)

	verifyToken := deps.AuthMW.VerifyToken()
	requireSession := middleware.RequireSession(deps.Sessions)

	apiGroup := router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/me", authHandler.Me)
			authGroup.POST("/sync", verifyToken, authHandler.Sync)
		}

		// Teacher catalogue is public.
		teachersGroup := apiGroup.Group("/teachers")
		{
			teachersGroup.GET("", teacherHandler.List)
			teachersGroup.GET("/:id", teacherHandler.Get)
			teachersGroup.GET("/:id/extra", teacherHandler.GetExtra)
		}

		bookingsGroup := apiGroup.Group("/bookings", verifyToken)
		{
			bookingsGroup.POST("", bookingHandler.Create)
			bookingsGroup.GET("", bookingHandler.List)
			bookingsGroup.DELETE("", bookingHandler.Delete)
		}

		favoritesGroup := apiGroup.Group("/favorites", verifyToken)
		{
			favoritesGroup.GET("", favoriteHandler.List)
			favoritesGroup.POST("", favoriteHandler.Add)
			favoritesGroup.DELETE("", favoriteHandler.Remove)
		}

		profileGroup := apiGroup.Group("/profile", requireSession)
		{
			profileGroup.PATCH("", profileHandler.Update)
			profileGroup.DELETE("", profileHandler.Delete)
		}

		emailGroup := apiGroup.Group("/email")
		{
			emailGroup.POST("/verify", emailHandler.ConfirmVerification)
			emailGroup.POST("/verify/send", verifyToken, emailHandler.SendVerification)
			emailGroup.POST("/change", verifyToken, emailHandler.SendChange)
			emailGroup.POST("/change/confirm", emailHandler.ConfirmChange)
			emailGroup.POST("/reset", emailHandler.SendPasswordReset)
			emailGroup.POST("/reset/confirm", emailHandler.ConfirmPasswordReset)
		}

		apiGroup.GET("/rates", ratesHandler.Get)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "LearnLingo backend is healthy."})
	})

	logger.Info("API routes configured under /api and /health.")
}
