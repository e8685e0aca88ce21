package router

import (
	"log/slog"

	"pollsite/handlers"
	"pollsite/helper"
	"pollsite/middleware"
	"pollsite/models"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	PollHandler *handlers.PollHandler
	AuthHandler *handlers.AuthHandler
	Helper      *helper.HTTPHelper
	JWTSecret   []byte
	Logger      *slog.Logger
}

func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORS())

	router.NoRoute(func(c *gin.Context) {
		deps.Helper.SendNotFoundError(c, "Route not found", deps.Helper.EmptyJsonMap())
	})

	router.GET("/", handlers.Home)
	router.GET("/health", handlers.Health)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Public poll views
		polls := v1.Group("/polls")
		{
			polls.GET("", deps.PollHandler.GetQuestions)
			polls.GET("/:id", deps.PollHandler.GetQuestion)
			polls.GET("/:id/results", deps.PollHandler.GetResults)
			polls.POST("/:id/vote", deps.PollHandler.Vote)
		}

		authRequired := middleware.AuthMiddleware(deps.Helper, deps.JWTSecret)

		protected := v1.Group("/")
		protected.Use(authRequired)
		{
			protected.GET("/profile", deps.AuthHandler.GetProfile)

			protected.POST("/polls", deps.PollHandler.CreateQuestion)
			protected.POST("/polls/:id/choices", deps.PollHandler.AddChoice)
			protected.DELETE("/polls/:id", deps.PollHandler.DeleteQuestion)
		}

		admin := v1.Group("/admin")
		admin.Use(authRequired, middleware.RequireRole(deps.Helper, models.RoleAdmin))
		{
			admin.PUT("/users/:id/role", deps.AuthHandler.UpdateUserRole)
		}
	}

	return router
}
