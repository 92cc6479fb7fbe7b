package app

import (
	"learnhub_backend/docs"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.GET("/auth/me", c.auth.Me)

		authorized.GET("/courses", c.course.List)
		authorized.GET("/courses/:id", c.course.Get)
		authorized.GET("/documents", c.document.List)
		authorized.GET("/documents/:id", c.document.Get)
		authorized.GET("/videos", c.video.List)
		authorized.GET("/videos/:id", c.video.Get)

		authorized.GET("/tests", c.test.List)
		authorized.POST("/tests/:id/attempts", c.attempt.Start)
		authorized.GET("/tests/:id/leaderboard", c.leaderboard.Get)

		authorized.GET("/attempts", c.attempt.History)
		authorized.GET("/attempts/:id", c.attempt.Detail)
		authorized.PUT("/attempts/:id/answers", c.attempt.Answer)
		authorized.POST("/attempts/:id/submit", c.attempt.Submit)

		authorized.POST("/access-requests", c.user.RequestAccess)
		authorized.GET("/subscriptions", c.user.MySubscriptions)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/dashboard", c.dashboard.Summary)

		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)
		admin.POST("/users/:id/subscriptions", c.user.GrantSubscription)
		admin.GET("/access-requests", c.user.ListRequests)
		admin.PUT("/access-requests/:id/review", c.user.ReviewRequest)

		admin.POST("/courses", c.course.Create)
		admin.PUT("/courses/:id", c.course.Update)
		admin.DELETE("/courses/:id", c.course.Delete)

		admin.POST("/documents", c.document.Upload)
		admin.DELETE("/documents/:id", c.document.Delete)
		admin.POST("/videos", c.video.Upload)
		admin.DELETE("/videos/:id", c.video.Delete)

		admin.POST("/tests", c.test.Create)
		admin.GET("/tests/:id", c.test.Get)
		admin.PUT("/tests/:id", c.test.Update)
		admin.DELETE("/tests/:id", c.test.Delete)
		admin.GET("/tests/:id/stats", c.test.Stats)
	}
}
