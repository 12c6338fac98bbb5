package app

import (
	"treasure_hunt_backend/docs"
	"treasure_hunt_backend/internal/config"
	"treasure_hunt_backend/internal/middleware"
	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/users/register", c.auth.Register)
		public.POST("/users/login", c.auth.Login)
	}

	// every authenticated route re-checks the token's device against the
	// account's active device, so superseded sessions die immediately
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, s.auth))
	{
		authGroup.POST("/users/logout", c.auth.Logout)

		// participant hunt flow
		authGroup.GET("/current-question", c.hunt.CurrentQuestion)
		authGroup.POST("/submit/:questionId", c.hunt.SubmitAnswer)

		// leaderboard, polled by both roles
		authGroup.GET("/teams/results", c.team.GetResults)

		admin := authGroup.Group("")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/questions", c.question.List)
			admin.POST("/questions", c.question.Create)
			admin.PUT("/questions/:id", c.question.Update)
			admin.DELETE("/questions/:id", c.question.Delete)

			admin.GET("/teams", c.team.GetTeams)
			admin.GET("/teams/:username/answers", c.team.GetTeamAnswers)
			admin.POST("/teams/:username/answers/:answerId/review", c.team.ReviewAnswer)
		}
	}
}
