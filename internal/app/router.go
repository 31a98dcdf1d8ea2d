package app

import (
	"cyberlearn_backend/docs"
	"cyberlearn_backend/internal/middleware"
	"cyberlearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.Version = Version
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.Use(middleware.TryAuth(a.Config.JWT.Secret))
	{
		api.GET("/", c.catalog.Root)
		api.GET("/topics", c.catalog.Topics)
		api.GET("/health", c.health.HealthCheck)

		a.registerAssessmentRoutes(api, c)
		a.registerLearningPlanRoutes(api, c)
		a.registerSessionRoutes(api, c)

		api.GET("/achievements", c.achievement.List)
		api.GET("/user-progress/:user_id", c.achievement.UserProgress)
		api.POST("/analyze-profile", c.profile.Analyze)
	}
}

func (a *App) registerAssessmentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/generate-assessment", c.assessment.Generate)
	rg.GET("/assessments/:id", c.assessment.Get)
	rg.POST("/submit-assessment", c.assessment.Submit)
	rg.GET("/assessment-result/:id", c.assessment.GetResult)
}

func (a *App) registerLearningPlanRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/generate-learning-plan", c.plan.Generate)
	rg.POST("/approve-learning-plan/:id", c.plan.Approve)

	plans := rg.Group("/learning-plans")
	{
		plans.GET("", c.plan.List)
		plans.GET("/:id", c.plan.Get)
		plans.DELETE("/:id", c.plan.Delete)
		plans.GET("/:id/chapter/:chapter_id", c.plan.Chapter)
		plans.GET("/:id/section/:section_id", c.plan.Section)
		plans.POST("/:id/export", c.plan.Export)
	}
}

func (a *App) registerSessionRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/start-learning-session", c.session.Start)
	rg.GET("/learning-session/:id", c.session.Get)
	rg.POST("/update-progress", c.session.UpdateProgress)

	rg.POST("/chat-with-ai", c.chat.Chat)
	rg.GET("/chat-history/:session_id", c.chat.History)
	rg.GET("/ws/chat", c.chat.WebSocket)
}
