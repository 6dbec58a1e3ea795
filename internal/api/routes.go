package api

import (
	"aifitness/planner/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	planService service.PlanService,
	chatService service.ChatService,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(planService)
	chatHandler := NewChatHandler(chatService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(authService))
	{
		protected.GET("/me", authHandler.Me)

		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.GeneratePlan)
			planGroup.GET("", planHandler.GetPlanHistory)
			// Registered before /:id; gin prefers the static segment.
			planGroup.GET("/latest", planHandler.GetLatestPlan)
			planGroup.GET("/:id", planHandler.GetPlan)
			planGroup.DELETE("/:id", planHandler.DeletePlan)
			planGroup.POST("/:id/export", planHandler.ExportPlan)
			planGroup.GET("/:id/chat", chatHandler.GetChatHistory)
		}

		protected.POST("/chat", chatHandler.Ask)
	}
}
