package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"buildxpert/internal/handlers"
	"buildxpert/internal/middleware"
)

// RegisterRoutes wires every endpoint under /api/v1 plus the WebSocket
// and swagger routes.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/google", h.Auth.GoogleLogin)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", middleware.AuthMiddleware(), h.Auth.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), h.Auth.Me)
		}

		jobs := api.Group("/jobs")
		{
			jobs.GET("", middleware.OptionalAuthMiddleware(), h.Job.List)
			jobs.GET("/mine", middleware.AuthMiddleware(), h.Job.ListMine)
			jobs.GET("/:id", middleware.OptionalAuthMiddleware(), h.Job.Get)
			jobs.POST("", middleware.AuthMiddleware(), h.Job.Create)
			jobs.PATCH("/:id", middleware.AuthMiddleware(), h.Job.Update)
			jobs.POST("/:id/publish", middleware.AuthMiddleware(), h.Job.Publish)
			jobs.POST("/:id/close", middleware.AuthMiddleware(), h.Job.Close)
			jobs.POST("/:id/images/:upload_id", middleware.AuthMiddleware(), h.Job.AttachImage)
		}

		messages := api.Group("/messages", middleware.AuthMiddleware())
		{
			messages.GET("", h.Message.List)
			messages.POST("", h.Message.Create)
			messages.PUT("/read", h.Message.MarkRead)
		}

		files := api.Group("/files")
		{
			files.GET("/:id", h.File.Serve)
			files.POST("", middleware.AuthMiddleware(), h.File.Upload)
			files.DELETE("/:id", middleware.AuthMiddleware(), h.File.Delete)
		}

		api.POST("/contacts", h.Contact.Create)
		api.POST("/webhooks/email-bounce", h.Bounce.Webhook)

		admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminOnly())
		{
			admin.GET("/dashboard", h.Dashboard.Summary)

			admin.GET("/contacts", h.Contact.List)
			admin.PUT("/contacts/:id", h.Contact.UpdateStatus)
			admin.DELETE("/contacts/:id", h.Contact.Delete)

			admin.GET("/bounces", h.Bounce.List)
			admin.DELETE("/bounces/:email", h.Bounce.Unsuppress)

			admin.GET("/templates", h.Template.List)
			admin.POST("/templates", h.Template.Create)
			admin.GET("/templates/:id", h.Template.Get)
			admin.PUT("/templates/:id", h.Template.Update)
			admin.DELETE("/templates/:id", h.Template.Delete)
		}
	}

	// The handshake authenticates like any other route; room membership
	// comes from the token, never from the client.
	router.GET("/ws", middleware.AuthMiddleware(), h.WS.ServeWS)
}
