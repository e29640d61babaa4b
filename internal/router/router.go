package router

import (
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/handlers"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	authHandler := handlers.NewAuthHandler()
	petHandler := handlers.NewPetHandler()
	storyHandler := handlers.NewStoryHandler()
	voteHandler := handlers.NewVoteHandler()
	userHandler := handlers.NewUserHandler()
	notificationHandler := handlers.NewNotificationHandler()
	newsHandler := handlers.NewNewsHandler()
	adminHandler := handlers.NewAdminHandler()

	api := r.Group("/api")

	// Public routes
	api.GET("/auth/captcha", authHandler.Captcha)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	api.GET("/pets", petHandler.List)             // browse/search, ?lost=1&species=&city=&q=
	api.GET("/pets/:pid", petHandler.Detail)      // pet profile
	api.GET("/posts", storyHandler.List)          // forum, ?sort=top|new&topic=
	api.GET("/posts/:pid", storyHandler.Detail)   // post + comments
	api.GET("/posts/:pid/vote", voteHandler.Show) // score + viewer's vote
	api.GET("/topics", storyHandler.ListTopics)
	api.GET("/users/:id", userHandler.Profile)
	api.GET("/news", newsHandler.List)
	api.GET("/news/:slug", newsHandler.Detail)

	// Authenticated routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/pets", petHandler.Create)
		authorized.PUT("/pets/:pid", petHandler.Update)
		authorized.POST("/pets/:pid/lost", petHandler.SetLost)
		authorized.POST("/pets/:pid/photo", petHandler.UploadPhoto)
		authorized.POST("/pets/:pid/contact", petHandler.Contact)
		authorized.POST("/pets/:pid/watch", petHandler.ToggleWatch)

		authorized.POST("/posts", storyHandler.Create)
		authorized.POST("/posts/:pid/vote", voteHandler.Vote)
		authorized.POST("/posts/:pid/comments", storyHandler.CreateComment)
		authorized.POST("/posts/:pid/report", storyHandler.ReportPost)
		authorized.POST("/comments/:cid/report", storyHandler.ReportComment)
		authorized.DELETE("/posts/:pid", storyHandler.Delete)
		authorized.DELETE("/comments/:cid", storyHandler.DeleteComment)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)

		authorized.POST("/settings", userHandler.UpdateSettings)
		authorized.GET("/my/pets", userHandler.MyPets)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/reports", adminHandler.ListReports)
		admin.POST("/reports/:id/resolve", adminHandler.ResolveReport)
		admin.POST("/users/:id/status", adminHandler.ModerateUser)

		admin.POST("/news", newsHandler.Create)
		admin.PUT("/news/:slug", newsHandler.Update)
		admin.DELETE("/news/:slug", newsHandler.Delete)
	}
}
