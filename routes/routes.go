package routes

import (
	"movienight/controllers"
	"movienight/letterboxd"
	"movienight/mailer"
	"movienight/middlewares"
	"movienight/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	fetcher := letterboxd.NewClient()
	eventService := services.NewEventService(db, fetcher)
	mail := mailer.NewFromEnv()

	// Public API Routes

	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/signup", controllers.SignupHandler(db))
		api.POST("/login", controllers.LoginHandler(db))
		api.POST("/refresh", controllers.RefreshTokenHandler(db))
		api.POST("/logout", controllers.LogoutHandler(db))

		// Published events
		api.GET("/events", controllers.ListEvents(eventService))
		api.GET("/events/:slug", controllers.GetEvent(eventService))

		// Guest RSVP by invitation token
		api.GET("/invitations/:token", controllers.GetInvitation(db))
		api.POST("/invitations/:token/rsvp", controllers.SubmitRSVP(db))

		// Visitor film wishes
		api.POST("/feature-requests", controllers.SubmitFeatureRequest(db))
	}

	// Host Routes (Require Login)

	host := r.Group("/api/host")
	host.Use(middlewares.AuthMiddleware(), middlewares.HostOnly())
	{
		host.GET("/events", controllers.HostListEvents(eventService))
		host.POST("/events", controllers.CreateEvent(eventService))
		host.GET("/events/:slug", controllers.HostGetEvent(eventService))
		host.PATCH("/events/:slug", controllers.UpdateEvent(eventService))
		host.DELETE("/events/:slug", controllers.ArchiveEvent(eventService))

		host.GET("/events/:slug/invitations", controllers.ListInvitations(db))
		host.POST("/events/:slug/invitations", controllers.CreateInvitations(db, mail))
		host.DELETE("/invitations/:id", controllers.DeleteInvitation(db))

		host.GET("/feature-requests", controllers.ListFeatureRequests(db))
		host.PATCH("/feature-requests/:id", controllers.UpdateFeatureRequest(db))

		host.GET("/films", controllers.ListFilms(db))
		host.POST("/films/preview", controllers.PreviewFilmMetadata(fetcher))
	}

	// Fallback for Unknown Routes

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "page not found"})
	})

	return r
}
