package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/okembo/profilehub/internal/api/handlers"
	"github.com/okembo/profilehub/internal/api/middleware"
	"github.com/okembo/profilehub/internal/identity"
)

type Deps struct {
	Profile  *handlers.ProfileHandler
	WS       *handlers.WSHandler
	Notifier *identity.Notifier
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth(d.Notifier))

	auth.GET("/profile/me", d.Profile.Me)
	auth.POST("/profile/edit", d.Profile.BeginEdit)
	auth.PATCH("/profile", d.Profile.Update)
	auth.POST("/profile/avatar", d.Profile.Avatar)
	auth.POST("/profile/save", d.Profile.Save)
	auth.GET("/profile/view", d.Profile.View)

	// WebSocket
	auth.GET("/ws/profile", d.WS.ProfileWS)
}
