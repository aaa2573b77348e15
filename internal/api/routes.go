package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend-go/internal/middleware"
)

// Handlers groups the handler set mounted by SetupRoutes.
type Handlers struct {
	Session  *SessionHandler
	Comment  *CommentHandler
	Favorite *FavoriteHandler
	Contact  *ContactHandler
	Admin    *AdminHandler
}

// SetupRoutes mounts the API under /api/v1. Comment reads and the live
// feed are public with optional identity; writes, favorites and the
// session endpoints require a verified token; the moderation group is
// gated on the admin flag.
func SetupRoutes(router *gin.Engine, h Handlers, auth *middleware.AuthMiddleware) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	public := v1.Group("")
	public.Use(auth.OptionalToken())
	{
		public.GET("/projects/:projectId/comments", h.Comment.ListComments)
		public.GET("/projects/:projectId/comments/live", h.Comment.StreamComments)
		public.POST("/contact", h.Contact.SubmitContact)
	}

	authed := v1.Group("")
	authed.Use(auth.VerifyToken())
	{
		authed.POST("/session", h.Session.InitSession)
		authed.DELETE("/session", h.Session.EndSession)
		authed.GET("/users/me", h.Session.GetCurrentUserProfile)

		authed.POST("/projects/:projectId/comments", h.Comment.PostComment)
		authed.DELETE("/comments/:commentId", h.Comment.DeleteComment)

		authed.PUT("/projects/:projectId/favorite", h.Favorite.ToggleFavorite)
		authed.GET("/projects/:projectId/favorite", h.Favorite.CheckFavorite)
		authed.GET("/favorites", h.Favorite.ListFavorites)
	}

	admin := v1.Group("/admin")
	admin.Use(auth.VerifyToken(), middleware.RequireAdmin())
	{
		admin.GET("/comments", h.Admin.RecentComments)
		admin.GET("/messages", h.Admin.Messages)
		admin.POST("/messages/:messageId/read", h.Admin.MarkMessageRead)
	}
}
