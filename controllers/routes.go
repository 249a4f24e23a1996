package controllers

import (
	"net/http"

	"Yatube/middlewares"

	"github.com/gin-gonic/gin"
)

func (s *Server) initializeRoutes() {
	authRequired := middlewares.TokenAuthMiddleware(s.DB)

	// Public listing pages
	s.Router.GET("/", s.Index)
	s.Router.GET("/group/", s.GetGroups)
	s.Router.GET("/group/:slug/", s.GetGroupPosts)
	s.Router.GET("/profile/:username/", s.GetProfile)
	s.Router.GET("/posts/:post_id/", s.GetPost)

	// Post authoring
	s.Router.GET("/create/", authRequired, s.NewPost)
	s.Router.POST("/create/", authRequired, s.CreatePost)
	s.Router.GET("/posts/:post_id/edit/", s.EditPost)
	s.Router.POST("/posts/:post_id/edit/", s.UpdatePost)

	// Comments
	s.Router.POST("/posts/:post_id/comment/", authRequired, s.AddComment)

	// Follows
	s.Router.GET("/follow/", authRequired, s.FollowIndex)
	s.Router.GET("/profile/:username/follow/", authRequired, s.FollowAuthor)
	s.Router.GET("/profile/:username/unfollow/", authRequired, s.UnfollowAuthor)

	// Account management
	s.Router.GET("/users/", s.GetUsers)
	s.Router.PUT("/profile/:username/avatar/", authRequired, s.UpdateAvatar)
	s.Router.DELETE("/profile/:username/", authRequired, s.DeleteUser)

	// Admin-managed groups
	s.Router.POST("/group/", authRequired, middlewares.AdminOnlyMiddleware(), s.CreateGroup)

	// Auth
	authGroup := s.Router.Group("/auth")
	{
		authGroup.POST("/signup/", middlewares.LoginRateLimitMiddleware(), s.CreateUser)
		authGroup.GET("/login/", s.LoginForm)
		authGroup.POST("/login/", middlewares.LoginRateLimitMiddleware(), s.Login)
		authGroup.POST("/password/forgot/", middlewares.LoginRateLimitMiddleware(), s.ForgotPassword)
		authGroup.POST("/password/reset/", s.ResetPassword)
	}

	s.Router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Page not found",
		})
	})
}
