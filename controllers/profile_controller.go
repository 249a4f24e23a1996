package controllers

import (
	"errors"
	"net/http"

	"Yatube/models"
	"Yatube/responses"
	"Yatube/utils/pagination"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProfile renders an author's page: their posts newest-first plus a
// `following` flag. The flag is always false for anonymous visitors; for a
// signed-in requester it reflects whether a follow edge to this author
// exists.
func (server *Server) GetProfile(c *gin.Context) {
	user := models.User{}
	author, err := user.FindUserByUsername(server.DB, c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load user"})
		return
	}

	post := models.Post{}
	count, err := post.CountUserPosts(server.DB, author.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to count posts"})
		return
	}

	page := pagination.GetPage(count, pagination.ParsePageNumber(c.Query("page")), pagination.PostsPerPage)
	posts, err := post.FindUserPosts(server.DB, author.ID, page.Offset, page.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load posts"})
		return
	}

	following := false
	if uid, ok := requestUserID(c); ok {
		follow := models.Follow{}
		following, err = follow.IsFollowing(server.DB, uid, author.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to check follow state"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"author":    responses.NewAuthorResponse(*author),
			"posts":     responses.NewPostListResponse(*posts),
			"page":      page,
			"following": following,
		},
	})
}
