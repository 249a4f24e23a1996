package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"Yatube/models"
	httpctx "Yatube/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddComment attaches a comment to a post. A missing post is a hard 404.
// An invalid (empty) comment is dropped without feedback: valid or not, the
// requester ends up back on the post's detail page.
func (server *Server) AddComment(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pid, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post := models.Post{}
	postFound, err := post.FindPostByID(server.DB, uint(pid))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load post"})
		return
	}

	detailPath := "/posts/" + strconv.FormatUint(uint64(postFound.ID), 10) + "/"

	comment := models.Comment{
		Text:     c.PostForm("text"),
		AuthorID: uid,
		PostID:   postFound.ID,
	}
	comment.Prepare()

	if errorMessages := comment.Validate(); len(errorMessages) > 0 {
		// Invalid comments are discarded silently.
		c.Redirect(http.StatusFound, detailPath)
		return
	}

	if _, err := comment.SaveComment(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save comment"})
		return
	}

	c.Redirect(http.StatusFound, detailPath)
}
