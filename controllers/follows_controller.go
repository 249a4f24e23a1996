package controllers

import (
	"errors"
	"net/http"

	"Yatube/models"
	"Yatube/responses"
	httpctx "Yatube/utils/httpctx"
	"Yatube/utils/pagination"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FollowIndex is the requester's personal feed: posts authored by everyone
// they follow, newest-first, paginated like every other listing.
func (server *Server) FollowIndex(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	follow := models.Follow{}
	authorIDs, err := follow.FollowedAuthorIDs(server.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load follows"})
		return
	}

	post := models.Post{}
	count, err := post.CountFeedPosts(server.DB, authorIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to count posts"})
		return
	}

	page := pagination.GetPage(count, pagination.ParsePageNumber(c.Query("page")), pagination.PostsPerPage)
	posts, err := post.FindFeedPosts(server.DB, authorIDs, page.Offset, page.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"posts": responses.NewPostListResponse(*posts),
			"page":  page,
		},
	})
}

// FollowAuthor subscribes the requester to an author. Self-follows and
// repeat follows are quietly skipped; every outcome lands on the author's
// profile page. The unique index on (user, author) is the final word on
// duplicates, the existence pre-check here is best-effort.
func (server *Server) FollowAuthor(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

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

	if uid != author.ID {
		follow := models.Follow{}
		alreadyFollowing, err := follow.IsFollowing(server.DB, uid, author.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to check follow state"})
			return
		}
		if !alreadyFollowing {
			edge := models.Follow{UserID: uid, AuthorID: author.ID}
			if _, err := edge.SaveFollow(server.DB); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to follow user"})
				return
			}
		}
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// UnfollowAuthor removes the subscription if present; unfollowing someone
// you never followed deletes zero rows and is not an error.
func (server *Server) UnfollowAuthor(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

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

	follow := models.Follow{}
	if _, err := follow.DeleteFollow(server.DB, uid, author.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to unfollow user"})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}
