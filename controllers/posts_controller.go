package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"Yatube/models"
	"Yatube/responses"
	httpctx "Yatube/utils/httpctx"
	"Yatube/utils/pagination"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Index lists all posts newest-first, ten per page. The whole rendered
// response sits behind the page cache: within the TTL the stored bytes are
// replayed verbatim and the data store is not consulted, so fresh writes
// only become visible once the cached page expires.
func (server *Server) Index(c *gin.Context) {
	if server.servePageFromCache(c) {
		return
	}

	post := models.Post{}
	count, err := post.CountAllPosts(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to count posts"})
		return
	}

	page := pagination.GetPage(count, pagination.ParsePageNumber(c.Query("page")), pagination.PostsPerPage)
	posts, err := post.FindAllPosts(server.DB, page.Offset, page.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load posts"})
		return
	}

	server.renderCachedPage(c, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"posts": responses.NewPostListResponse(*posts),
			"page":  page,
		},
	})
}

// GetGroupPosts lists the posts filed under one group, resolved by slug.
func (server *Server) GetGroupPosts(c *gin.Context) {
	group := models.Group{}
	groupFound, err := group.FindGroupBySlug(server.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load group"})
		return
	}

	post := models.Post{}
	count, err := post.CountGroupPosts(server.DB, groupFound.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to count posts"})
		return
	}

	page := pagination.GetPage(count, pagination.ParsePageNumber(c.Query("page")), pagination.PostsPerPage)
	posts, err := post.FindGroupPosts(server.DB, groupFound.ID, page.Offset, page.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"group": responses.NewGroupResponse(*groupFound),
			"posts": responses.NewPostListResponse(*posts),
			"page":  page,
		},
	})
}

// GetPost renders one post with its comments, the global post count and an
// empty comment form.
func (server *Server) GetPost(c *gin.Context) {
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

	comment := models.Comment{}
	comments, err := comment.GetPostComments(server.DB, postFound.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load comments"})
		return
	}

	numberOfPosts, err := post.CountAllPosts(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to count posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"post":            responses.NewPostResponse(*postFound),
			"comments":        responses.NewCommentListResponse(*comments),
			"number_of_posts": numberOfPosts,
			"form":            responses.CommentFormResponse{},
		},
	})
}

// NewPost returns the empty creation form context.
func (server *Server) NewPost(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"form": gin.H{"text": "", "group_id": nil, "image": nil},
		},
	})
}

// CreatePost persists a new post authored by the requester and redirects to
// their profile. Validation failure re-renders the form with field errors
// and persists nothing.
func (server *Server) CreatePost(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	groupID, ok := server.groupIDFromForm(c)
	if !ok {
		return
	}

	post := models.Post{
		Text:     c.PostForm("text"),
		AuthorID: uid,
		GroupID:  groupID,
	}
	post.Prepare()

	imagePath, _, err := server.uploadPostImage(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}
	post.ImagePath = imagePath

	errorMessages := post.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"errors": errorMessages,
			"form":   gin.H{"text": post.Text, "group_id": post.GroupID},
		})
		return
	}

	postCreated, err := post.SavePost(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save post"})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+postCreated.Author.Username+"/")
}

// EditPost serves the pre-filled edit form to the post's author. Anyone
// else, including anonymous visitors, is silently redirected to the post's
// detail page; no error is surfaced on the authorization miss.
func (server *Server) EditPost(c *gin.Context) {
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

	if uid, ok := requestUserID(c); !ok || uid != postFound.AuthorID {
		c.Redirect(http.StatusFound, "/posts/"+strconv.FormatUint(uint64(postFound.ID), 10)+"/")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"form": gin.H{
				"text":     postFound.Text,
				"group_id": postFound.GroupID,
			},
			"is_edit": true,
			"post_id": postFound.ID,
		},
	})
}

// UpdatePost binds the submitted fields onto the reloaded post and persists
// them. Only the author may mutate; the publication timestamp never moves.
func (server *Server) UpdatePost(c *gin.Context) {
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

	if uid, ok := requestUserID(c); !ok || uid != postFound.AuthorID {
		c.Redirect(http.StatusFound, detailPath)
		return
	}

	groupID, ok := server.groupIDFromForm(c)
	if !ok {
		return
	}

	postFound.Text = c.PostForm("text")
	postFound.GroupID = groupID

	imagePath, imageUpdated, err := server.uploadPostImage(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}
	if imageUpdated {
		postFound.ImagePath = imagePath
	}

	errorMessages := postFound.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  http.StatusUnprocessableEntity,
			"errors":  errorMessages,
			"form":    gin.H{"text": postFound.Text, "group_id": postFound.GroupID},
			"is_edit": true,
			"post_id": postFound.ID,
		})
		return
	}

	if _, err := postFound.UpdateAPost(server.DB, imageUpdated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update post"})
		return
	}

	c.Redirect(http.StatusFound, detailPath)
}

// groupIDFromForm reads the optional group selection. An unknown group is a
// validation failure; absence means "no group". Returns ok=false when a
// response has already been written.
func (server *Server) groupIDFromForm(c *gin.Context) (*uint, bool) {
	raw := c.PostForm("group_id")
	if raw == "" {
		return nil, true
	}
	gid, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"errors": map[string]string{"Invalid_group": "Invalid group"},
		})
		return nil, false
	}
	var group models.Group
	if err := server.DB.Where("id = ?", uint(gid)).Take(&group).Error; err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"errors": map[string]string{"Invalid_group": "Invalid group"},
		})
		return nil, false
	}
	id := uint(gid)
	return &id, true
}
