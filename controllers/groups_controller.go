package controllers

import (
	"net/http"

	"Yatube/models"
	"Yatube/responses"
	"Yatube/utils/formaterror"

	"github.com/gin-gonic/gin"
)

// GetGroups lists every community, a public directory page.
func (server *Server) GetGroups(c *gin.Context) {
	group := models.Group{}
	groups, err := group.FindAllGroups(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load groups"})
		return
	}

	out := make([]responses.GroupResponse, len(*groups))
	for i, g := range *groups {
		out[i] = responses.NewGroupResponse(g)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": gin.H{"groups": out},
	})
}

// CreateGroup registers a new community. Admin-only: groups are managed by
// the administrator process, never by post operations.
func (server *Server) CreateGroup(c *gin.Context) {
	var group models.Group
	if err := c.ShouldBindJSON(&group); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	group.Prepare()
	errorMessages := group.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"errors": errorMessages,
		})
		return
	}

	groupCreated, err := group.SaveGroup(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"errors": formattedError,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": responses.NewGroupResponse(*groupCreated),
	})
}
