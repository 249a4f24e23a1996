package controllers

import (
	"net/http"
	"testing"

	"Yatube/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowAuthor(t *testing.T) {
	server := setupTestServer(t)
	_, aliceToken := createTestUser(t, server, "alice")
	bob, _ := createTestUser(t, server, "bob")

	w := doGet(server, "/profile/bob/follow/", aliceToken)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/bob/", w.Header().Get("Location"))

	var count int64
	server.DB.Model(&models.Follow{}).Where("author_id = ?", bob.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// Following twice leaves a single edge.
	w = doGet(server, "/profile/bob/follow/", aliceToken)
	require.Equal(t, http.StatusFound, w.Code)
	server.DB.Model(&models.Follow{}).Where("author_id = ?", bob.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFollowSelfIsSkipped(t *testing.T) {
	server := setupTestServer(t)
	_, aliceToken := createTestUser(t, server, "alice")

	w := doGet(server, "/profile/alice/follow/", aliceToken)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/alice/", w.Header().Get("Location"))

	var count int64
	server.DB.Model(&models.Follow{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestFollowUnknownAuthor(t *testing.T) {
	server := setupTestServer(t)
	_, aliceToken := createTestUser(t, server, "alice")

	w := doGet(server, "/profile/nobody/follow/", aliceToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnfollowAuthor(t *testing.T) {
	server := setupTestServer(t)
	alice, aliceToken := createTestUser(t, server, "alice")
	bob, _ := createTestUser(t, server, "bob")

	edge := models.Follow{UserID: alice.ID, AuthorID: bob.ID}
	_, err := edge.SaveFollow(server.DB)
	require.NoError(t, err)

	w := doGet(server, "/profile/bob/unfollow/", aliceToken)
	require.Equal(t, http.StatusFound, w.Code)

	var count int64
	server.DB.Model(&models.Follow{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Unfollowing an author you never followed is not an error.
	w = doGet(server, "/profile/bob/unfollow/", aliceToken)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestFollowIndexScopedToFollowedAuthors(t *testing.T) {
	server := setupTestServer(t)
	alice, aliceToken := createTestUser(t, server, "alice")
	bob, _ := createTestUser(t, server, "bob")
	carol, _ := createTestUser(t, server, "carol")

	createTestPost(t, server, bob, "bob writes first", nil)
	createTestPost(t, server, bob, "bob writes again", nil)
	createTestPost(t, server, carol, "carol writes too", nil)

	edge := models.Follow{UserID: alice.ID, AuthorID: bob.ID}
	_, err := edge.SaveFollow(server.DB)
	require.NoError(t, err)

	w := doGet(server, "/follow/", aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)

	posts := response["posts"].([]interface{})
	require.Equal(t, 2, len(posts))
	assert.Equal(t, "bob writes again", posts[0].(map[string]interface{})["text"])
	assert.Equal(t, "bob writes first", posts[1].(map[string]interface{})["text"])
}

func TestFollowIndexEmptyWithoutFollows(t *testing.T) {
	server := setupTestServer(t)
	_, aliceToken := createTestUser(t, server, "alice")
	bob, _ := createTestUser(t, server, "bob")
	createTestPost(t, server, bob, "unseen post", nil)

	w := doGet(server, "/follow/", aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)

	assert.Equal(t, 0, len(response["posts"].([]interface{})))
	page := response["page"].(map[string]interface{})
	assert.Equal(t, float64(0), page["count"])
}

func TestFollowIndexRequiresLogin(t *testing.T) {
	server := setupTestServer(t)

	w := doGet(server, "/follow/", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/follow/", w.Header().Get("Location"))
}

func TestProfileFollowingFlag(t *testing.T) {
	server := setupTestServer(t)
	alice, aliceToken := createTestUser(t, server, "alice")
	bob, _ := createTestUser(t, server, "bob")

	// Anonymous visitors never see following=true.
	w := doGet(server, "/profile/bob/", "")
	require.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, false, response["following"])

	w = doGet(server, "/profile/bob/", aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	response = decodeResponse(t, w)
	assert.Equal(t, false, response["following"])

	edge := models.Follow{UserID: alice.ID, AuthorID: bob.ID}
	_, err := edge.SaveFollow(server.DB)
	require.NoError(t, err)

	w = doGet(server, "/profile/bob/", aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	response = decodeResponse(t, w)
	assert.Equal(t, true, response["following"])
}

func TestProfileListsOnlyAuthorsPosts(t *testing.T) {
	server := setupTestServer(t)
	alice, _ := createTestUser(t, server, "alice")
	bob, _ := createTestUser(t, server, "bob")
	createTestPost(t, server, alice, "by alice", nil)
	createTestPost(t, server, bob, "by bob", nil)

	w := doGet(server, "/profile/alice/", "")
	require.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)

	posts := response["posts"].([]interface{})
	require.Equal(t, 1, len(posts))
	assert.Equal(t, "by alice", posts[0].(map[string]interface{})["text"])

	author := response["author"].(map[string]interface{})
	assert.Equal(t, "alice", author["username"])
}

func TestProfileUnknownUser(t *testing.T) {
	server := setupTestServer(t)

	w := doGet(server, "/profile/nobody/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletedUserDisappearsFromFeed(t *testing.T) {
	server := setupTestServer(t)
	alice, aliceToken := createTestUser(t, server, "alice")
	bob, bobToken := createTestUser(t, server, "bob")
	createTestPost(t, server, bob, "soon to be gone", nil)

	edge := models.Follow{UserID: alice.ID, AuthorID: bob.ID}
	_, err := edge.SaveFollow(server.DB)
	require.NoError(t, err)

	w := doDelete(server, "/profile/bob/", bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	var postCount, followCount int64
	server.DB.Model(&models.Post{}).Count(&postCount)
	server.DB.Model(&models.Follow{}).Count(&followCount)
	assert.Equal(t, int64(0), postCount)
	assert.Equal(t, int64(0), followCount)

	w2 := doGet(server, "/follow/", aliceToken)
	require.Equal(t, http.StatusOK, w2.Code)
	response := decodeResponse(t, w2)
	assert.Equal(t, 0, len(response["posts"].([]interface{})))
}
