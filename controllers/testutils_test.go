package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"Yatube/auth"
	"Yatube/cache"
	"Yatube/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer wires a Server against an in-memory SQLite database with
// the real route table, so tests exercise the same middleware chain as
// production (minus CORS/rate limiting).
func setupTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	os.Setenv("API_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
		&models.ResetPassword{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	server := &Server{DB: db, Router: gin.New()}
	server.initializeRoutes()

	// The page cache is process-wide; start every test from a cold one.
	if err := cache.Clear(context.Background()); err != nil {
		t.Fatalf("Failed to clear page cache: %v", err)
	}

	return server
}

func createTestUser(t *testing.T, server *Server, username string) (*models.User, string) {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	}
	user.Prepare()
	if _, err := user.SaveUser(server.DB); err != nil {
		t.Fatalf("Failed to create test user %q: %v", username, err)
	}
	token, err := auth.CreateToken(user.ID)
	if err != nil {
		t.Fatalf("Failed to create token for %q: %v", username, err)
	}
	return &user, token
}

func createTestPost(t *testing.T, server *Server, author *models.User, text string, groupID *uint) *models.Post {
	t.Helper()
	post := models.Post{Text: text, AuthorID: author.ID, GroupID: groupID}
	post.Prepare()
	if _, err := post.SavePost(server.DB); err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return &post
}

func createTestGroup(t *testing.T, server *Server, title, slug string) *models.Group {
	t.Helper()
	group := models.Group{Title: title, Slug: slug, Description: title}
	if _, err := group.SaveGroup(server.DB); err != nil {
		t.Fatalf("Failed to create test group %q: %v", slug, err)
	}
	return &group
}

func doGet(server *Server, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	server.Router.ServeHTTP(w, req)
	return w
}

func doFormPost(server *Server, path, token string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	server.Router.ServeHTTP(w, req)
	return w
}

func doFormPut(server *Server, path, token string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPut, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	server.Router.ServeHTTP(w, req)
	return w
}

func doDelete(server *Server, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodDelete, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	server.Router.ServeHTTP(w, req)
	return w
}

func doJSONPost(server *Server, path, token string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	server.Router.ServeHTTP(w, req)
	return w
}

// decodeResponse unwraps the {"status": ..., "response": ...} envelope.
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", w.Body.String(), err)
	}
	response, ok := body["response"].(map[string]interface{})
	if !ok {
		t.Fatalf("Response envelope missing: %q", w.Body.String())
	}
	return response
}
