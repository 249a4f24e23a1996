package responses

import (
	"os"
	"strings"
	"time"

	"Yatube/models"
)

type AuthorResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type GroupResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type PostResponse struct {
	ID        uint           `json:"id"`
	Text      string         `json:"text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Author    AuthorResponse `json:"author"`
	Group     *GroupResponse `json:"group,omitempty"`
	ImageURL  string         `json:"image_url,omitempty"`
}

type CommentResponse struct {
	ID        uint           `json:"id"`
	Text      string         `json:"text"`
	CreatedAt time.Time      `json:"created_at"`
	Author    AuthorResponse `json:"author"`
}

// CommentFormResponse is the (empty or bound) comment-submission form
// included in the post-detail context.
type CommentFormResponse struct {
	Text string `json:"text"`
}

func NewAuthorResponse(u models.User) AuthorResponse {
	return AuthorResponse{ID: u.ID, Username: u.Username}
}

func NewGroupResponse(g models.Group) GroupResponse {
	return GroupResponse{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

func NewPostResponse(p models.Post) PostResponse {
	resp := PostResponse{
		ID:        p.ID,
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Author:    NewAuthorResponse(p.Author),
		ImageURL:  publicObjectURL(p.ImagePath),
	}
	if p.Group != nil {
		group := NewGroupResponse(*p.Group)
		resp.Group = &group
	}
	return resp
}

func NewPostListResponse(posts []models.Post) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i, p := range posts {
		out[i] = NewPostResponse(p)
	}
	return out
}

func NewCommentResponse(c models.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		Author:    NewAuthorResponse(c.Author),
	}
}

func NewCommentListResponse(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = NewCommentResponse(c)
	}
	return out
}

// publicObjectURL expands a stored S3 object key to a public URL. Keys that
// are already absolute URLs pass through unchanged.
func publicObjectURL(key string) string {
	if key == "" || strings.HasPrefix(key, "http") {
		return key
	}
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return key
	}
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	return "https://" + bucket + ".s3." + region + ".amazonaws.com/" + key
}
