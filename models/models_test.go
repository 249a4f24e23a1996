package models

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupModelDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Group{}, &Post{}, &Comment{}, &Follow{}, &ResetPassword{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *User {
	t.Helper()
	user := User{Username: username, Email: username + "@example.com", Password: "password123"}
	user.Prepare()
	if _, err := user.SaveUser(db); err != nil {
		t.Fatalf("Failed to seed user %q: %v", username, err)
	}
	return &user
}

func TestPostValidate(t *testing.T) {
	post := Post{Text: "", AuthorID: 1}
	errs := post.Validate()
	assert.Contains(t, errs, "Required_text")

	// Only the exact empty string is rejected; whitespace is legal text.
	post = Post{Text: "   ", AuthorID: 1}
	assert.Empty(t, post.Validate())

	post = Post{Text: "hello"}
	errs = post.Validate()
	assert.Contains(t, errs, "Required_author")
}

func TestCommentValidate(t *testing.T) {
	comment := Comment{Text: "", AuthorID: 1, PostID: 1}
	assert.Contains(t, comment.Validate(), "Required_text")

	comment = Comment{Text: "  ", AuthorID: 1, PostID: 1}
	assert.Empty(t, comment.Validate())
}

func TestGroupValidate(t *testing.T) {
	group := Group{Title: "Travel", Slug: "travel-notes_2"}
	assert.Empty(t, group.Validate())

	group = Group{Title: "Travel", Slug: "Has Spaces"}
	assert.Contains(t, group.Validate(), "Invalid_slug")

	group = Group{Title: "Travel"}
	assert.Contains(t, group.Validate(), "Required_slug")
}

func TestGroupPrepareNormalizesSlug(t *testing.T) {
	group := Group{Title: "  Travel ", Slug: " TRAVEL "}
	group.Prepare()
	assert.Equal(t, "travel", group.Slug)
	assert.Equal(t, "Travel", group.Title)
}

func TestUserPrepareNormalizes(t *testing.T) {
	user := User{Username: "  Alice ", Email: " Alice@Example.COM "}
	user.Prepare()
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestUserPasswordHashedOnCreate(t *testing.T) {
	db := setupModelDB(t)
	user := seedUser(t, db, "alice")

	var stored User
	require.NoError(t, db.Where("id = ?", user.ID).Take(&stored).Error)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, stored.VerifyPassword("password123"))
	assert.Error(t, stored.VerifyPassword("wrong"))
	assert.NotEmpty(t, stored.PublicID)
}

func TestFindAllUsersAndByID(t *testing.T) {
	db := setupModelDB(t)
	alice := seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	user := User{}
	users, err := user.FindAllUsers(db)
	require.NoError(t, err)
	assert.Equal(t, 2, len(*users))

	found, err := user.FindUserByID(db, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	_, err = user.FindUserByID(db, 424242)
	assert.Error(t, err)
}

func TestUpdateAUserAvatarExpandsStoredKey(t *testing.T) {
	db := setupModelDB(t)
	alice := seedUser(t, db, "alice")

	os.Setenv("S3_BUCKET", "test-bucket")
	os.Setenv("AWS_REGION", "us-east-2")
	defer os.Unsetenv("S3_BUCKET")
	defer os.Unsetenv("AWS_REGION")

	user := User{AvatarPath: "UserProfilePics/abc.png"}
	updated, err := user.UpdateAUserAvatar(db, alice.ID)
	require.NoError(t, err)

	// AfterFind turns the stored key into a public URL.
	assert.Equal(t,
		"https://test-bucket.s3.us-east-2.amazonaws.com/UserProfilePics/abc.png",
		updated.AvatarPath)

	// The row itself keeps the bare key.
	var raw struct{ AvatarPath string }
	require.NoError(t, db.Model(&User{}).Select("avatar_path").Where("id = ?", alice.ID).Scan(&raw).Error)
	assert.Equal(t, "UserProfilePics/abc.png", raw.AvatarPath)
}

func TestSaveFollowIsIdempotent(t *testing.T) {
	db := setupModelDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	edge := Follow{UserID: alice.ID, AuthorID: bob.ID}
	created, err := edge.SaveFollow(db)
	require.NoError(t, err)
	assert.True(t, created)

	again := Follow{UserID: alice.ID, AuthorID: bob.ID}
	created, err = again.SaveFollow(db)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	db.Model(&Follow{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFeedWithNoFollowedAuthors(t *testing.T) {
	db := setupModelDB(t)
	author := seedUser(t, db, "alice")

	post := Post{Text: "unseen", AuthorID: author.ID}
	post.Prepare()
	_, err := post.SavePost(db)
	require.NoError(t, err)

	count, err := post.CountFeedPosts(db, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	posts, err := post.FindFeedPosts(db, nil, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, *posts)
}

func TestUpdateAPostKeepsCreatedAt(t *testing.T) {
	db := setupModelDB(t)
	author := seedUser(t, db, "alice")

	post := Post{Text: "original", AuthorID: author.ID}
	post.Prepare()
	_, err := post.SavePost(db)
	require.NoError(t, err)
	originalCreatedAt := post.CreatedAt

	post.Text = "edited"
	updated, err := post.UpdateAPost(db, false)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, originalCreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestUpdateAPostImageOnlyWhenUploaded(t *testing.T) {
	db := setupModelDB(t)
	author := seedUser(t, db, "alice")

	post := Post{Text: "with image", AuthorID: author.ID, ImagePath: "posts/abc.png"}
	post.Prepare()
	_, err := post.SavePost(db)
	require.NoError(t, err)

	// An edit without a new upload must not clear the stored key.
	post.Text = "edited"
	post.ImagePath = ""
	_, err = post.UpdateAPost(db, false)
	require.NoError(t, err)

	var stored Post
	require.NoError(t, db.Where("id = ?", post.ID).Take(&stored).Error)
	assert.Equal(t, "posts/abc.png", stored.ImagePath)
}

func TestDeleteAUserCascades(t *testing.T) {
	db := setupModelDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	post := Post{Text: "alice's post", AuthorID: alice.ID}
	post.Prepare()
	_, err := post.SavePost(db)
	require.NoError(t, err)

	comment := Comment{Text: "bob's comment", AuthorID: bob.ID, PostID: post.ID}
	_, err = comment.SaveComment(db)
	require.NoError(t, err)

	edge := Follow{UserID: bob.ID, AuthorID: alice.ID}
	_, err = edge.SaveFollow(db)
	require.NoError(t, err)

	deleted, err := alice.DeleteAUser(db, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var posts, comments, follows int64
	db.Model(&Post{}).Count(&posts)
	db.Model(&Comment{}).Count(&comments)
	db.Model(&Follow{}).Count(&follows)
	assert.Equal(t, int64(0), posts)
	assert.Equal(t, int64(0), comments)
	assert.Equal(t, int64(0), follows)
}

func TestGroupSlugUnique(t *testing.T) {
	db := setupModelDB(t)

	group := Group{Title: "Travel", Slug: "travel"}
	_, err := group.SaveGroup(db)
	require.NoError(t, err)

	duplicate := Group{Title: "Other", Slug: "travel"}
	_, err = duplicate.SaveGroup(db)
	assert.Error(t, err)
}

func TestResetPasswordTokenLifecycle(t *testing.T) {
	db := setupModelDB(t)

	details := ResetPassword{Email: "alice@example.com"}
	details.Prepare()
	require.NotEmpty(t, details.Token)

	_, err := details.SaveDetails(db)
	require.NoError(t, err)

	found, err := details.FindEmailByToken(db, details.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", found.Email)

	deleted, err := found.DeleteDetails(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = details.FindEmailByToken(db, details.Token)
	assert.Error(t, err)
}
