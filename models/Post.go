package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is authored content, optionally filed under a group and optionally
// carrying an image stored in S3 (ImagePath holds the object key).
//
// Text is deliberately not trimmed or escaped before validation: the only
// rejected value is the exact empty string, whitespace-only posts are legal.
type Post struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	ImagePath string    `gorm:"size:255" json:"image_path"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (p *Post) Prepare() {
	p.ID = 0
	p.Author = User{}
	p.Group = nil
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
}

func (p *Post) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if p.Text == "" {
		errorMessages["Required_text"] = "Text is required"
	}
	if p.AuthorID == 0 {
		errorMessages["Required_author"] = "Author is required"
	}
	return errorMessages
}

func (p *Post) SavePost(db *gorm.DB) (*Post, error) {
	if err := db.Create(&p).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Author").Preload("Group").Take(p, p.ID).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) FindPostByID(db *gorm.DB, pid uint) (*Post, error) {
	var post Post
	err := db.Preload("Author").Preload("Group").Where("id = ?", pid).Take(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Newest-first is the default ordering for every listing; ties on the
// timestamp fall back to id so pages are stable.
func postListing(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Group").
		Order("created_at desc, id desc")
}

func (p *Post) FindAllPosts(db *gorm.DB, offset, limit int) (*[]Post, error) {
	posts := []Post{}
	err := postListing(db).Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return &posts, nil
}

func (p *Post) CountAllPosts(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Post{}).Count(&count).Error
	return count, err
}

func (p *Post) FindGroupPosts(db *gorm.DB, groupID uint, offset, limit int) (*[]Post, error) {
	posts := []Post{}
	err := postListing(db.Where("group_id = ?", groupID)).
		Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return &posts, nil
}

func (p *Post) CountGroupPosts(db *gorm.DB, groupID uint) (int64, error) {
	var count int64
	err := db.Model(&Post{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

func (p *Post) FindUserPosts(db *gorm.DB, authorID uint, offset, limit int) (*[]Post, error) {
	posts := []Post{}
	err := postListing(db.Where("author_id = ?", authorID)).
		Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return &posts, nil
}

func (p *Post) CountUserPosts(db *gorm.DB, authorID uint) (int64, error) {
	var count int64
	err := db.Model(&Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// FindFeedPosts lists posts authored by any of the given authors. An empty
// author set yields an empty feed.
func (p *Post) FindFeedPosts(db *gorm.DB, authorIDs []uint, offset, limit int) (*[]Post, error) {
	posts := []Post{}
	if len(authorIDs) == 0 {
		return &posts, nil
	}
	err := postListing(db.Where("author_id IN ?", authorIDs)).
		Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return &posts, nil
}

func (p *Post) CountFeedPosts(db *gorm.DB, authorIDs []uint) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := db.Model(&Post{}).Where("author_id IN ?", authorIDs).Count(&count).Error
	return count, err
}

// UpdateAPost persists an edit. CreatedAt is intentionally left untouched:
// the publication date belongs to the original creation, edits only move
// UpdatedAt. The image key is written only when the edit uploaded a new one.
func (p *Post) UpdateAPost(db *gorm.DB, imageUpdated bool) (*Post, error) {
	updates := map[string]interface{}{
		"text":       p.Text,
		"group_id":   p.GroupID,
		"updated_at": time.Now(),
	}
	if imageUpdated {
		updates["image_path"] = p.ImagePath
	}
	err := db.Model(&Post{}).Where("id = ?", p.ID).Updates(updates).Error
	if err != nil {
		return nil, err
	}
	if err := db.Preload("Author").Preload("Group").Take(p, p.ID).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// When a user is deleted, we also delete the posts that the user had.
func (p *Post) DeleteUserPosts(db *gorm.DB, uid uint) (int64, error) {
	result := db.Where("author_id = ?", uid).Delete(&Post{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
