package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Follow is a directed subscription edge: UserID follows AuthorID. The
// composite unique index is the real safeguard against duplicate edges;
// handler-level existence checks are best-effort only.
type Follow struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_author" json:"user_id"`
	AuthorID  uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_author" json:"author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SaveFollow inserts the edge with ON CONFLICT DO NOTHING so that two
// concurrent follow attempts cannot both create a row. The returned bool
// reports whether a new edge was actually written.
func (f *Follow) SaveFollow(db *gorm.DB) (bool, error) {
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&f)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteFollow removes the edge if present. Deleting a non-existent edge
// affects zero rows and is not an error.
func (f *Follow) DeleteFollow(db *gorm.DB, userID, authorID uint) (int64, error) {
	result := db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&Follow{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (f *Follow) IsFollowing(db *gorm.DB, userID, authorID uint) (bool, error) {
	var count int64
	err := db.Model(&Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowedAuthorIDs returns the set of authors the given user follows.
func (f *Follow) FollowedAuthorIDs(db *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&Follow{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// When a user is deleted, we also drop their follow edges in both directions.
func (f *Follow) DeleteUserFollows(db *gorm.DB, uid uint) (int64, error) {
	result := db.Where("user_id = ? OR author_id = ?", uid, uid).Delete(&Follow{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
