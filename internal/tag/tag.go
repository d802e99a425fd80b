package tag

import "time"

type Tag struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:120" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type PostTag struct {
	PostID uint64 `gorm:"primaryKey" json:"post_id"`
	TagID  uint64 `gorm:"primaryKey" json:"tag_id"`
}

// CommunityTag marks a tag as in use within a community. UpdatedAt is
// bumped whenever a post carrying the tag lands, so "recently active"
// queries can sort on it.
type CommunityTag struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	CommunityID uint64    `gorm:"index:idx_community_tag,unique" json:"community_id"`
	TagID       uint64    `gorm:"index:idx_community_tag,unique" json:"tag_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TagFollow is a user's subscription to a tag within one community.
type TagFollow struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	UserID       uint64 `gorm:"index" json:"user_id"`
	TagID        uint64 `gorm:"index" json:"tag_id"`
	CommunityID  uint64 `gorm:"index" json:"community_id"`
	NewPostCount uint64 `json:"new_post_count"`
}
