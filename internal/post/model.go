package post

import "time"

const (
	TypeDiscussion = "discussion"
	TypeProject    = "project"
	TypeEvent      = "event"
	TypeRequest    = "request"
)

const (
	ResponseYes     = "yes"
	ResponsePending = "pending"
)

type Post struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	UserID       uint64    `gorm:"index" json:"user_id"`
	Type         string    `gorm:"size:32" json:"type"`
	Name         string    `gorm:"size:255" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Active       bool      `json:"active"`
	Announcement bool      `json:"announcement"`
	Location     string    `gorm:"size:255" json:"location"`
	ParentPostID *uint64   `gorm:"index" json:"parent_post_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PostCommunity attaches a post to exactly the communities supplied at
// creation time. Counters scoped by community are only valid once this
// row exists.
type PostCommunity struct {
	PostID      uint64 `gorm:"primaryKey" json:"post_id"`
	CommunityID uint64 `gorm:"primaryKey" json:"community_id"`
}

type Follower struct {
	PostID uint64 `gorm:"primaryKey" json:"post_id"`
	UserID uint64 `gorm:"primaryKey" json:"user_id"`
}

type ProjectMember struct {
	PostID uint64 `gorm:"primaryKey" json:"post_id"`
	UserID uint64 `gorm:"primaryKey" json:"user_id"`
}

const (
	MediaImage = "image"
	MediaVideo = "video"
	MediaFile  = "file"
	MediaDoc   = "doc"
)

type Media struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	PostID   uint64 `gorm:"index" json:"post_id"`
	Kind     string `gorm:"size:16" json:"kind"`
	URL      string `gorm:"size:512" json:"url"`
	Name     string `gorm:"size:255" json:"name"`
	Position int    `json:"position"`
}

type EventInvitation struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	EventID   uint64    `gorm:"index" json:"event_id"`
	UserID    uint64    `gorm:"index" json:"user_id"`
	InviterID uint64    `json:"inviter_id"`
	Response  string    `gorm:"size:16" json:"response"`
	CreatedAt time.Time `json:"created_at"`
}
