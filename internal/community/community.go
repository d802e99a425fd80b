package community

import "time"

type Community struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Slug      string    `gorm:"uniqueIndex;size:120" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Group generalizes membership containers. Communities are one kind of
// group data; DataID points at the community row.
const GroupDataCommunity = "community"

type Group struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	DataType string `gorm:"index:idx_group_data;size:32" json:"data_type"`
	DataID   uint64 `gorm:"index:idx_group_data" json:"data_id"`
}

type GroupMembership struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	GroupID      uint64 `gorm:"index" json:"group_id"`
	UserID       uint64 `gorm:"index" json:"user_id"`
	Active       bool   `json:"active"`
	NewPostCount uint64 `json:"new_post_count"`
}
