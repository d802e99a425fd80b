package migrate

import (
	"post-service/internal/community"
	"post-service/internal/post"
	"post-service/internal/shared/db"
	"post-service/internal/tag"
)

func AutoMigrateAll(store *db.Store) error {
	return store.Base.AutoMigrate(
		&community.Community{},
		&community.Group{},
		&community.GroupMembership{},
		&post.Post{},
		&post.PostCommunity{},
		&post.Follower{},
		&post.ProjectMember{},
		&post.Media{},
		&post.EventInvitation{},
		&tag.Tag{},
		&tag.PostTag{},
		&tag.CommunityTag{},
		&tag.TagFollow{},
	)
}
