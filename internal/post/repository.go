package post

import (
	"context"

	"gorm.io/gorm"

	"post-service/internal/shared/db"
	"post-service/internal/tag"
)

// Associations is the post-commit view of what a post is attached to,
// read fresh from the store rather than reconstructed from the request.
type Associations struct {
	CommunityIDs []uint64
	TagIDs       []uint64
	FollowerIDs  []uint64
}

type Repository interface {
	// InTx runs fn inside one transaction; fn receives the handle that
	// every strict fan-out write must go through.
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	Create(tx *gorm.DB, p *Post) error
	AttachCommunities(tx *gorm.DB, postID uint64, communityIDs []uint64) error
	AddFollowers(tx *gorm.DB, postID uint64, userIDs []uint64) error
	CreateInvitation(tx *gorm.DB, inv *EventInvitation) error
	CreateMedia(tx *gorm.DB, m *Media) error
	ReplaceProjectMembers(tx *gorm.DB, postID uint64, userIDs []uint64) error
	ReplaceEventInvitees(tx *gorm.DB, postID, inviterID uint64, userIDs []uint64) error

	Associations(ctx context.Context, postID uint64) (Associations, error)
	FindByID(ctx context.Context, id uint64) (*Post, error)
	ListByCommunity(ctx context.Context, communityID uint64, limit int) ([]Post, error)
}

type gormRepo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &gormRepo{store: s} }

func (r *gormRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.store.Base.WithContext(ctx).Transaction(fn)
}

func (r *gormRepo) Create(tx *gorm.DB, p *Post) error {
	return tx.Create(p).Error
}

func (r *gormRepo) AttachCommunities(tx *gorm.DB, postID uint64, communityIDs []uint64) error {
	if len(communityIDs) == 0 {
		return nil
	}
	rows := make([]PostCommunity, 0, len(communityIDs))
	for _, id := range communityIDs {
		rows = append(rows, PostCommunity{PostID: postID, CommunityID: id})
	}
	return tx.Create(&rows).Error
}

func (r *gormRepo) AddFollowers(tx *gorm.DB, postID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]Follower, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, Follower{PostID: postID, UserID: id})
	}
	return tx.Create(&rows).Error
}

func (r *gormRepo) CreateInvitation(tx *gorm.DB, inv *EventInvitation) error {
	return tx.Create(inv).Error
}

func (r *gormRepo) CreateMedia(tx *gorm.DB, m *Media) error {
	return tx.Create(m).Error
}

func (r *gormRepo) ReplaceProjectMembers(tx *gorm.DB, postID uint64, userIDs []uint64) error {
	if err := tx.Where("post_id = ?", postID).Delete(&ProjectMember{}).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]ProjectMember, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, ProjectMember{PostID: postID, UserID: id})
	}
	return tx.Create(&rows).Error
}

// ReplaceEventInvitees swaps the invitee list. The inviter's own RSVP
// row is left alone so the creator's auto-YES survives a replace.
func (r *gormRepo) ReplaceEventInvitees(tx *gorm.DB, postID, inviterID uint64, userIDs []uint64) error {
	err := tx.Where("event_id = ? AND user_id <> ?", postID, inviterID).
		Delete(&EventInvitation{}).Error
	if err != nil {
		return err
	}
	for _, id := range userIDs {
		if id == inviterID {
			continue
		}
		inv := EventInvitation{
			EventID:   postID,
			UserID:    id,
			InviterID: inviterID,
			Response:  ResponsePending,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *gormRepo) Associations(ctx context.Context, postID uint64) (Associations, error) {
	var a Associations
	base := r.store.Base.WithContext(ctx)
	if err := base.Model(&PostCommunity{}).Where("post_id = ?", postID).
		Pluck("community_id", &a.CommunityIDs).Error; err != nil {
		return a, err
	}
	if err := base.Model(&tag.PostTag{}).Where("post_id = ?", postID).
		Pluck("tag_id", &a.TagIDs).Error; err != nil {
		return a, err
	}
	if err := base.Model(&Follower{}).Where("post_id = ?", postID).
		Pluck("user_id", &a.FollowerIDs).Error; err != nil {
		return a, err
	}
	return a, nil
}

func (r *gormRepo) FindByID(ctx context.Context, id uint64) (*Post, error) {
	var p Post
	if err := r.store.Base.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepo) ListByCommunity(ctx context.Context, communityID uint64, limit int) ([]Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	sub := r.store.Base.Model(&PostCommunity{}).
		Select("post_id").
		Where("community_id = ?", communityID)
	var out []Post
	err := r.store.Base.WithContext(ctx).
		Where("id IN (?)", sub).
		Where("active = ?", true).
		Order("id desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}
