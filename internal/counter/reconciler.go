package counter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"post-service/internal/community"
	"post-service/internal/shared/db"
	"post-service/internal/tag"
)

// Scope is the finalized (post, communities, tags) triple read back
// after the creating transaction committed. Counters must never be
// reconciled against a pre-commit snapshot.
type Scope struct {
	PostID       uint64
	CreatorID    uint64
	CommunityIDs []uint64
	TagIDs       []uint64
}

type Reconciler interface {
	Reconcile(ctx context.Context, s Scope) error
}

type reconciler struct{ store *db.Store }

func NewReconciler(s *db.Store) Reconciler { return &reconciler{store: s} }

// Reconcile runs three independent counter updates. A failure in one
// does not stop the others; all failures are reported together.
func (r *reconciler) Reconcile(ctx context.Context, s Scope) error {
	base := r.store.Base.WithContext(ctx)
	var errs []error
	if len(s.TagIDs) > 0 {
		if err := touchCommunityTags(base, s).Error; err != nil {
			errs = append(errs, fmt.Errorf("community tags: %w", err))
		}
	}
	if len(s.TagIDs) > 0 && len(s.CommunityIDs) > 0 {
		if err := bumpTagFollows(base, s).Error; err != nil {
			errs = append(errs, fmt.Errorf("tag follows: %w", err))
		}
	}
	if len(s.CommunityIDs) > 0 {
		if err := bumpGroupMemberships(base, s).Error; err != nil {
			errs = append(errs, fmt.Errorf("group memberships: %w", err))
		}
	}
	return errors.Join(errs...)
}

func touchCommunityTags(base *gorm.DB, s Scope) *gorm.DB {
	return base.Model(&tag.CommunityTag{}).
		Where("tag_id IN ?", s.TagIDs).
		UpdateColumn("updated_at", time.Now().UTC())
}

// bumpTagFollows adds 1 to new_post_count for every subscription whose
// tag and community both belong to the post, excluding the creator.
// The increment is relative, so the counter stays correct under
// concurrent creations and grows by exactly 1 per qualifying post.
func bumpTagFollows(base *gorm.DB, s Scope) *gorm.DB {
	return base.Model(&tag.TagFollow{}).
		Where("tag_id IN ?", s.TagIDs).
		Where("community_id IN ?", s.CommunityIDs).
		Where("user_id <> ?", s.CreatorID).
		UpdateColumn("new_post_count", gorm.Expr("new_post_count + 1"))
}

func bumpGroupMemberships(base *gorm.DB, s Scope) *gorm.DB {
	groups := base.Session(&gorm.Session{NewDB: true}).
		Model(&community.Group{}).
		Select("id").
		Where("data_type = ? AND data_id IN ?", community.GroupDataCommunity, s.CommunityIDs)
	return base.Model(&community.GroupMembership{}).
		Where("group_id IN (?)", groups).
		Where("user_id <> ?", s.CreatorID).
		Where("active = ?", true).
		UpdateColumn("new_post_count", gorm.Expr("new_post_count + 1"))
}
