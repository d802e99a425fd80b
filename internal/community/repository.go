package community

import (
	"context"

	"post-service/internal/shared/db"
)

type Repository interface {
	FindByIDs(ctx context.Context, ids []uint64) ([]Community, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) FindByIDs(ctx context.Context, ids []uint64) ([]Community, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []Community
	err := r.store.Base.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}
