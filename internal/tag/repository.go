package tag

import (
	"gorm.io/gorm"
)

type Repository interface {
	FirstOrCreateByName(tx *gorm.DB, name string) (*Tag, error)
	AttachToPost(tx *gorm.DB, postID uint64, tagIDs []uint64) error
}

type repo struct{}

func NewRepository() Repository { return &repo{} }

func (r *repo) FirstOrCreateByName(tx *gorm.DB, name string) (*Tag, error) {
	t := &Tag{Name: name}
	if err := tx.FirstOrCreate(t, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repo) AttachToPost(tx *gorm.DB, postID uint64, tagIDs []uint64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]PostTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		rows = append(rows, PostTag{PostID: postID, TagID: id})
	}
	return tx.Create(&rows).Error
}
