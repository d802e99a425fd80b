package post

import "gorm.io/gorm"

// ChildApplier materializes nested child requests supplied with a
// creation. The structure of a child is owned by the caller; this side
// only persists it under the parent inside the same transaction.
type ChildApplier interface {
	Apply(tx *gorm.DB, parent *Post, children []ChildReq) error
}

type childApplier struct{}

func NewChildApplier() ChildApplier { return &childApplier{} }

func (childApplier) Apply(tx *gorm.DB, parent *Post, children []ChildReq) error {
	for _, c := range children {
		child := Post{
			UserID:       parent.UserID,
			Type:         TypeRequest,
			Name:         c.Name,
			Description:  c.Description,
			Active:       true,
			ParentPostID: &parent.ID,
		}
		if err := tx.Create(&child).Error; err != nil {
			return err
		}
	}
	return nil
}
