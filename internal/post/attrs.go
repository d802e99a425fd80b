package post

// BuildAttrs merges caller-supplied fields over platform defaults and
// returns the canonical, not-yet-persisted post record. Caller values
// win; field-level constraints beyond presence of the owner are left to
// the storage layer.
func BuildAttrs(userID uint64, req CreateReq) (*Post, error) {
	if userID == 0 {
		return nil, &ValidationError{Field: "user_id"}
	}
	p := &Post{
		UserID:       userID,
		Type:         req.Type,
		Name:         req.Name,
		Description:  req.Description,
		Active:       true,
		Announcement: req.Announcement,
		Location:     req.Location,
	}
	if p.Type == "" {
		p.Type = TypeDiscussion
	}
	return p, nil
}

func dedup(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
