package tag

import (
	"strings"

	"gorm.io/gorm"
)

// Normalizer maps a caller-supplied topic name to its canonical form.
// Whether tag names are matched exactly or case-folded is a product
// decision, so it is a policy hook rather than hardcoded.
type Normalizer func(string) string

func ExactNames(name string) string { return strings.TrimSpace(name) }

func FoldedNames(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

type Service interface {
	// EnsureForPost resolves topic names to tags, creating missing ones,
	// and attaches them to the post inside the given transaction.
	EnsureForPost(tx *gorm.DB, postID uint64, names []string) ([]Tag, error)
}

type service struct {
	repo      Repository
	normalize Normalizer
}

type Option func(*service)

func WithNormalizer(fn Normalizer) Option {
	return func(s *service) { s.normalize = fn }
}

func NewService(r Repository, opts ...Option) Service {
	s := &service{repo: r, normalize: ExactNames}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) EnsureForPost(tx *gorm.DB, postID uint64, names []string) ([]Tag, error) {
	out := make([]Tag, 0, len(names))
	ids := make([]uint64, 0, len(names))
	seen := map[string]struct{}{}
	for _, n := range names {
		n = s.normalize(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		t, err := s.repo.FirstOrCreateByName(tx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
		ids = append(ids, t.ID)
	}
	if err := s.repo.AttachToPost(tx, postID, ids); err != nil {
		return nil, err
	}
	return out, nil
}
