package post

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"gorm.io/gorm"

	"post-service/internal/community"
	"post-service/internal/counter"
	"post-service/internal/kafka"
	"post-service/internal/notify"
	"post-service/internal/tag"
)

// Dispatcher is the realtime push boundary; *notify.Dispatcher is the
// production implementation.
type Dispatcher interface {
	NewPost(ctx context.Context, p notify.PostPayload) error
}

type Service interface {
	// CreatePost persists the post and its strict associations in one
	// transaction, then fans out counters, pushes and jobs. A best-effort
	// failure after commit does not fail the call.
	CreatePost(ctx context.Context, userID uint64, req CreateReq) (*Post, error)
	GetByID(ctx context.Context, id uint64) (*Post, error)
	ListByCommunity(ctx context.Context, communityID uint64, limit int) ([]Post, error)
}

type service struct {
	repo        Repository
	tags        tag.Service
	children    ChildApplier
	counters    counter.Reconciler
	dispatcher  Dispatcher
	jobs        kafka.Writer
	communities community.Repository
}

func NewService(
	repo Repository,
	tags tag.Service,
	children ChildApplier,
	counters counter.Reconciler,
	dispatcher Dispatcher,
	jobs kafka.Writer,
	communities community.Repository,
) Service {
	return &service{
		repo:        repo,
		tags:        tags,
		children:    children,
		counters:    counters,
		dispatcher:  dispatcher,
		jobs:        jobs,
		communities: communities,
	}
}

func (s *service) CreatePost(ctx context.Context, userID uint64, req CreateReq) (*Post, error) {
	p, err := BuildAttrs(userID, req)
	if err != nil {
		return nil, err
	}

	err = s.repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Create(tx, p); err != nil {
			return fmt.Errorf("insert post: %w", err)
		}
		return runStrict(s.strictEffects(tx, p, req))
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.afterCommit(ctx, p)
	return p, nil
}

// strictEffects is the ordered all-or-nothing group. Later steps read
// associations written by earlier ones, so the order is load-bearing.
func (s *service) strictEffects(tx *gorm.DB, p *Post, req CreateReq) []effect {
	followers := dedup(append(Mentions(p.Description), p.UserID))

	return []effect{
		{"attach communities", len(req.CommunityIDs) > 0, func() error {
			return s.repo.AttachCommunities(tx, p.ID, dedup(req.CommunityIDs))
		}},
		{"add followers", true, func() error {
			return s.repo.AddFollowers(tx, p.ID, followers)
		}},
		{"event rsvp", p.Type == TypeEvent, func() error {
			return s.repo.CreateInvitation(tx, &EventInvitation{
				EventID:   p.ID,
				UserID:    p.UserID,
				InviterID: p.UserID,
				Response:  ResponseYes,
			})
		}},
		// Legacy single-URL fields and the list forms are independent;
		// both apply when both are supplied.
		{"legacy image", req.ImageURL != "", func() error {
			return s.repo.CreateMedia(tx, &Media{PostID: p.ID, Kind: MediaImage, URL: req.ImageURL})
		}},
		{"legacy video", req.VideoURL != "", func() error {
			return s.repo.CreateMedia(tx, &Media{PostID: p.ID, Kind: MediaVideo, URL: req.VideoURL})
		}},
		{"image list", len(req.ImageURLs) > 0, func() error {
			return s.createMediaList(tx, p.ID, MediaImage, req.ImageURLs)
		}},
		{"file list", len(req.FileURLs) > 0, func() error {
			return s.createMediaList(tx, p.ID, MediaFile, req.FileURLs)
		}},
		{"children", len(req.Children) > 0, func() error {
			return s.children.Apply(tx, p, req.Children)
		}},
		{"docs", len(req.Docs) > 0, func() error {
			for i, d := range req.Docs {
				m := &Media{PostID: p.ID, Kind: MediaDoc, URL: d.URL, Name: d.Name, Position: i}
				if err := s.repo.CreateMedia(tx, m); err != nil {
					return err
				}
			}
			return nil
		}},
		{"project members", len(req.MemberIDs) > 0, func() error {
			return s.repo.ReplaceProjectMembers(tx, p.ID, dedup(req.MemberIDs))
		}},
		{"event invitees", len(req.EventInviteeIDs) > 0, func() error {
			return s.repo.ReplaceEventInvitees(tx, p.ID, p.UserID, dedup(req.EventInviteeIDs))
		}},
		{"tags", len(req.TopicNames) > 0, func() error {
			_, err := s.tags.EnsureForPost(tx, p.ID, req.TopicNames)
			return err
		}},
	}
}

func (s *service) createMediaList(tx *gorm.DB, postID uint64, kind string, urls []string) error {
	for i, url := range urls {
		m := &Media{PostID: postID, Kind: kind, URL: url, Position: i}
		if err := s.repo.CreateMedia(tx, m); err != nil {
			return err
		}
	}
	return nil
}

// afterCommit runs the best-effort group. Counters and the socket push
// depend on the finalized associations, so those are re-read here
// rather than taken from the request.
func (s *service) afterCommit(ctx context.Context, p *Post) {
	assoc, err := s.repo.Associations(ctx, p.ID)
	if err != nil {
		log.Printf("post %d: fanout load associations: %v", p.ID, err)
		fanoutFailures.WithLabelValues("load associations").Inc()
		return
	}

	payload := s.buildPayload(ctx, p, assoc)
	scope := counter.Scope{
		PostID:       p.ID,
		CreatorID:    p.UserID,
		CommunityIDs: assoc.CommunityIDs,
		TagIDs:       assoc.TagIDs,
	}
	key := strconv.FormatUint(p.ID, 10)

	runBestEffort(p.ID, []effect{
		{"counters", true, func() error {
			return s.counters.Reconcile(ctx, scope)
		}},
		{"push", len(payload.Communities) > 0, func() error {
			return s.dispatcher.NewPost(ctx, payload)
		}},
		{"activities job", true, func() error {
			return s.jobs.WriteJSON(ctx, key, kafka.NewJob(kafka.JobCreateActivities, p.ID))
		}},
		{"external notify job", true, func() error {
			return s.jobs.WriteJSON(ctx, key, kafka.NewJob(kafka.JobNotifyExternal, p.ID))
		}},
	})
}

func (s *service) buildPayload(ctx context.Context, p *Post, assoc Associations) notify.PostPayload {
	refs := make([]notify.CommunityRef, 0, len(assoc.CommunityIDs))
	found, err := s.communities.FindByIDs(ctx, assoc.CommunityIDs)
	if err != nil {
		log.Printf("post %d: fanout load communities: %v", p.ID, err)
	}
	byID := make(map[uint64]community.Community, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	for _, id := range assoc.CommunityIDs {
		ref := notify.CommunityRef{ID: id}
		if c, ok := byID[id]; ok {
			ref.Name = c.Name
			ref.Slug = c.Slug
		}
		refs = append(refs, ref)
	}
	return notify.PostPayload{
		ID:          p.ID,
		UserID:      p.UserID,
		Type:        p.Type,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		Communities: refs,
	}
}

func (s *service) GetByID(ctx context.Context, id uint64) (*Post, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListByCommunity(ctx context.Context, communityID uint64, limit int) ([]Post, error) {
	return s.repo.ListByCommunity(ctx, communityID, limit)
}
