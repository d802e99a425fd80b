package post

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"post-service/internal/community"
	"post-service/internal/counter"
	"post-service/internal/kafka"
	"post-service/internal/notify"
	"post-service/internal/tag"
)

type fakeRepo struct {
	failStep string

	created     []*Post
	communities map[uint64][]uint64
	followers   map[uint64][]uint64
	invitations []EventInvitation
	media       []Media
	members     map[uint64][]uint64
	invitees    map[uint64][]uint64

	assoc    Associations
	assocErr error

	rolledBack bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		communities: map[uint64][]uint64{},
		followers:   map[uint64][]uint64{},
		members:     map[uint64][]uint64{},
		invitees:    map[uint64][]uint64{},
	}
}

func (f *fakeRepo) fail(step string) error {
	if f.failStep == step {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeRepo) InTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	if err := fn(nil); err != nil {
		f.rolledBack = true
		return err
	}
	return nil
}

func (f *fakeRepo) Create(_ *gorm.DB, p *Post) error {
	if err := f.fail("create"); err != nil {
		return err
	}
	p.ID = uint64(len(f.created) + 100)
	f.created = append(f.created, p)
	return nil
}

func (f *fakeRepo) AttachCommunities(_ *gorm.DB, postID uint64, ids []uint64) error {
	if err := f.fail("communities"); err != nil {
		return err
	}
	f.communities[postID] = append(f.communities[postID], ids...)
	return nil
}

func (f *fakeRepo) AddFollowers(_ *gorm.DB, postID uint64, ids []uint64) error {
	if err := f.fail("followers"); err != nil {
		return err
	}
	f.followers[postID] = append(f.followers[postID], ids...)
	return nil
}

func (f *fakeRepo) CreateInvitation(_ *gorm.DB, inv *EventInvitation) error {
	if err := f.fail("invitation"); err != nil {
		return err
	}
	f.invitations = append(f.invitations, *inv)
	return nil
}

func (f *fakeRepo) CreateMedia(_ *gorm.DB, m *Media) error {
	if err := f.fail("media"); err != nil {
		return err
	}
	f.media = append(f.media, *m)
	return nil
}

func (f *fakeRepo) ReplaceProjectMembers(_ *gorm.DB, postID uint64, ids []uint64) error {
	f.members[postID] = ids
	return nil
}

func (f *fakeRepo) ReplaceEventInvitees(_ *gorm.DB, postID, inviterID uint64, ids []uint64) error {
	f.invitees[postID] = ids
	return nil
}

func (f *fakeRepo) Associations(context.Context, uint64) (Associations, error) {
	return f.assoc, f.assocErr
}

func (f *fakeRepo) FindByID(context.Context, uint64) (*Post, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListByCommunity(context.Context, uint64, int) ([]Post, error) {
	return nil, nil
}

type fakeTags struct {
	names []string
	err   error
}

func (f *fakeTags) EnsureForPost(_ *gorm.DB, _ uint64, names []string) ([]tag.Tag, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.names = append(f.names, names...)
	out := make([]tag.Tag, len(names))
	for i, n := range names {
		out[i] = tag.Tag{ID: uint64(i + 1), Name: n}
	}
	return out, nil
}

type fakeChildren struct {
	applied []ChildReq
	err     error
}

func (f *fakeChildren) Apply(_ *gorm.DB, _ *Post, children []ChildReq) error {
	if f.err != nil {
		return f.err
	}
	f.applied = append(f.applied, children...)
	return nil
}

type fakeCounters struct {
	scopes []counter.Scope
	err    error
}

func (f *fakeCounters) Reconcile(_ context.Context, s counter.Scope) error {
	f.scopes = append(f.scopes, s)
	return f.err
}

type fakeDispatcher struct {
	payloads []notify.PostPayload
	err      error
}

func (f *fakeDispatcher) NewPost(_ context.Context, p notify.PostPayload) error {
	f.payloads = append(f.payloads, p)
	return f.err
}

type fakeJobs struct {
	mu   sync.Mutex
	jobs []kafka.Job
	err  error
}

func (f *fakeJobs) WriteJSON(_ context.Context, _ string, v any) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, v.(kafka.Job))
	return nil
}

func (f *fakeJobs) Close() error { return nil }

type fakeCommunities struct{ rows []community.Community }

func (f *fakeCommunities) FindByIDs(context.Context, []uint64) ([]community.Community, error) {
	return f.rows, nil
}

type fixture struct {
	repo       *fakeRepo
	tags       *fakeTags
	children   *fakeChildren
	counters   *fakeCounters
	dispatcher *fakeDispatcher
	jobs       *fakeJobs
	svc        Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:       newFakeRepo(),
		tags:       &fakeTags{},
		children:   &fakeChildren{},
		counters:   &fakeCounters{},
		dispatcher: &fakeDispatcher{},
		jobs:       &fakeJobs{},
	}
	f.svc = NewService(
		f.repo, f.tags, f.children, f.counters,
		f.dispatcher, f.jobs, &fakeCommunities{},
	)
	return f
}

func TestCreatePost_FollowersIncludeCreatorAndMentions(t *testing.T) {
	f := newFixture()

	desc := `cc <a data-user-id="5">a</a> <a data-user-id="5">a</a> <a data-user-id="9">b</a>`
	p, err := f.svc.CreatePost(context.Background(), 3, CreateReq{Description: desc})
	require.NoError(t, err)

	assert.ElementsMatch(t, []uint64{5, 9, 3}, f.repo.followers[p.ID])
}

func TestCreatePost_CreatorSelfMentionNotDuplicated(t *testing.T) {
	f := newFixture()

	p, err := f.svc.CreatePost(context.Background(), 3, CreateReq{
		Description: `<a data-user-id="3">me</a>`,
	})
	require.NoError(t, err)

	assert.Equal(t, []uint64{3}, f.repo.followers[p.ID])
}

func TestCreatePost_EventRSVPForCreatorOnly(t *testing.T) {
	f := newFixture()

	p, err := f.svc.CreatePost(context.Background(), 3, CreateReq{
		Type:            TypeEvent,
		EventInviteeIDs: []uint64{7, 8},
	})
	require.NoError(t, err)

	require.Len(t, f.repo.invitations, 1)
	inv := f.repo.invitations[0]
	assert.Equal(t, p.ID, inv.EventID)
	assert.Equal(t, uint64(3), inv.UserID)
	assert.Equal(t, uint64(3), inv.InviterID)
	assert.Equal(t, ResponseYes, inv.Response)
	assert.Equal(t, []uint64{7, 8}, f.repo.invitees[p.ID])
}

func TestCreatePost_NoRSVPForNonEvent(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreatePost(context.Background(), 3, CreateReq{Type: TypeProject})
	require.NoError(t, err)
	assert.Empty(t, f.repo.invitations)
}

func TestCreatePost_CommunityIDsDeduplicated(t *testing.T) {
	f := newFixture()

	p, err := f.svc.CreatePost(context.Background(), 3, CreateReq{
		CommunityIDs: []uint64{1, 2, 1, 2},
	})
	require.NoError(t, err)

	assert.Equal(t, []uint64{1, 2}, f.repo.communities[p.ID])
}

func TestCreatePost_MediaListOrdering(t *testing.T) {
	f := newFixture()

	p, err := f.svc.CreatePost(context.Background(), 3, CreateReq{
		ImageURLs: []string{"u1", "u2"},
	})
	require.NoError(t, err)

	require.Len(t, f.repo.media, 2)
	assert.Equal(t, Media{PostID: p.ID, Kind: MediaImage, URL: "u1", Position: 0}, f.repo.media[0])
	assert.Equal(t, Media{PostID: p.ID, Kind: MediaImage, URL: "u2", Position: 1}, f.repo.media[1])
}

func TestCreatePost_LegacyAndListMediaBothApply(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreatePost(context.Background(), 3, CreateReq{
		ImageURL:  "legacy",
		VideoURL:  "vid",
		ImageURLs: []string{"u1"},
		FileURLs:  []string{"f1"},
		Docs:      []Doc{{URL: "d1", Name: "notes"}, {URL: "d2", Name: "plan"}},
	})
	require.NoError(t, err)

	kinds := map[string]int{}
	for _, m := range f.repo.media {
		kinds[m.Kind]++
	}
	assert.Equal(t, map[string]int{
		MediaImage: 2, // legacy + list
		MediaVideo: 1,
		MediaFile:  1,
		MediaDoc:   2,
	}, kinds)

	var docs []Media
	for _, m := range f.repo.media {
		if m.Kind == MediaDoc {
			docs = append(docs, m)
		}
	}
	assert.Equal(t, "notes", docs[0].Name)
	assert.Equal(t, 0, docs[0].Position)
	assert.Equal(t, "plan", docs[1].Name)
	assert.Equal(t, 1, docs[1].Position)
}

func TestCreatePost_StrictFailureRollsBackAndSkipsFanout(t *testing.T) {
	f := newFixture()
	f.repo.failStep = "communities"

	_, err := f.svc.CreatePost(context.Background(), 3, CreateReq{
		CommunityIDs: []uint64{1},
	})
	require.Error(t, err)
	assert.True(t, f.repo.rolledBack)

	assert.Empty(t, f.counters.scopes)
	assert.Empty(t, f.dispatcher.payloads)
	assert.Empty(t, f.jobs.jobs)
}

func TestCreatePost_ValidationFailsBeforeAnyWrite(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreatePost(context.Background(), 0, CreateReq{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, f.repo.created)
}

func TestCreatePost_CounterScopeReadPostCommit(t *testing.T) {
	f := newFixture()
	// Deliberately different from the request to prove the reconciler
	// sees the re-fetched associations, not a pre-commit snapshot.
	f.repo.assoc = Associations{
		CommunityIDs: []uint64{11, 12},
		TagIDs:       []uint64{21},
	}

	p, err := f.svc.CreatePost(context.Background(), 3, CreateReq{
		CommunityIDs: []uint64{1},
	})
	require.NoError(t, err)

	require.Len(t, f.counters.scopes, 1)
	s := f.counters.scopes[0]
	assert.Equal(t, p.ID, s.PostID)
	assert.Equal(t, uint64(3), s.CreatorID)
	assert.Equal(t, []uint64{11, 12}, s.CommunityIDs)
	assert.Equal(t, []uint64{21}, s.TagIDs)
}

func TestCreatePost_EnqueuesBothJobs(t *testing.T) {
	f := newFixture()

	p, err := f.svc.CreatePost(context.Background(), 3, CreateReq{})
	require.NoError(t, err)

	require.Len(t, f.jobs.jobs, 2)
	types := map[string]uint64{}
	for _, j := range f.jobs.jobs {
		types[j.Type] = j.PostID
		assert.NotEmpty(t, j.ID)
	}
	assert.Equal(t, p.ID, types[kafka.JobCreateActivities])
	assert.Equal(t, p.ID, types[kafka.JobNotifyExternal])
}

func TestCreatePost_BestEffortFailuresDoNotFailCreation(t *testing.T) {
	f := newFixture()
	f.repo.assoc = Associations{CommunityIDs: []uint64{1}}
	f.dispatcher.err = errors.New("socket down")
	f.counters.err = errors.New("counter down")
	f.jobs.err = errors.New("broker down")

	p, err := f.svc.CreatePost(context.Background(), 3, CreateReq{
		CommunityIDs: []uint64{1},
	})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.NotZero(t, p.ID)
}

func TestCreatePost_AssociationReadFailureSkipsDependentSteps(t *testing.T) {
	f := newFixture()
	f.repo.assocErr = errors.New("read failed")

	_, err := f.svc.CreatePost(context.Background(), 3, CreateReq{})
	require.NoError(t, err)

	assert.Empty(t, f.counters.scopes)
	assert.Empty(t, f.dispatcher.payloads)
}

func TestCreatePost_PushSkippedWithoutCommunities(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreatePost(context.Background(), 3, CreateReq{})
	require.NoError(t, err)

	assert.Empty(t, f.dispatcher.payloads)
	// Counters still run; an unattached post just matches nothing.
	assert.Len(t, f.counters.scopes, 1)
}

func TestCreatePost_TagsAndChildrenAndMembers(t *testing.T) {
	f := newFixture()

	p, err := f.svc.CreatePost(context.Background(), 3, CreateReq{
		Type:       TypeProject,
		TopicNames: []string{"go", "infra"},
		MemberIDs:  []uint64{4, 4, 5},
		Children:   []ChildReq{{Name: "need hands"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "infra"}, f.tags.names)
	assert.Equal(t, []uint64{4, 5}, f.repo.members[p.ID])
	require.Len(t, f.children.applied, 1)
	assert.Equal(t, "need hands", f.children.applied[0].Name)
}

func TestCreatePost_TagFailureAbortsCreation(t *testing.T) {
	f := newFixture()
	f.tags.err = errors.New("tag store down")

	_, err := f.svc.CreatePost(context.Background(), 3, CreateReq{
		TopicNames: []string{"go"},
	})
	require.Error(t, err)
	assert.True(t, f.repo.rolledBack)
	assert.Empty(t, f.jobs.jobs)
}
