package post

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"post-service/internal/shared/httpx"
	"post-service/internal/shared/jwt"
)

type stubService struct {
	createdBy uint64
	createdIn CreateReq
	post      *Post
	err       error
}

func (s *stubService) CreatePost(_ context.Context, userID uint64, req CreateReq) (*Post, error) {
	s.createdBy = userID
	s.createdIn = req
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

func (s *stubService) GetByID(context.Context, uint64) (*Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

func (s *stubService) ListByCommunity(context.Context, uint64, int) ([]Post, error) {
	return []Post{}, nil
}

func TestHandlerCreate_RequiresAuth(t *testing.T) {
	h := NewHandler(&stubService{})
	srv := httpx.AuthMiddleware(httpx.Wrap(h.Create))

	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerCreate_PassesUserFromToken(t *testing.T) {
	stub := &stubService{post: &Post{ID: 9, UserID: 3}}
	h := NewHandler(stub)
	srv := httpx.AuthMiddleware(httpx.Wrap(h.Create))

	tok, err := jwt.Make(3)
	require.NoError(t, err)

	body := `{"description":"hi","community_ids":[1,2]}`
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint64(3), stub.createdBy)
	assert.Equal(t, []uint64{1, 2}, stub.createdIn.CommunityIDs)
}

func TestHandlerGetByID_BadIDIsBadRequest(t *testing.T) {
	h := NewHandler(&stubService{})
	mux := http.NewServeMux()
	mux.Handle("GET /posts/{post_id}", httpx.Wrap(h.GetByID))

	req := httptest.NewRequest(http.MethodGet, "/posts/abc", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerListByCommunity_BadIDIsBadRequest(t *testing.T) {
	h := NewHandler(&stubService{})
	mux := http.NewServeMux()
	mux.Handle("GET /communities/{community_id}/posts", httpx.Wrap(h.ListByCommunity))

	req := httptest.NewRequest(http.MethodGet, "/communities/abc/posts", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerGetByID_NotFound(t *testing.T) {
	h := NewHandler(&stubService{err: gorm.ErrRecordNotFound})
	mux := http.NewServeMux()
	mux.Handle("GET /posts/{post_id}", httpx.Wrap(h.GetByID))

	req := httptest.NewRequest(http.MethodGet, "/posts/5", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
