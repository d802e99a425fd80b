package post

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"post-service/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[CreateReq](r)
	if err != nil {
		return err
	}
	p, err := h.svc.CreatePost(r.Context(), uid, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusCreated)
	return nil
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.ParseUint(r.PathValue("post_id"), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid post id %q", r.PathValue("post_id"))
	}
	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.ErrNotFound
		}
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) ListByCommunity(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.ParseUint(r.PathValue("community_id"), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid community id %q", r.PathValue("community_id"))
	}
	limit := httpx.QueryInt(r, "limit", 20)
	out, err := h.svc.ListByCommunity(r.Context(), id, limit)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"posts": out}, http.StatusOK)
	return nil
}
