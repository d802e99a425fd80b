package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// CommunityRef is the only community data that may leave the service in
// a push payload.
type CommunityRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PostPayload is released to every subscriber of a community channel,
// so it cannot carry anything that would need a per-viewer permission
// check. In particular it must never reveal the full community list of
// the post: each push gets Communities narrowed to the one community
// whose channel it goes to.
type PostPayload struct {
	ID          uint64         `json:"id"`
	UserID      uint64         `json:"user_id"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	Communities []CommunityRef `json:"communities"`
}

type envelope struct {
	Event string      `json:"event"`
	Data  PostPayload `json:"data"`
}

type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

func CommunityChannel(id uint64) string { return fmt.Sprintf("community:%d", id) }

type Dispatcher struct{ pub Publisher }

func NewDispatcher(pub Publisher) *Dispatcher { return &Dispatcher{pub: pub} }

// NewPost pushes one narrowed copy of the payload per community.
// Delivery is at most once; a failed push is reported but no copy is
// retried and remaining copies still go out.
func (d *Dispatcher) NewPost(ctx context.Context, p PostPayload) error {
	var errs []error
	for _, c := range p.Communities {
		narrowed := p
		narrowed.Communities = []CommunityRef{c}
		b, err := json.Marshal(envelope{Event: "newPost", Data: narrowed})
		if err != nil {
			errs = append(errs, fmt.Errorf("community %d: %w", c.ID, err))
			continue
		}
		if err := d.pub.Publish(ctx, CommunityChannel(c.ID), b); err != nil {
			errs = append(errs, fmt.Errorf("community %d: %w", c.ID, err))
		}
	}
	return errors.Join(errs...)
}
