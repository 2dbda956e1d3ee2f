package items

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/let-userName-Brian/language-learner-sub000/internal/models"
)

// MediaWriter is the slice of the item store the propagator needs.
type MediaWriter interface {
	SetMediaField(ctx context.Context, itemID uuid.UUID, dialectKey, url string) error
}

// Propagator pushes freshly resolved audio URLs into lesson items off the
// request path. Updates are fire-and-forget: a failure is logged and the
// synthesis response is unaffected.
type Propagator struct {
	store   MediaWriter
	updates chan update
}

type update struct {
	itemID  uuid.UUID
	dialect models.Dialect
	url     string
}

func NewPropagator(store MediaWriter) *Propagator {
	p := &Propagator{
		store:   store,
		updates: make(chan update, 256),
	}
	go p.processLoop()
	return p
}

func (p *Propagator) Enqueue(itemID uuid.UUID, d models.Dialect, url string) {
	select {
	case p.updates <- update{itemID: itemID, dialect: d, url: url}:
	default:
		slog.Warn("audio reference queue full, dropping", "item_id", itemID, "dialect", d)
	}
}

func (p *Propagator) processLoop() {
	for u := range p.updates {
		p.apply(u)
	}
}

func (p *Propagator) apply(u update) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.store.SetMediaField(ctx, u.itemID, string(u.dialect), u.url); err != nil {
		slog.Warn("audio reference update failed",
			"item_id", u.itemID, "dialect", u.dialect, "error", err)
	}
}
