// Package hub fans committed documents out to live Subscribe streams.
package hub

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/petzy/internal/server/metrics"
	"github.com/dmitrijs2005/petzy/internal/server/models"
)

const DefaultBuffer = 4

// Subscription receives every document committed for DocumentID after it
// was created. When the reader falls behind, older queued snapshots are
// replaced by newer ones.
type Subscription struct {
	ID         string
	DocumentID string
	C          <-chan *models.Document

	ch   chan *models.Document
	once sync.Once
}

type Hub struct {
	mu     sync.Mutex
	buffer int
	subs   map[string]map[string]*Subscription
}

func New(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{buffer: buffer, subs: make(map[string]map[string]*Subscription)}
}

func (h *Hub) Subscribe(documentID string) *Subscription {
	ch := make(chan *models.Document, h.buffer)
	sub := &Subscription{ID: uuid.NewString(), DocumentID: documentID, C: ch, ch: ch}

	h.mu.Lock()
	defer h.mu.Unlock()

	byID, ok := h.subs[documentID]
	if !ok {
		byID = make(map[string]*Subscription)
		h.subs[documentID] = byID
	}
	byID[sub.ID] = sub
	metrics.SubscriberAdded()

	return sub
}

// Unsubscribe detaches sub and closes its channel. Safe to call twice.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	sub.once.Do(func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if byID, ok := h.subs[sub.DocumentID]; ok {
			delete(byID, sub.ID)
			if len(byID) == 0 {
				delete(h.subs, sub.DocumentID)
			}
		}
		close(sub.ch)
		metrics.SubscriberRemoved()
	})
}

// Publish delivers doc to every subscriber of doc.ID without blocking.
func (h *Hub) Publish(doc *models.Document) {
	if doc == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs[doc.ID] {
		offer(sub.ch, doc)
	}
}

// Subscribers reports how many live subscriptions documentID has.
func (h *Hub) Subscribers(documentID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[documentID])
}

// offer enqueues doc, evicting the oldest queued snapshot when full. Callers
// hold h.mu, so there is a single producer per channel.
func offer(ch chan *models.Document, doc *models.Document) {
	for {
		select {
		case ch <- doc:
			return
		default:
		}
		select {
		case <-ch:
			metrics.SnapshotSuperseded()
		default:
		}
	}
}
