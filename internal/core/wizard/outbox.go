package wizard

import (
	"context"
	"sync"

	"github.com/srgjo27/hall_booking/internal/core/domain"
	"github.com/srgjo27/hall_booking/internal/core/ports"
)

type ShakeSignal struct {
	Section domain.Section `json:"section"`
	Fields  []string       `json:"fields"`
}

// Outbox buffers notices and shake signals until the client collects them.
// Notices are forwarded to next as they arrive.
type Outbox struct {
	mu      sync.Mutex
	next    ports.Notifier
	notices []domain.Notice
	shakes  []ShakeSignal
}

func NewOutbox(next ports.Notifier) *Outbox {
	return &Outbox{next: next}
}

func (o *Outbox) Notify(ctx context.Context, notice domain.Notice) {
	o.mu.Lock()
	o.notices = append(o.notices, notice)
	o.mu.Unlock()

	if o.next != nil {
		o.next.Notify(ctx, notice)
	}
}

func (o *Outbox) Shake(section domain.Section, fields []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.shakes = append(o.shakes, ShakeSignal{Section: section, Fields: fields})
}

func (o *Outbox) Drain() ([]domain.Notice, []ShakeSignal) {
	o.mu.Lock()
	defer o.mu.Unlock()
	notices, shakes := o.notices, o.shakes
	o.notices, o.shakes = nil, nil
	return notices, shakes
}
