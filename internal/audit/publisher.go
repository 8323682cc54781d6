package audit

import (
	"context"

	"github.com/google/uuid"

	"certform/pkg/requestcontext"
)

// Publisher hands events to the background worker over a buffered channel so
// request handling never blocks on the audit sink. A full buffer drops the
// event rather than stalling the request; auditing is best effort here.
type Publisher struct {
	inbox chan Event
}

func NewPublisher(buffer int) *Publisher {
	return &Publisher{inbox: make(chan Event, buffer)}
}

// Emit stamps and queues an event. Returns false when the buffer was full
// and the event was dropped.
func (p *Publisher) Emit(ctx context.Context, event Event) bool {
	if p == nil {
		return false
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	select {
	case p.inbox <- event:
		return true
	default:
		return false
	}
}

// Events exposes the worker side of the channel.
func (p *Publisher) Events() <-chan Event {
	return p.inbox
}
