package worker

import (
	"github.com/staynest/rental-service/internal/events"
)

// Subscriber attaches its handlers to a dispatcher.
type Subscriber interface {
	Register(d events.Dispatcher)
}

// StartSubscribers registers every non-nil subscriber with the dispatcher.
func StartSubscribers(d events.Dispatcher, subscribers ...Subscriber) {
	if d == nil {
		return
	}
	for _, s := range subscribers {
		if s == nil {
			continue
		}
		s.Register(d)
	}
}
