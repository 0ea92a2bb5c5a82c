package metrics

import (
	"context"

	"exptracker/events"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// ledgerEventTypes are the committed ledger events counted by EventMetrics.
var ledgerEventTypes = []events.EventType{
	events.EventTypeUserCreated,
	events.EventTypeStarsAdded,
	events.EventTypeStarsSpent,
	events.EventTypeCharacterAdded,
	events.EventTypeCharacterDeleted,
	events.EventTypeLevelChanged,
}

// EventMetrics counts ledger events delivered after commit.
type EventMetrics struct {
	events *prometheus.CounterVec
}

// NewEventMetrics registers the event counter on the provided registerer.
func NewEventMetrics(reg prometheus.Registerer) *EventMetrics {
	if reg == nil {
		return &EventMetrics{}
	}
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_events_total",
		Help: "Committed ledger events by type.",
	}, []string{"type"})
	reg.MustRegister(counter)
	return &EventMetrics{events: counter}
}

// Subscribe counts every ledger event type emitted on bus.
func (m *EventMetrics) Subscribe(bus *events.Bus) {
	for _, eventType := range ledgerEventTypes {
		bus.Subscribe(eventType, m.handle)
	}
}

func (m *EventMetrics) handle(_ context.Context, event events.Event) {
	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"event":     event,
	}).Debug("Ledger event committed")

	if m == nil || m.events == nil {
		return
	}
	m.events.WithLabelValues(string(event.Type())).Inc()
}
