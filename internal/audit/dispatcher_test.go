package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *memorySink) Write(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestDispatcher_DeliversToEverySink(t *testing.T) {
	failing := &memorySink{err: errors.New("down")}
	ok := &memorySink{}

	d := NewDispatcher(zap.NewNop(), failing, ok)
	d.Record(Event{Action: "appointment_created", Entity: "appointment"})
	d.Record(Event{Action: "appointment_deleted", Entity: "appointment"})
	d.Close()

	if len(ok.events) != 2 || len(failing.events) != 2 {
		t.Fatalf("expected both sinks to see 2 events, got %d and %d", len(ok.events), len(failing.events))
	}
	if ok.events[0].OccurredAt.IsZero() {
		t.Fatal("OccurredAt should be stamped")
	}
	if ok.events[1].Action != "appointment_deleted" {
		t.Fatalf("events out of order: %+v", ok.events)
	}
}

func TestDispatcher_RecordAfterClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(zap.NewNop(), sink)
	d.Close()
	d.Close()

	d.Record(Event{Action: "appointment_created"})

	if len(sink.events) != 0 {
		t.Fatalf("no event should be delivered after Close, got %d", len(sink.events))
	}
}

func TestSplitBrokers(t *testing.T) {
	got := SplitBrokers(" kafka-1:9092, ,kafka-2:9092 ")
	if len(got) != 2 || got[0] != "kafka-1:9092" || got[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers %v", got)
	}
}
