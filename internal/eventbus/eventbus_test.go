package eventbus

import (
	"testing"
	"time"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	defer bus.Close()
	sub := bus.Subscribe()

	bus.Publish(PlanComputedEvent{Scope: "s1", Candidates: 3, TopScore: 88})

	select {
	case ev := <-sub:
		pc, ok := ev.(PlanComputedEvent)
		if !ok {
			t.Fatalf("unexpected event type %T", ev)
		}
		if pc.Scope != "s1" || pc.Candidates != 3 {
			t.Errorf("unexpected event %+v", pc)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()
	bus.Unsubscribe(sub)
	if _, open := <-sub; open {
		t.Error("channel should be closed after unsubscribe")
	}
	bus.Close()
}

func TestBusPublishAfterCloseIsNoop(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()
	bus.Close()
	bus.Publish(ConflictDetectedEvent{Scope: "s1"})
	if _, open := <-sub; open {
		t.Error("channel should be closed")
	}
}
