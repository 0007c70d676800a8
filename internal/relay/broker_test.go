package relay

import (
	"testing"
)

func TestBrokerFanOut(t *testing.T) {
	b := NewBroker()
	id1, ch1 := b.Subscribe()
	id2, ch2 := b.Subscribe()
	defer b.Unsubscribe(id1)
	defer b.Unsubscribe(id2)

	b.Publish(Event{Feed: FeedModal, Payload: "{}"})

	for i, ch := range []<-chan Event{ch1, ch2} {
		evt := <-ch
		if evt.Feed != FeedModal {
			t.Fatalf("subscriber %d got feed %q; want %q", i, evt.Feed, FeedModal)
		}
	}
}

func TestBrokerDropsForSlowSubscriber(t *testing.T) {
	b := NewBroker()
	id, _ := b.Subscribe()
	defer b.Unsubscribe(id)

	for i := 0; i < subscriberBufSize+3; i++ {
		b.Publish(Event{Feed: FeedBuyIntent})
	}
	if got := b.Dropped(); got != 3 {
		t.Fatalf("Dropped() = %d; want 3", got)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroker()
	id, ch := b.Subscribe()
	b.Unsubscribe(id)
	if _, ok := <-ch; ok {
		t.Fatal("channel still open after Unsubscribe")
	}
	if b.ClientCount() != 0 {
		t.Fatalf("ClientCount() = %d; want 0", b.ClientCount())
	}
	b.Unsubscribe(id)
}

func TestPublishJSON(t *testing.T) {
	b := NewBroker()
	id, ch := b.Subscribe()
	defer b.Unsubscribe(id)

	b.PublishJSON(FeedBuyIntent, map[string]string{"symbol": "GTCO"})
	evt := <-ch
	if evt.Payload != `{"symbol":"GTCO"}` {
		t.Fatalf("Payload = %s", evt.Payload)
	}
}

func TestParseFeeds(t *testing.T) {
	if ParseFeeds("") != nil || ParseFeeds(" , ") != nil {
		t.Fatal("blank feeds should yield nil filter")
	}
	f := ParseFeeds("modal, buy_intent")
	if !f.Accepts(FeedModal) || !f.Accepts(FeedBuyIntent) || f.Accepts("other") {
		t.Fatalf("ParseFeeds() = %v", f)
	}
	var all FeedFilter
	if !all.Accepts("anything") {
		t.Fatal("nil filter should accept every feed")
	}
}
