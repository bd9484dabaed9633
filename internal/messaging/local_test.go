package messaging

import (
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const testTimeout = 2 * time.Second

func receiveOne(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestNewMemoryPubSub(t *testing.T) {
	ch := NewMemoryChannel()
	pub := NewMemoryPublisher(ch, "notifications")
	sub := NewMemorySubscriber(ch, "notifications")
	if pub == nil {
		t.Fatal("expected non-nil publisher")
	}
	if sub == nil {
		t.Fatal("expected non-nil subscriber")
	}
}

func TestMemoryPublishAndSubscribe(t *testing.T) {
	ch := NewMemoryChannel()
	pub := NewMemoryPublisher(ch, "notifications")
	sub := NewMemorySubscriber(ch, "notifications")
	defer pub.Close()

	msgCh := sub.Subscribe()

	uuid := watermill.NewUUID()
	payload := []byte(`{"event_type":"temp_password_issued","email":"user@example.com"}`)
	err := pub.Publish(message.NewMessage(uuid, payload))
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	msg := receiveOne(t, msgCh)
	if msg.UUID != uuid {
		t.Errorf("expected UUID %s, got %s", uuid, msg.UUID)
	}
	if string(msg.Payload) != string(payload) {
		t.Errorf("expected payload %q, got %q", payload, msg.Payload)
	}
	msg.Ack()
}

func TestMemoryPublishMultipleMessages(t *testing.T) {
	ch := NewMemoryChannel()
	pub := NewMemoryPublisher(ch, "notifications")
	sub := NewMemorySubscriber(ch, "notifications")
	defer pub.Close()

	msgCh := sub.Subscribe()

	const count = 5
	expected := make(map[string]bool, count)
	for i := range count {
		uuid := watermill.NewUUID()
		expected[uuid] = false
		err := pub.Publish(message.NewMessage(uuid, []byte("msg")))
		if err != nil {
			t.Fatalf("Publish %d failed: %v", i, err)
		}
	}

	for range count {
		msg := receiveOne(t, msgCh)
		if _, ok := expected[msg.UUID]; !ok {
			t.Errorf("received unexpected UUID %s", msg.UUID)
		}
		expected[msg.UUID] = true
		msg.Ack()
	}

	for uuid, received := range expected {
		if !received {
			t.Errorf("message %s was never received", uuid)
		}
	}
}

func TestMemoryPublisherClose(t *testing.T) {
	ch := NewMemoryChannel()
	pub := NewMemoryPublisher(ch, "notifications")

	err := pub.Close()
	if err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	err = pub.Publish(message.NewMessage(watermill.NewUUID(), []byte("after-close")))
	if err == nil {
		t.Error("expected error when publishing after Close, got nil")
	}
}

func TestMemoryIndependentTopics(t *testing.T) {
	ch1 := NewMemoryChannel()
	pub1 := NewMemoryPublisher(ch1, "notifications")
	sub1 := NewMemorySubscriber(ch1, "notifications")
	defer pub1.Close()
	ch2 := NewMemoryChannel()
	pub2 := NewMemoryPublisher(ch2, "digests")
	sub2 := NewMemorySubscriber(ch2, "digests")
	defer pub2.Close()

	msgCh1 := sub1.Subscribe()
	msgCh2 := sub2.Subscribe()

	uuid := watermill.NewUUID()
	err := pub1.Publish(message.NewMessage(uuid, []byte("only-notifications")))
	if err != nil {
		t.Fatalf("Publish to notifications failed: %v", err)
	}

	msg := receiveOne(t, msgCh1)
	if msg.UUID != uuid {
		t.Errorf("expected UUID %s, got %s", uuid, msg.UUID)
	}
	msg.Ack()

	select {
	case m := <-msgCh2:
		t.Errorf("digests should not have received a message, got UUID %s", m.UUID)
	case <-time.After(200 * time.Millisecond):
	}
	_ = sub2.Close()
}
