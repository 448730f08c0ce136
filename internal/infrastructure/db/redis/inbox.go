package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/fedmatch/marketplace/internal/core/ports"
)

// Inbox is the Redis pub/sub fan-out for message delivery notices. Each
// profile has its own channel; notices are JSON-encoded ports.InboxNotice
// payloads. Pub/sub is fire-and-forget: a receiver with no open connection
// simply misses the push and catches up from the store on next load.
type Inbox struct {
	client *redis.Client
}

func NewInbox(client *redis.Client) *Inbox {
	return &Inbox{client: client}
}

func inboxChannel(profileID string) string {
	return "inbox:" + profileID
}

// Publish pushes a notice onto the receiver's channel.
func (i *Inbox) Publish(ctx context.Context, receiverID string, notice ports.InboxNotice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal inbox notice: %w", err)
	}
	if err := i.client.Publish(ctx, inboxChannel(receiverID), payload).Err(); err != nil {
		return fmt.Errorf("publish inbox notice: %w", err)
	}
	return nil
}

// Subscribe opens a live feed on the receiver's channel. The returned
// subscription must be closed by the caller.
func (i *Inbox) Subscribe(ctx context.Context, receiverID string) (ports.InboxSubscription, error) {
	pubsub := i.client.Subscribe(ctx, inboxChannel(receiverID))

	// force the SUBSCRIBE round-trip so a dead connection fails here, not
	// silently in the relay loop
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe inbox: %w", err)
	}

	sub := &inboxSubscription{
		pubsub:  pubsub,
		notices: make(chan ports.InboxNotice),
		quit:    make(chan struct{}),
	}
	go sub.relay(pubsub.Channel())
	return sub, nil
}

type inboxSubscription struct {
	pubsub   *redis.PubSub
	notices  chan ports.InboxNotice
	quit     chan struct{}
	quitOnce sync.Once
}

// relay forwards decoded notices until the pubsub channel closes or the
// subscription is closed. The select keeps relay from blocking forever on a
// notice whose receiver has already gone away.
func (s *inboxSubscription) relay(msgs <-chan *redis.Message) {
	defer close(s.notices)
	for msg := range msgs {
		var notice ports.InboxNotice
		if err := json.Unmarshal([]byte(msg.Payload), &notice); err != nil {
			continue
		}
		select {
		case s.notices <- notice:
		case <-s.quit:
			return
		}
	}
}

func (s *inboxSubscription) Notices() <-chan ports.InboxNotice {
	return s.notices
}

func (s *inboxSubscription) Close() error {
	s.quitOnce.Do(func() { close(s.quit) })
	if s.pubsub == nil {
		return nil
	}
	return s.pubsub.Close()
}
