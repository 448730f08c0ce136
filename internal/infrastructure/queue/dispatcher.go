package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/fedmatch/marketplace/internal/api/metrics"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

type notice struct {
	receiverID string
	payload    ports.InboxNotice
}

// NoticeDispatcher decouples message writes from the push fan-out: Publish
// enqueues and returns immediately, a fixed set of workers does the actual
// publishing. Notices are sharded by receiver with consistent hashing so one
// receiver's notices keep their order.
type NoticeDispatcher struct {
	workers   []chan notice
	publisher ports.InboxPublisher
	log       zerolog.Logger
}

// NewNoticeDispatcher creates a dispatcher with numWorkers sharded workers
// in front of the given publisher. If numWorkers <= 0, defaultWorkers is used.
func NewNoticeDispatcher(numWorkers int, publisher ports.InboxPublisher, log zerolog.Logger) *NoticeDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &NoticeDispatcher{
		workers:   make([]chan notice, numWorkers),
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan notice, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *NoticeDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish enqueues the notice for asynchronous delivery. When the shard's
// buffer is full the notice is dropped rather than blocking the send path;
// push delivery is best-effort and the message itself is already persisted.
func (d *NoticeDispatcher) Publish(_ context.Context, receiverID string, n ports.InboxNotice) error {
	idx := d.shardIndex(receiverID)
	select {
	case d.workers[idx] <- notice{receiverID: receiverID, payload: n}:
	default:
		d.log.Warn().Str("receiver_id", receiverID).Msg("inbox notice dropped, worker queue full")
	}
	return nil
}

// shardIndex maps a receiver deterministically to a worker index.
func (d *NoticeDispatcher) shardIndex(receiverID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(receiverID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *NoticeDispatcher) runWorker(ctx context.Context, id int, ch <-chan notice) {
	depth := metrics.InboxNoticesQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			if err := d.publisher.Publish(ctx, n.receiverID, n.payload); err != nil {
				d.log.Warn().Err(err).
					Str("receiver_id", n.receiverID).
					Int("worker_id", id).
					Msg("inbox publish failed")
			}
		}
	}
}
