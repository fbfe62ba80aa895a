package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/homehub/household-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher delivers user-removal notifications to the monitoring service
// asynchronously. Notifications are sharded by username using consistent
// hashing, so removals concerning the same account are delivered in order.
type Dispatcher struct {
	workers []chan string
	sink    ports.MonitoringNotifier
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers that
// forward notifications to sink. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.MonitoringNotifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// NotifyUserRemoved implements ports.MonitoringNotifier. The notification is
// enqueued to the worker responsible for the username and delivered in the
// background. The call never blocks: when the shard's buffer is full the
// notification is dropped with a warning, keeping the contract best-effort
// even after the workers have stopped.
func (d *Dispatcher) NotifyUserRemoved(_ context.Context, username string) error {
	select {
	case d.workers[d.shardIndex(username)] <- username:
	default:
		d.log.Warn().Str("username", username).Msg("notification queue full, dropping")
	}
	return nil
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case username, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.NotifyUserRemoved(ctx, username); err != nil {
				d.log.Warn().Err(err).
					Str("username", username).
					Int("worker_id", id).
					Msg("monitoring notification failed")
			}
		}
	}
}
