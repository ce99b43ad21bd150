package notify

import (
	"context"
	"sync"
	"time"

	"carsharing-backend/internal/logger"
)

type job struct {
	channelID string
	message   string
}

// Dispatcher sends notifications from a bounded queue on background workers.
// Callers never block and never see delivery errors; failures are logged.
type Dispatcher struct {
	sink    Sink
	timeout time.Duration
	jobs    chan job
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink, workers, queueSize int, timeout time.Duration) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	d := &Dispatcher{
		sink:    sink,
		timeout: timeout,
		jobs:    make(chan job, queueSize),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
	return d
}

// Dispatch enqueues a message. When the queue is full or the dispatcher is
// closed the message is dropped.
func (d *Dispatcher) Dispatch(channelID, message string) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		logger.Warn("Notification dropped after shutdown", "channel", channelID)
		return
	}
	select {
	case d.jobs <- job{channelID: channelID, message: message}:
	default:
		logger.Warn("Notification queue full, dropping message", "channel", channelID)
	}
}

// Close stops accepting messages and waits for queued ones to be sent.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	logger.Debug("Notification worker started", "worker", id)
	for j := range d.jobs {
		d.deliver(j)
	}
	logger.Debug("Notification worker stopped", "worker", id)
}

func (d *Dispatcher) deliver(j job) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Notification sink panicked", "channel", j.channelID, "panic", r)
		}
	}()

	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	if err := d.sink.Send(ctx, j.channelID, j.message); err != nil {
		logger.Error("Failed to send notification", "channel", j.channelID, "error", err)
	}
}
