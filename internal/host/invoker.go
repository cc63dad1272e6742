package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvokerClosed is returned for commands submitted after Close.
var ErrInvokerClosed = errors.New("invoker is closed")

// command is a queued host call
type command struct {
	id    uuid.UUID
	name  string
	fn    func(ctx context.Context) error
	reply chan error // nil for fire-and-forget commands
}

// Invoker runs host commands one at a time, in the order they were
// submitted. A later command never starts before an earlier one finished,
// so a slow progress write cannot land after a newer one.
type Invoker struct {
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending []command
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

// NewInvoker starts the command worker
func NewInvoker(logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	inv := &Invoker{
		logger: logger.With("component", "invoker"),
		ctx:    ctx,
		cancel: cancel,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go inv.run()
	return inv
}

// Go queues a fire-and-forget command. Failures are logged, never retried.
func (inv *Invoker) Go(name string, fn func(ctx context.Context) error) error {
	return inv.submit(command{id: uuid.New(), name: name, fn: fn})
}

// Call queues a command and waits for it to run. If ctx ends first, Call
// returns ctx.Err() and the command still runs in its turn.
func Call[T any](ctx context.Context, inv *Invoker, name string, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	reply := make(chan error, 1)
	err := inv.submit(command{
		id:   uuid.New(),
		name: name,
		fn: func(ctx context.Context) error {
			v, err := fn(ctx)
			result = v
			return err
		},
		reply: reply,
	})
	if err != nil {
		return result, err
	}

	select {
	case err := <-reply:
		return result, err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (inv *Invoker) submit(cmd command) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.closed {
		return fmt.Errorf("%w: %s", ErrInvokerClosed, cmd.name)
	}
	inv.pending = append(inv.pending, cmd)

	select {
	case inv.wake <- struct{}{}:
	default:
	}
	return nil
}

// Close stops accepting commands, waits for queued ones to finish, and
// stops the worker.
func (inv *Invoker) Close() {
	inv.mu.Lock()
	if inv.closed {
		inv.mu.Unlock()
		<-inv.done
		return
	}
	inv.closed = true
	inv.mu.Unlock()

	select {
	case inv.wake <- struct{}{}:
	default:
	}
	<-inv.done
	inv.cancel()
}

// Pending returns the number of commands waiting to run
func (inv *Invoker) Pending() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return len(inv.pending)
}

func (inv *Invoker) run() {
	defer close(inv.done)

	for {
		inv.mu.Lock()
		if len(inv.pending) == 0 {
			closed := inv.closed
			inv.mu.Unlock()
			if closed {
				return
			}
			<-inv.wake
			continue
		}
		cmd := inv.pending[0]
		inv.pending[0] = command{}
		inv.pending = inv.pending[1:]
		inv.mu.Unlock()

		err := inv.exec(cmd)
		if cmd.reply != nil {
			cmd.reply <- err
		}
	}
}

// exec runs one command. A failing or panicking command releases the queue
// like a successful one.
func (inv *Invoker) exec(cmd command) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("command %s panicked: %v", cmd.name, r)
		}
		if err != nil {
			inv.logger.Error("host command failed", "command", cmd.name, "id", cmd.id, "error", err)
			return
		}
		inv.logger.Debug("host command done", "command", cmd.name, "id", cmd.id, "duration", time.Since(start))
	}()
	return cmd.fn(inv.ctx)
}
