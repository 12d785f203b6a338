// Package task polls asynchronous cluster tasks until they reach a
// terminal state.
package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// ErrTaskFailed marks a terminal task whose exit status was not OK.
	ErrTaskFailed = errors.New("task failed")
	// ErrProtocol marks a task status outside the known running/stopped set.
	ErrProtocol = errors.New("unknown task status")
)

// DefaultInterval is the fixed delay between status polls.
const DefaultInterval = 2 * time.Second

// API is the slice of the transport the waiter needs.
type API interface {
	Get(ctx context.Context, path string, out any) error
}

type taskStatus struct {
	Status     string  `json:"status"`
	ExitStatus *string `json:"exitstatus"`
}

// Waiter polls a task handle on its issuing node until the task stops.
type Waiter struct {
	api API

	// Interval is the delay between polls; zero means DefaultInterval.
	Interval time.Duration
	// Timeout bounds the whole wait; zero waits forever.
	Timeout time.Duration
	// Progress, when set, is called once per poll while the task runs.
	Progress func()
}

// NewWaiter creates a Waiter with the default fixed interval and no
// timeout, matching interactive use.
func NewWaiter(api API) *Waiter {
	return &Waiter{api: api}
}

// Wait blocks until the task identified by (node, upid) stops. A task
// handle is only meaningful on the node that issued it, so both must be
// supplied together. Success means the terminal exit status is exactly
// "OK"; any other value, including an absent one, is a task failure
// carrying the raw exit text. A status outside {running, stopped} is a
// protocol error. Cancelling the context aborts between polls.
func (w *Waiter) Wait(ctx context.Context, node, upid string) error {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	if w.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Timeout)
		defer cancel()
	}

	path := fmt.Sprintf("/nodes/%s/tasks/%s/status", node, upid)

	for {
		var status taskStatus
		if err := w.api.Get(ctx, path, &status); err != nil {
			return err
		}

		log.Debug().Str("node", node).Str("upid", upid).Str("status", status.Status).Msg("task poll")

		switch status.Status {
		case "stopped":
			if status.ExitStatus != nil && *status.ExitStatus == "OK" {
				return nil
			}
			exit := "<none>"
			if status.ExitStatus != nil {
				exit = *status.ExitStatus
			}
			return fmt.Errorf("%w: %s", ErrTaskFailed, exit)
		case "running":
			if w.Progress != nil {
				w.Progress()
			}
			select {
			case <-ctx.Done():
				return fmt.Errorf("waiting for task %s: %w", upid, ctx.Err())
			case <-time.After(interval):
			}
		default:
			return fmt.Errorf("%w: %q", ErrProtocol, status.Status)
		}
	}
}
