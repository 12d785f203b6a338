package task

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAPI serves a fixed sequence of task statuses, repeating the
// last one once the script is exhausted.
type scriptedAPI struct {
	statuses []taskStatus
	calls    int
	lastPath string
}

func (s *scriptedAPI) Get(ctx context.Context, path string, out any) error {
	s.lastPath = path
	idx := s.calls
	if idx >= len(s.statuses) {
		idx = len(s.statuses) - 1
	}
	s.calls++
	*out.(*taskStatus) = s.statuses[idx]
	return nil
}

func strptr(s string) *string { return &s }

func TestWaitSucceedsOnOKExitStatus(t *testing.T) {
	api := &scriptedAPI{statuses: []taskStatus{
		{Status: "running"},
		{Status: "running"},
		{Status: "stopped", ExitStatus: strptr("OK")},
	}}

	w := NewWaiter(api)
	w.Interval = time.Millisecond

	ticks := 0
	w.Progress = func() { ticks++ }

	require.NoError(t, w.Wait(context.Background(), "pve1", "UPID:pve1:0001:qmsnapshot:"))
	assert.Equal(t, 3, api.calls)
	assert.Equal(t, 2, ticks)
	assert.Equal(t, "/nodes/pve1/tasks/UPID:pve1:0001:qmsnapshot:/status", api.lastPath)
}

func TestWaitFailsWithRawExitText(t *testing.T) {
	api := &scriptedAPI{statuses: []taskStatus{
		{Status: "running"},
		{Status: "running"},
		{Status: "stopped", ExitStatus: strptr("job errored")},
	}}

	w := NewWaiter(api)
	w.Interval = time.Millisecond

	err := w.Wait(context.Background(), "pve1", "UPID:x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTaskFailed))
	assert.Contains(t, err.Error(), "job errored")
}

func TestWaitFailsOnAbsentExitStatus(t *testing.T) {
	api := &scriptedAPI{statuses: []taskStatus{
		{Status: "stopped"},
	}}

	err := NewWaiter(api).Wait(context.Background(), "pve1", "UPID:x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTaskFailed))
}

func TestWaitUnknownStatusIsProtocolError(t *testing.T) {
	api := &scriptedAPI{statuses: []taskStatus{
		{Status: "queued"},
	}}

	err := NewWaiter(api).Wait(context.Background(), "pve1", "UPID:x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProtocol))
	assert.Contains(t, err.Error(), "queued")
}

func TestWaitHonorsTimeout(t *testing.T) {
	api := &scriptedAPI{statuses: []taskStatus{
		{Status: "running"},
	}}

	w := NewWaiter(api)
	w.Interval = 2 * time.Millisecond
	w.Timeout = 20 * time.Millisecond

	err := w.Wait(context.Background(), "pve1", "UPID:x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestWaitHonorsCancellation(t *testing.T) {
	api := &scriptedAPI{statuses: []taskStatus{
		{Status: "running"},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWaiter(api)
	w.Interval = time.Second

	err := w.Wait(ctx, "pve1", "UPID:x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWaitPropagatesPollError(t *testing.T) {
	w := NewWaiter(failingAPI{})
	err := w.Wait(context.Background(), "pve1", "UPID:x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

type failingAPI struct{}

func (failingAPI) Get(ctx context.Context, path string, out any) error {
	return fmt.Errorf("request failed: %w", errors.New("connection refused"))
}
