// Package snapshot implements the snapshot and VM operations, composing
// the cluster resolver with the task waiter.
package snapshot

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/liberodark/pve-tool/pkg/audit"
	"github.com/liberodark/pve-tool/pkg/metrics"
	"github.com/liberodark/pve-tool/pkg/progress"
	"github.com/liberodark/pve-tool/pkg/proxmox/cluster"
	"github.com/liberodark/pve-tool/pkg/proxmox/task"
)

// API is the transport surface the operations need.
type API interface {
	Get(ctx context.Context, path string, out any) error
	PostForm(ctx context.Context, path string, form url.Values, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Manager implements the public operations. Each one resolves the VM,
// performs calls scoped to its (node, vmid), and for state-changing calls
// hands the returned task handle to the waiter.
type Manager struct {
	api     API
	cluster *cluster.Manager
	waiter  *task.Waiter
	auditor *audit.Logger
	out     io.Writer
}

// Option customizes a Manager.
type Option func(*Manager)

// WithOutput redirects user-facing progress output.
func WithOutput(w io.Writer) Option {
	return func(m *Manager) { m.out = w }
}

// WithAudit attaches an audit trail for state-changing operations.
func WithAudit(l *audit.Logger) Option {
	return func(m *Manager) { m.auditor = l }
}

// WithWaiter replaces the default task waiter.
func WithWaiter(w *task.Waiter) Option {
	return func(m *Manager) { m.waiter = w }
}

// NewManager creates a Manager over the given transport.
func NewManager(api API, opts ...Option) *Manager {
	m := &Manager{
		api:     api,
		cluster: cluster.NewManager(api),
		waiter:  task.NewWaiter(api),
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Cluster exposes the resolver for inventory-only commands.
func (m *Manager) Cluster() *cluster.Manager {
	return m.cluster
}

// CreateOptions carries the optional create-snapshot parameters.
type CreateOptions struct {
	Name        string
	Description string
	// VMState includes the VM memory and device state in the snapshot.
	VMState bool
}

// Create takes a snapshot of the VM and waits for the task to finish.
// Missing name and description default to timestamp-derived values.
func (m *Manager) Create(ctx context.Context, vm string, opts CreateOptions) (err error) {
	name := opts.Name
	if name == "" {
		name = time.Now().Format("snapshot-20060102-150405")
	}

	var (
		node  string
		vmid  int
		start = time.Now()
	)
	defer func() { m.record("create", vm, name, node, vmid, start, &err) }()

	node, vmid, err = m.cluster.FindVM(ctx, vm)
	if err != nil {
		return err
	}
	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("Snapshot created on %s", time.Now().Format("2006-01-02 15:04:05"))
	}

	form := url.Values{}
	form.Set("snapname", name)
	form.Set("description", description)
	if opts.VMState {
		form.Set("vmstate", "1")
	}

	var upid string
	if err = m.api.PostForm(ctx, fmt.Sprintf("/nodes/%s/qemu/%d/snapshot", node, vmid), form, &upid); err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Creating snapshot '%s' on node %s for VM %d...\n", name, node, vmid)
	return m.waitTask(ctx, "create", node, upid)
}

// Delete removes the named snapshot and waits for the task to finish.
func (m *Manager) Delete(ctx context.Context, vm, snapname string) (err error) {
	var (
		node  string
		vmid  int
		start = time.Now()
	)
	defer func() { m.record("delete", vm, snapname, node, vmid, start, &err) }()

	node, vmid, err = m.cluster.FindVM(ctx, vm)
	if err != nil {
		return err
	}

	var upid string
	if err = m.api.Delete(ctx, fmt.Sprintf("/nodes/%s/qemu/%d/snapshot/%s", node, vmid, snapname), &upid); err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Deleting snapshot '%s' on node %s for VM %d...\n", snapname, node, vmid)
	return m.waitTask(ctx, "delete", node, upid)
}

// Rollback reverts the VM to the named snapshot and waits for the task
// to finish.
func (m *Manager) Rollback(ctx context.Context, vm, snapname string) (err error) {
	var (
		node  string
		vmid  int
		start = time.Now()
	)
	defer func() { m.record("rollback", vm, snapname, node, vmid, start, &err) }()

	node, vmid, err = m.cluster.FindVM(ctx, vm)
	if err != nil {
		return err
	}

	var upid string
	if err = m.api.PostForm(ctx, fmt.Sprintf("/nodes/%s/qemu/%d/snapshot/%s/rollback", node, vmid, snapname), nil, &upid); err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Rolling back VM %d to snapshot '%s' on node %s...\n", vmid, snapname, node)
	return m.waitTask(ctx, "rollback", node, upid)
}

// Snapshot is one entry of a VM's snapshot list.
type Snapshot struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SnapTime    *int64 `json:"snaptime"`
}

// FormattedTime renders the creation timestamp, falling back to
// "Unknown" only when it is absent. Any in-range epoch value formats,
// including zero and negative ones.
func (s Snapshot) FormattedTime() string {
	if s.SnapTime == nil {
		return "Unknown"
	}
	return time.Unix(*s.SnapTime, 0).Format("2006-01-02 15:04:05")
}

// SnapshotList is the result of listing a VM's snapshots.
type SnapshotList struct {
	Node      string
	VMID      int
	Snapshots []Snapshot
}

// List fetches the VM's snapshots, excluding the "current" sentinel that
// represents the live VM state rather than a real snapshot.
func (m *Manager) List(ctx context.Context, vm string) (*SnapshotList, error) {
	node, vmid, err := m.cluster.FindVM(ctx, vm)
	if err != nil {
		return nil, err
	}

	var snapshots []Snapshot
	if err := m.api.Get(ctx, fmt.Sprintf("/nodes/%s/qemu/%d/snapshot", node, vmid), &snapshots); err != nil {
		return nil, err
	}

	result := &SnapshotList{Node: node, VMID: vmid}
	for _, s := range snapshots {
		if s.Name == "current" {
			continue
		}
		result.Snapshots = append(result.Snapshots, s)
	}
	return result, nil
}

// VMStatus is the current-status document with every field independently
// optional, so one missing field never hides the others.
type VMStatus struct {
	Node string `json:"-"`
	VMID int    `json:"-"`

	Name   *string  `json:"name"`
	Status *string  `json:"status"`
	CPU    *float64 `json:"cpu"`
	Mem    *uint64  `json:"mem"`
	MaxMem *uint64  `json:"maxmem"`
	Uptime *uint64  `json:"uptime"`
}

// CPUPercent reports CPU usage as a percentage of one core-fraction,
// unclamped per source data.
func (s *VMStatus) CPUPercent() (float64, bool) {
	if s.CPU == nil {
		return 0, false
	}
	return *s.CPU * 100, true
}

// MemPercent reports memory usage as used/max, undefined when either
// side is absent or max is zero.
func (s *VMStatus) MemPercent() (float64, bool) {
	if s.Mem == nil || s.MaxMem == nil || *s.MaxMem == 0 {
		return 0, false
	}
	return float64(*s.Mem) / float64(*s.MaxMem) * 100, true
}

// IsRunning reports whether the VM state is "running".
func (s *VMStatus) IsRunning() bool {
	return s.Status != nil && *s.Status == "running"
}

// UptimeParts decomposes the uptime into days, hours, and minutes; only
// defined while the VM is running.
func (s *VMStatus) UptimeParts() (days, hours, minutes uint64, ok bool) {
	if !s.IsRunning() || s.Uptime == nil {
		return 0, 0, 0, false
	}
	u := *s.Uptime
	return u / 86400, (u % 86400) / 3600, (u % 3600) / 60, true
}

// Status fetches the VM's current-status document.
func (m *Manager) Status(ctx context.Context, vm string) (*VMStatus, error) {
	node, vmid, err := m.cluster.FindVM(ctx, vm)
	if err != nil {
		return nil, err
	}

	var status VMStatus
	if err := m.api.Get(ctx, fmt.Sprintf("/nodes/%s/qemu/%d/status/current", node, vmid), &status); err != nil {
		return nil, err
	}
	status.Node = node
	status.VMID = vmid
	return &status, nil
}

// VMs lists cluster VM resources, optionally filtered to one node by
// exact match. An empty result is not an error.
func (m *Manager) VMs(ctx context.Context, nodeFilter string) ([]cluster.Resource, error) {
	resources, err := m.cluster.Resources(ctx)
	if err != nil {
		return nil, err
	}
	if nodeFilter == "" {
		return resources, nil
	}

	filtered := make([]cluster.Resource, 0, len(resources))
	for _, r := range resources {
		if r.Node == nodeFilter {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (m *Manager) waitTask(ctx context.Context, operation, node, upid string) error {
	ind := progress.NewTo(m.out)
	m.waiter.Progress = ind.Tick

	start := time.Now()
	err := m.waiter.Wait(ctx, node, upid)
	metrics.TaskWaitDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		ind.Fail(fmt.Sprintf("Task failed: %v", err))
		return err
	}
	ind.Success("Task completed successfully")
	return nil
}

func (m *Manager) record(operation, vm, snapname, node string, vmid int, start time.Time, err *error) {
	metrics.RecordOperation(operation, *err)
	m.auditor.Record(audit.Event{
		Operation:  operation,
		VM:         vm,
		Node:       node,
		VMID:       vmid,
		Snapshot:   snapname,
		Error:      *err,
		DurationMS: time.Since(start).Milliseconds(),
	})
}
