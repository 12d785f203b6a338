// Package cluster resolves VM identifiers against the cluster resource
// inventory and lists cluster nodes.
package cluster

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// ErrVMNotFound marks a VM identifier that matched no cluster resource.
var ErrVMNotFound = errors.New("not found in cluster")

// API is the read-only slice of the transport the cluster queries need.
type API interface {
	Get(ctx context.Context, path string, out any) error
}

// Resource is one VM entry from the cluster-wide inventory.
type Resource struct {
	Node   string   `json:"node"`
	VMID   int      `json:"vmid"`
	Name   string   `json:"name"`
	Status string   `json:"status"`
	Type   string   `json:"type"`
	CPU    *float64 `json:"cpu"`
	Mem    *uint64  `json:"mem"`
	MaxMem *uint64  `json:"maxmem"`
}

// Node is one entry of the node listing.
type Node struct {
	Name   string
	Status string
}

// Manager performs cluster-level queries.
type Manager struct {
	api API
}

// NewManager creates a Manager over the given transport.
func NewManager(api API) *Manager {
	return &Manager{api: api}
}

// Resources fetches the cluster-wide VM inventory, fresh on every call.
func (m *Manager) Resources(ctx context.Context) ([]Resource, error) {
	var resources []Resource
	if err := m.api.Get(ctx, "/cluster/resources?type=vm", &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// FindVM resolves a VM identifier to its owning node and numeric id.
// An identifier that parses as an unsigned integer is matched against
// vmids first; regardless of the numeric outcome an exact name match is
// tried next, so a numeric-looking name can still resolve.
func (m *Manager) FindVM(ctx context.Context, identifier string) (string, int, error) {
	resources, err := m.Resources(ctx)
	if err != nil {
		return "", 0, err
	}

	if vmid, err := strconv.ParseUint(identifier, 10, 32); err == nil {
		for _, r := range resources {
			if r.VMID == int(vmid) {
				return r.Node, r.VMID, nil
			}
		}
	}

	for _, r := range resources {
		if r.Name != "" && r.Name == identifier {
			return r.Node, r.VMID, nil
		}
	}

	return "", 0, fmt.Errorf("VM '%s' %w", identifier, ErrVMNotFound)
}

type nodeEntry struct {
	Node   string `json:"node"`
	Status string `json:"status"`
}

type statusEntry struct {
	Node   *string `json:"node"`
	Name   *string `json:"name"`
	Type   string  `json:"type"`
	Status *string `json:"status"`
}

// Nodes lists cluster nodes via GET /nodes, falling back to the
// cluster-status endpoint when that call fails. Fallback entries are
// filtered to type "node"; the display name comes from either the node
// or the name field and entries carrying neither are skipped.
func (m *Manager) Nodes(ctx context.Context) ([]Node, error) {
	var entries []nodeEntry
	if err := m.api.Get(ctx, "/nodes", &entries); err == nil {
		nodes := make([]Node, 0, len(entries))
		for _, e := range entries {
			nodes = append(nodes, Node{Name: e.Node, Status: e.Status})
		}
		return nodes, nil
	}

	var items []statusEntry
	if err := m.api.Get(ctx, "/cluster/status", &items); err != nil {
		return nil, err
	}

	var nodes []Node
	for _, item := range items {
		if item.Type != "node" {
			continue
		}
		name := item.Node
		if name == nil {
			name = item.Name
		}
		if name == nil {
			continue
		}
		status := "unknown"
		if item.Status != nil {
			status = *item.Status
		}
		nodes = append(nodes, Node{Name: *name, Status: status})
	}
	return nodes, nil
}
