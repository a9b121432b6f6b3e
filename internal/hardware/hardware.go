package hardware

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rigcheck/rigcheck/internal/config"
	"github.com/rigcheck/rigcheck/internal/platform/ec2"
	"github.com/rigcheck/rigcheck/internal/platform/ssh"
	"github.com/rigcheck/rigcheck/internal/util/async"
	"github.com/rigcheck/rigcheck/internal/util/naming"
	"github.com/rigcheck/rigcheck/internal/util/tags"
	"github.com/rigcheck/rigcheck/internal/workspace"
)

// Hardware owns one test environment: the shared network stack plus the
// fleet of nodes booted into it.
type Hardware struct {
	cloud    ec2.CloudManager
	cfg      *config.Config
	ws       *workspace.Workspace
	timeouts *config.Timeouts
	log      zerolog.Logger
	stack    *NetworkStack

	mu    sync.Mutex
	nodes map[string]*Node
}

// New creates a Hardware for the given workspace. The network stack is not
// provisioned until Prepare is called.
func New(cloud ec2.CloudManager, cfg *config.Config, ws *workspace.Workspace, log zerolog.Logger) *Hardware {
	timeouts := config.LoadTimeouts()
	return &Hardware{
		cloud:    cloud,
		cfg:      cfg,
		ws:       ws,
		timeouts: timeouts,
		log:      log.With().Str("component", "hardware").Str("workspace", ws.Name).Logger(),
		stack:    NewNetworkStack(cloud, ws, &cfg.AWS, log),
		nodes:    make(map[string]*Node),
	}
}

// WithTimeouts overrides the environment-derived wait budgets. Intended for
// tests that need millisecond polling.
func (h *Hardware) WithTimeouts(t *config.Timeouts) *Hardware {
	h.timeouts = t
	return h
}

// Stack returns the shared network stack.
func (h *Hardware) Stack() *NetworkStack {
	return h.stack
}

// Prepare provisions the shared network stack all nodes depend on.
func (h *Hardware) Prepare(ctx context.Context) error {
	return h.stack.Create(ctx)
}

// Node returns a tracked node by name.
func (h *Hardware) Node(name string) (*Node, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	node, ok := h.nodes[name]
	return node, ok
}

// Nodes returns a snapshot of all tracked nodes keyed by name.
func (h *Hardware) Nodes() map[string]*Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]*Node, len(h.nodes))
	for name, node := range h.nodes {
		out[name] = node
	}
	return out
}

// NodeSSH builds an SSH client for a tracked node, authenticated with the
// workspace key. The node must be booted and have a public address.
func (h *Hardware) NodeSSH(ctx context.Context, name string) (*ssh.Client, error) {
	node, ok := h.Node(name)
	if !ok {
		return nil, fmt.Errorf("node %s not found", name)
	}

	ip, err := node.GetSSHIP(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving address for node %s: %w", name, err)
	}
	if ip == "" {
		return nil, fmt.Errorf("%w: node %s has not been booted", ErrPrecondition, name)
	}

	return ssh.NewClient(&ssh.Config{
		Host:       ip,
		User:       h.cfg.Nodes.SSHUser,
		PrivateKey: h.ws.PrivateKey(),
	})
}

// NodeCreate constructs a node, registers it for teardown, and boots it.
// Registration happens before boot so a partial boot failure still leaves
// the node tracked and its resources reclaimable by Destroy.
func (h *Hardware) NodeCreate(ctx context.Context, name string, role Role, extraTags []string) (*Node, error) {
	node := NewNode(name, role, extraTags, h.cloud, h.stack, h.cfg, h.ws.Name, h.timeouts, h.log)

	h.mu.Lock()
	if _, exists := h.nodes[name]; exists {
		h.mu.Unlock()
		return nil, fmt.Errorf("node %s already exists", name)
	}
	h.nodes[name] = node
	h.mu.Unlock()

	if err := node.Boot(ctx); err != nil {
		return nil, err
	}
	return node, nil
}

// BootNodes boots the requested fleet: masters first by index, then
// workers, each in its own goroutine. The offset biases generated indices so
// an existing fleet can grow without name collisions. The first master
// (index 0, any offset) carries the first_master tag. Worker nodes get their
// initial data disks provisioned right after boot.
//
// All boots are awaited; every failure is reported after the whole batch
// finishes, so one bad node never hides sibling outcomes.
func (h *Hardware) BootNodes(ctx context.Context, masters, workers, offset int) error {
	var tasks []async.Task

	for m := 0; m < masters; m++ {
		extraTags := []string{}
		if m == 0 {
			extraTags = append(extraTags, tags.TagFirstMaster)
		}
		name := naming.Node(h.ws.Name, string(RoleMaster), m+offset)
		tasks = append(tasks, async.Task{
			Name: name,
			Func: func(ctx context.Context) error {
				_, err := h.NodeCreate(ctx, name, RoleMaster, extraTags)
				return err
			},
		})
	}

	for w := 0; w < workers; w++ {
		name := naming.Node(h.ws.Name, string(RoleWorker), w+offset)
		tasks = append(tasks, async.Task{
			Name: name,
			Func: func(ctx context.Context) error {
				node, err := h.NodeCreate(ctx, name, RoleWorker, nil)
				if err != nil {
					return err
				}
				return node.ProvisionInitialDisks(ctx,
					h.cfg.Nodes.WorkerInitialDataDisks,
					int32(h.cfg.Nodes.InitialDiskCapacityGiB))
			},
		})
	}

	h.log.Info().Int("masters", masters).Int("workers", workers).Int("offset", offset).Msg("booting fleet")
	return async.RunParallel(ctx, tasks)
}

// Destroy tears down the whole environment: nodes first (each releasing its
// instance and volumes, in parallel), then the network stack in reverse
// creation order. With skip set nothing is deleted; every live resource is
// reported for post-mortem inspection instead.
func (h *Hardware) Destroy(ctx context.Context, skip bool) error {
	nodes := h.Nodes()

	if skip {
		for name, node := range nodes {
			h.log.Warn().Str("node", name).Str("instance", node.InstanceID()).Msg("leaving node")
		}
		return h.stack.Destroy(ctx, true)
	}

	tasks := make([]async.Task, 0, len(nodes))
	for name, node := range nodes {
		name, node := name, node
		tasks = append(tasks, async.Task{
			Name: name,
			Func: func(ctx context.Context) error {
				if err := node.Destroy(ctx); err != nil {
					// Failed nodes stay tracked; their leftover
					// resources are still known for a later attempt.
					return err
				}
				h.mu.Lock()
				delete(h.nodes, name)
				h.mu.Unlock()
				return nil
			},
		})
	}

	var errs []error
	if err := async.RunParallel(ctx, tasks); err != nil {
		errs = append(errs, err)
	}

	// Node failures above do not block the network unwind; both outcomes
	// are reported together.
	if err := h.stack.Destroy(ctx, false); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
