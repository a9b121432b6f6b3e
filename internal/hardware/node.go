package hardware

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rigcheck/rigcheck/internal/config"
	"github.com/rigcheck/rigcheck/internal/platform/ec2"
	"github.com/rigcheck/rigcheck/internal/util/naming"
	"github.com/rigcheck/rigcheck/internal/util/retry"
	"github.com/rigcheck/rigcheck/internal/util/tags"
)

// Role partitions the fleet into masters and workers.
type Role string

const (
	RoleMaster Role = "master"
	RoleWorker Role = "worker"
)

// disk tracks one volume owned by a node. The attached flag reflects the
// last successful attach/detach call, not necessarily live provider state.
type disk struct {
	volumeID string
	attached bool
}

// Node represents one compute instance plus its attached disks. A node owns
// boot, disk attach/detach, and destroy for itself; the shared subnet,
// security group, and keypair handles are read-only.
//
// Node methods are not safe for concurrent use. The orchestrator drives each
// node from a single goroutine.
type Node struct {
	name      string
	role      Role
	extraTags []string

	cloud    ec2.CloudManager
	ws       string
	image    string
	size     string
	subnetID string
	sgID     string
	keypair  string
	timeouts *config.Timeouts
	log      zerolog.Logger

	instance *ec2.Instance
	disks    map[string]*disk
}

// NewNode constructs an unbooted node. No provider resources exist until
// Boot is called.
func NewNode(name string, role Role, extraTags []string, cloud ec2.CloudManager, stack *NetworkStack, cfg *config.Config, ws string, timeouts *config.Timeouts, log zerolog.Logger) *Node {
	return &Node{
		name:      name,
		role:      role,
		extraTags: extraTags,
		cloud:     cloud,
		ws:        ws,
		image:     cfg.AWS.AMIImageID,
		size:      cfg.AWS.NodeSize,
		subnetID:  stack.SubnetID,
		sgID:      stack.SecurityGroupID,
		keypair:   stack.KeypairName,
		timeouts:  timeouts,
		log:       log.With().Str("node", name).Logger(),
		disks:     make(map[string]*disk),
	}
}

// Name returns the node's unique fleet name.
func (n *Node) Name() string {
	return n.name
}

// Role returns the node's fleet role.
func (n *Node) Role() Role {
	return n.role
}

// Tags returns the extra tags assigned at creation.
func (n *Node) Tags() []string {
	return n.extraTags
}

// InstanceID returns the provider instance ID, or "" before boot.
func (n *Node) InstanceID() string {
	if n.instance == nil {
		return ""
	}
	return n.instance.ID
}

// Disks returns a snapshot of the node's disk names and their attached flags.
func (n *Node) Disks() map[string]bool {
	out := make(map[string]bool, len(n.disks))
	for name, d := range n.disks {
		out[name] = d.attached
	}
	return out
}

// Boot launches the node's instance inside the shared subnet and security
// group and blocks until the provider confirms the instance record exists.
func (n *Node) Boot(ctx context.Context) error {
	tb := tags.NewBuilder(n.name, n.ws).WithRole(string(n.role))
	for _, tag := range n.extraTags {
		tb.With(tag, "true")
	}

	instanceID, err := n.cloud.RunInstance(ctx, ec2.InstanceRunOpts{
		ImageID:         n.image,
		InstanceType:    n.size,
		SubnetID:        n.subnetID,
		SecurityGroupID: n.sgID,
		KeyName:         n.keypair,
		Tags:            tb.Build(),
	})
	if err != nil {
		return fmt.Errorf("failed to boot node %s: %w", n.name, err)
	}

	if err := n.cloud.WaitInstanceExists(ctx, instanceID); err != nil {
		return fmt.Errorf("node %s instance %s: %w: %w", n.name, instanceID, ErrExistenceTimeout, err)
	}

	snapshot, err := n.cloud.DescribeInstance(ctx, instanceID)
	if err != nil {
		return fmt.Errorf("failed to describe booted node %s: %w", n.name, err)
	}
	n.instance = snapshot
	n.log.Info().Str("instance", instanceID).Msg("node booted")

	return nil
}

// GetSSHIP returns the instance's public address, polling until the provider
// assigns one. A node that was never booted returns "" immediately without
// polling; callers must treat the empty string as "not reachable".
func (n *Node) GetSSHIP(ctx context.Context) (string, error) {
	if n.instance == nil {
		return "", nil
	}
	if n.instance.PublicIP != "" {
		return n.instance.PublicIP, nil
	}

	err := retry.Poll(ctx, n.timeouts.IPAttempts, n.timeouts.IPInterval, func(ctx context.Context) (bool, error) {
		if err := n.reload(ctx); err != nil {
			return false, err
		}
		return n.instance.PublicIP != "", nil
	})
	if err != nil {
		if errors.Is(err, retry.ErrBudgetExhausted) {
			return "", fmt.Errorf("public IP for node %s: %w: %w", n.name, ErrExistenceTimeout, err)
		}
		return "", err
	}

	return n.instance.PublicIP, nil
}

// DiskCreate allocates a new volume in the instance's availability zone and
// registers it un-attached. The generated disk name is returned.
func (n *Node) DiskCreate(ctx context.Context, capacityGiB int32) (string, error) {
	if n.instance == nil {
		return "", fmt.Errorf("%w: no availability zone known until node %s boots", ErrPrecondition, n.name)
	}

	name := naming.Volume(n.name)
	volumeID, err := n.cloud.CreateVolume(ctx, n.instance.AvailabilityZone, capacityGiB,
		tags.NewBuilder(name, n.ws).Build())
	if err != nil {
		return "", fmt.Errorf("failed to create disk %s: %w", name, err)
	}

	n.disks[name] = &disk{volumeID: volumeID}
	n.log.Info().Str("disk", name).Str("volume", volumeID).Msg("disk created")

	return name, nil
}

// DiskAttach attaches a registered disk, selected by exactly one of name or
// volume ID. It blocks until the instance runs, polls until the volume
// reports available, then attaches it to the next unused device slot.
func (n *Node) DiskAttach(ctx context.Context, name, volumeID string) error {
	if (name == "") == (volumeID == "") {
		return fmt.Errorf("%w: specify exactly one of disk name or volume ID", ErrPrecondition)
	}

	name, d, err := n.resolveDisk(name, volumeID)
	if err != nil {
		return err
	}
	if n.instance == nil {
		return fmt.Errorf("%w: cannot attach disk %s before node %s boots", ErrPrecondition, name, n.name)
	}

	if err := n.cloud.WaitInstanceRunning(ctx, n.instance.ID); err != nil {
		return fmt.Errorf("node %s: %w", n.name, err)
	}

	err = retry.Poll(ctx, n.timeouts.VolumeAttempts, n.timeouts.VolumeInterval, func(ctx context.Context) (bool, error) {
		volume, err := n.cloud.DescribeVolume(ctx, d.volumeID)
		if err != nil {
			return false, err
		}
		return volume.State == ec2.VolumeStateAvailable, nil
	})
	if err != nil {
		if errors.Is(err, retry.ErrBudgetExhausted) {
			return fmt.Errorf("volume %s for disk %s: %w: %w", d.volumeID, name, ErrAvailabilityTimeout, err)
		}
		return err
	}

	// Reload before computing the slot so the used set reflects every
	// earlier attach on this instance.
	if err := n.reload(ctx); err != nil {
		return err
	}
	device, err := NextDeviceName(n.instance.DeviceNames)
	if err != nil {
		return fmt.Errorf("node %s: %w", n.name, err)
	}

	if err := n.cloud.AttachVolume(ctx, d.volumeID, n.instance.ID, device); err != nil {
		return err
	}
	d.attached = true
	n.log.Info().Str("disk", name).Str("device", device).Msg("disk attached")

	return n.reload(ctx)
}

// DiskDetach requests detachment of a disk by name. The provider-side detach
// is not awaited; callers needing certainty must poll the volume themselves.
func (n *Node) DiskDetach(ctx context.Context, name string) error {
	d, ok := n.disks[name]
	if !ok {
		return fmt.Errorf("%w: node %s has no disk named %s", ErrPrecondition, n.name, name)
	}

	if err := n.cloud.DetachVolume(ctx, d.volumeID); err != nil {
		return err
	}
	d.attached = false
	n.log.Info().Str("disk", name).Msg("disk detached")

	if n.instance != nil {
		return n.reload(ctx)
	}
	return nil
}

// ProvisionInitialDisks creates and attaches count data disks. The
// orchestrator invokes this on worker nodes right after boot.
func (n *Node) ProvisionInitialDisks(ctx context.Context, count int, capacityGiB int32) error {
	for i := 0; i < count; i++ {
		name, err := n.DiskCreate(ctx, capacityGiB)
		if err != nil {
			return err
		}
		if err := n.DiskAttach(ctx, name, ""); err != nil {
			return err
		}
	}
	return nil
}

// Destroy terminates the instance (waiting until terminated) and then
// deletes every disk the node owns, attached or not. Termination usually
// auto-detaches volumes; each deletion waits briefly for the volume to come
// free but proceeds regardless, so a slow detach surfaces as a reported
// deletion error rather than a hang. A node whose boot never produced an
// instance still deletes any disks created under its name.
func (n *Node) Destroy(ctx context.Context) error {
	if n.instance != nil {
		if err := n.cloud.TerminateInstance(ctx, n.instance.ID); err != nil {
			return fmt.Errorf("failed to terminate node %s: %w", n.name, err)
		}
		n.log.Info().Str("instance", n.instance.ID).Msg("instance terminated")
		n.instance = nil
	}

	var errs []error
	for name, d := range n.disks {
		n.awaitVolumeFree(ctx, d.volumeID)
		if err := n.cloud.DeleteVolume(ctx, d.volumeID); err != nil {
			errs = append(errs, fmt.Errorf("disk %s: %w", name, err))
			continue
		}
		n.log.Info().Str("disk", name).Str("volume", d.volumeID).Msg("deleted volume")
		delete(n.disks, name)
	}

	return errors.Join(errs...)
}

// awaitVolumeFree polls best-effort for the volume to leave in-use. Errors
// and budget exhaustion are ignored; the follow-up delete reports failures.
func (n *Node) awaitVolumeFree(ctx context.Context, volumeID string) {
	_ = retry.Poll(ctx, n.timeouts.DetachAttempts, n.timeouts.DetachInterval, func(ctx context.Context) (bool, error) {
		volume, err := n.cloud.DescribeVolume(ctx, volumeID)
		if err != nil {
			return true, nil
		}
		return volume.State != ec2.VolumeStateInUse, nil
	})
}

// reload refreshes the node's instance snapshot from the provider.
func (n *Node) reload(ctx context.Context) error {
	snapshot, err := n.cloud.DescribeInstance(ctx, n.instance.ID)
	if err != nil {
		return fmt.Errorf("failed to reload node %s: %w", n.name, err)
	}
	n.instance = snapshot
	return nil
}

// resolveDisk maps a selector (name or volume ID) to a registered disk.
func (n *Node) resolveDisk(name, volumeID string) (string, *disk, error) {
	if name != "" {
		d, ok := n.disks[name]
		if !ok {
			return "", nil, fmt.Errorf("%w: node %s has no disk named %s", ErrPrecondition, n.name, name)
		}
		return name, d, nil
	}

	for diskName, d := range n.disks {
		if d.volumeID == volumeID {
			return diskName, d, nil
		}
	}
	return "", nil, fmt.Errorf("%w: node %s has no disk with volume %s", ErrPrecondition, n.name, volumeID)
}
