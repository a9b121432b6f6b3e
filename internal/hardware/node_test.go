package hardware

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigcheck/rigcheck/internal/platform/ec2"
)

func testStack() *NetworkStack {
	return &NetworkStack{
		VPCID:           "vpc-1",
		GatewayID:       "igw-1",
		RouteTableID:    "rtb-1",
		SubnetID:        "subnet-1",
		SecurityGroupID: "sg-1",
		KeypairName:     "rig-key",
	}
}

func testNode(cloud ec2.CloudManager, role Role) *Node {
	return NewNode("rig-abcde-"+string(role)+"-0", role, nil, cloud,
		testStack(), testConfig(), "rig-abcde", testTimeouts(), zerolog.Nop())
}

func TestNodeBoot(t *testing.T) {
	t.Parallel()
	var runOpts ec2.InstanceRunOpts
	cloud := &ec2.MockClient{
		RunInstanceFunc: func(_ context.Context, opts ec2.InstanceRunOpts) (string, error) {
			runOpts = opts
			return "i-1", nil
		},
	}

	node := testNode(cloud, RoleMaster)
	require.NoError(t, node.Boot(context.Background()))

	assert.Equal(t, "i-1", node.InstanceID())
	assert.Equal(t, "ami-test", runOpts.ImageID)
	assert.Equal(t, "t3.medium", runOpts.InstanceType)
	assert.Equal(t, "subnet-1", runOpts.SubnetID)
	assert.Equal(t, "sg-1", runOpts.SecurityGroupID)
	assert.Equal(t, "rig-key", runOpts.KeyName)
	assert.Equal(t, node.Name(), runOpts.Tags["Name"])
	assert.Equal(t, "master", runOpts.Tags["rigcheck/role"])
}

func TestNodeBoot_ExistenceTimeout(t *testing.T) {
	t.Parallel()
	cloud := &ec2.MockClient{
		WaitInstanceExistsFunc: func(_ context.Context, id string) error {
			return assert.AnError
		},
	}

	node := testNode(cloud, RoleMaster)
	err := node.Boot(context.Background())

	require.Error(t, err)
	assert.True(t, IsExistenceTimeout(err))
}

func TestGetSSHIP_NeverBooted(t *testing.T) {
	t.Parallel()
	var describes atomic.Int32
	cloud := &ec2.MockClient{
		DescribeInstanceFunc: func(_ context.Context, id string) (*ec2.Instance, error) {
			describes.Add(1)
			return &ec2.Instance{ID: id}, nil
		},
	}

	node := testNode(cloud, RoleWorker)
	ip, err := node.GetSSHIP(context.Background())

	require.NoError(t, err)
	assert.Empty(t, ip)
	assert.Zero(t, describes.Load(), "an unbooted node must not poll")
}

func TestGetSSHIP_PollsUntilAssigned(t *testing.T) {
	t.Parallel()
	var describes atomic.Int32
	cloud := &ec2.MockClient{
		DescribeInstanceFunc: func(_ context.Context, id string) (*ec2.Instance, error) {
			n := describes.Add(1)
			snapshot := &ec2.Instance{ID: id, State: ec2.InstanceStateRunning}
			// IP appears on the third reload; the boot-time describe is
			// the first call.
			if n >= 3 {
				snapshot.PublicIP = "198.51.100.7"
			}
			return snapshot, nil
		},
	}

	node := testNode(cloud, RoleWorker)
	require.NoError(t, node.Boot(context.Background()))

	ip, err := node.GetSSHIP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.7", ip)
}

func TestGetSSHIP_BudgetExhausted(t *testing.T) {
	t.Parallel()
	cloud := &ec2.MockClient{
		DescribeInstanceFunc: func(_ context.Context, id string) (*ec2.Instance, error) {
			return &ec2.Instance{ID: id, State: ec2.InstanceStateRunning}, nil
		},
	}

	node := testNode(cloud, RoleWorker)
	require.NoError(t, node.Boot(context.Background()))

	_, err := node.GetSSHIP(context.Background())
	require.Error(t, err)
	assert.True(t, IsExistenceTimeout(err))
}

func TestDiskCreate_BeforeBoot(t *testing.T) {
	t.Parallel()
	node := testNode(&ec2.MockClient{}, RoleWorker)

	_, err := node.DiskCreate(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, IsPrecondition(err))
}

func TestDiskCreate(t *testing.T) {
	t.Parallel()
	var gotAZ string
	var gotSize int32
	cloud := &ec2.MockClient{
		DescribeInstanceFunc: func(_ context.Context, id string) (*ec2.Instance, error) {
			return &ec2.Instance{ID: id, State: ec2.InstanceStateRunning, AvailabilityZone: "eu-west-1b"}, nil
		},
		CreateVolumeFunc: func(_ context.Context, az string, size int32, _ map[string]string) (string, error) {
			gotAZ = az
			gotSize = size
			return "vol-1", nil
		},
	}

	node := testNode(cloud, RoleWorker)
	ctx := context.Background()
	require.NoError(t, node.Boot(ctx))

	name, err := node.DiskCreate(ctx, 10)
	require.NoError(t, err)

	assert.Contains(t, name, node.Name()+"-volume-")
	assert.Equal(t, "eu-west-1b", gotAZ)
	assert.Equal(t, int32(10), gotSize)
	assert.Equal(t, map[string]bool{name: false}, node.Disks(), "new disk registers un-attached")
}

func TestDiskAttach_SelectorValidation(t *testing.T) {
	t.Parallel()
	node := testNode(&ec2.MockClient{}, RoleWorker)
	ctx := context.Background()

	err := node.DiskAttach(ctx, "", "")
	require.Error(t, err)
	assert.True(t, IsPrecondition(err), "neither selector must fail")

	err = node.DiskAttach(ctx, "some-disk", "vol-1")
	require.Error(t, err)
	assert.True(t, IsPrecondition(err), "both selectors must fail")
}

func TestDiskAttach_UnknownName(t *testing.T) {
	t.Parallel()
	node := testNode(&ec2.MockClient{}, RoleWorker)

	err := node.DiskAttach(context.Background(), "no-such-disk", "")
	require.Error(t, err)
	assert.True(t, IsPrecondition(err))
}

func TestDiskAttach_PicksUnusedDevice(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	var attachedDevice string
	cloud := &ec2.MockClient{
		DescribeInstanceFunc: func(_ context.Context, id string) (*ec2.Instance, error) {
			return &ec2.Instance{
				ID:               id,
				State:            ec2.InstanceStateRunning,
				AvailabilityZone: "eu-west-1a",
				DeviceNames:      []string{"/dev/xvda", "/dev/xvdb"},
			}, nil
		},
		AttachVolumeFunc: func(_ context.Context, volumeID, instanceID, device string) error {
			mu.Lock()
			attachedDevice = device
			mu.Unlock()
			return nil
		},
	}

	node := testNode(cloud, RoleWorker)
	ctx := context.Background()
	require.NoError(t, node.Boot(ctx))
	name, err := node.DiskCreate(ctx, 10)
	require.NoError(t, err)

	require.NoError(t, node.DiskAttach(ctx, name, ""))

	assert.Equal(t, "/dev/xvdc", attachedDevice)
	assert.Equal(t, map[string]bool{name: true}, node.Disks())
}

func TestDiskAttach_ByVolumeID(t *testing.T) {
	t.Parallel()
	cloud := &ec2.MockClient{
		CreateVolumeFunc: func(context.Context, string, int32, map[string]string) (string, error) {
			return "vol-42", nil
		},
	}

	node := testNode(cloud, RoleWorker)
	ctx := context.Background()
	require.NoError(t, node.Boot(ctx))
	name, err := node.DiskCreate(ctx, 10)
	require.NoError(t, err)

	require.NoError(t, node.DiskAttach(ctx, "", "vol-42"))
	assert.Equal(t, map[string]bool{name: true}, node.Disks())
}

func TestDiskAttach_VolumeNeverAvailable(t *testing.T) {
	t.Parallel()
	cloud := &ec2.MockClient{
		DescribeVolumeFunc: func(_ context.Context, volumeID string) (*ec2.Volume, error) {
			return &ec2.Volume{ID: volumeID, State: ec2.VolumeStateCreating}, nil
		},
	}

	node := testNode(cloud, RoleWorker)
	ctx := context.Background()
	require.NoError(t, node.Boot(ctx))
	name, err := node.DiskCreate(ctx, 10)
	require.NoError(t, err)

	err = node.DiskAttach(ctx, name, "")
	require.Error(t, err)
	assert.True(t, IsAvailabilityTimeout(err))
	assert.Equal(t, map[string]bool{name: false}, node.Disks(), "failed attach must not mark the disk attached")
}

func TestDiskDetach(t *testing.T) {
	t.Parallel()
	var detached string
	cloud := &ec2.MockClient{
		DetachVolumeFunc: func(_ context.Context, volumeID string) error {
			detached = volumeID
			return nil
		},
	}

	node := testNode(cloud, RoleWorker)
	ctx := context.Background()
	require.NoError(t, node.Boot(ctx))
	name, err := node.DiskCreate(ctx, 10)
	require.NoError(t, err)
	require.NoError(t, node.DiskAttach(ctx, name, ""))

	require.NoError(t, node.DiskDetach(ctx, name))

	assert.Equal(t, "vol-mock", detached)
	assert.Equal(t, map[string]bool{name: false}, node.Disks())
}

func TestDiskDetach_UnknownName(t *testing.T) {
	t.Parallel()
	node := testNode(&ec2.MockClient{}, RoleWorker)

	err := node.DiskDetach(context.Background(), "no-such-disk")
	require.Error(t, err)
	assert.True(t, IsPrecondition(err))
}

func TestNodeDestroy(t *testing.T) {
	t.Parallel()
	var terminated, deleted []string
	var mu sync.Mutex
	cloud := &ec2.MockClient{
		TerminateInstanceFunc: func(_ context.Context, id string) error {
			mu.Lock()
			terminated = append(terminated, id)
			mu.Unlock()
			return nil
		},
		DeleteVolumeFunc: func(_ context.Context, volumeID string) error {
			mu.Lock()
			deleted = append(deleted, volumeID)
			mu.Unlock()
			return nil
		},
	}

	node := testNode(cloud, RoleWorker)
	ctx := context.Background()
	require.NoError(t, node.Boot(ctx))
	name, err := node.DiskCreate(ctx, 10)
	require.NoError(t, err)
	require.NoError(t, node.DiskAttach(ctx, name, ""))

	require.NoError(t, node.Destroy(ctx))

	assert.Equal(t, []string{"i-mock"}, terminated)
	assert.Equal(t, []string{"vol-mock"}, deleted, "attached disks are deleted too")
	assert.Empty(t, node.Disks())
	assert.Empty(t, node.InstanceID())
}

func TestNodeDestroy_NeverBooted(t *testing.T) {
	t.Parallel()
	var terminations atomic.Int32
	cloud := &ec2.MockClient{
		TerminateInstanceFunc: func(context.Context, string) error {
			terminations.Add(1)
			return nil
		},
	}

	node := testNode(cloud, RoleWorker)
	require.NoError(t, node.Destroy(context.Background()))
	assert.Zero(t, terminations.Load())
}

func TestNodeDestroy_ReportsVolumeDeleteFailure(t *testing.T) {
	t.Parallel()
	cloud := &ec2.MockClient{
		DeleteVolumeFunc: func(context.Context, string) error {
			return assert.AnError
		},
	}

	node := testNode(cloud, RoleWorker)
	ctx := context.Background()
	require.NoError(t, node.Boot(ctx))
	_, err := node.DiskCreate(ctx, 10)
	require.NoError(t, err)

	err = node.Destroy(ctx)
	assert.ErrorIs(t, err, assert.AnError)
}
