package hardware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigcheck/rigcheck/internal/config"
	"github.com/rigcheck/rigcheck/internal/platform/ec2"
	"github.com/rigcheck/rigcheck/internal/workspace"
)

func testTimeouts() *config.Timeouts {
	return &config.Timeouts{
		IPAttempts:        3,
		IPInterval:        time.Millisecond,
		VolumeAttempts:    3,
		VolumeInterval:    time.Millisecond,
		DetachAttempts:    2,
		DetachInterval:    time.Millisecond,
		InstanceWait:      time.Second,
		NetworkWait:       time.Second,
		RetryMaxAttempts:  1,
		RetryInitialDelay: time.Millisecond,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		AWS: config.AWSConfig{
			Region:     "eu-west-1",
			AMIImageID: "ami-test",
			NodeSize:   "t3.medium",
			VPCCIDR:    "192.168.100.0/24",
			SubnetCIDR: "192.168.100.0/25",
		},
		Workspace: config.Workspace{Prefix: "rig"},
		Nodes: config.Nodes{
			WorkerInitialDataDisks: 2,
			InitialDiskCapacityGiB: 10,
		},
	}
}

func testWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.New("rig")
	require.NoError(t, err)
	return ws
}

// callRecorder captures provider call order across goroutines.
type callRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *callRecorder) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *callRecorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// recordingCloud wires every MockClient func to the recorder.
func recordingCloud(rec *callRecorder) *ec2.MockClient {
	return &ec2.MockClient{
		CreateVPCFunc: func(context.Context, string, map[string]string) (string, error) {
			rec.record("create-vpc")
			return "vpc-1", nil
		},
		CreateInternetGatewayFunc: func(context.Context, string, map[string]string) (string, error) {
			rec.record("create-gateway")
			return "igw-1", nil
		},
		CreateRouteTableFunc: func(context.Context, string, string, map[string]string) (string, error) {
			rec.record("create-routetable")
			return "rtb-1", nil
		},
		CreateSubnetFunc: func(context.Context, string, string, string, map[string]string) (string, error) {
			rec.record("create-subnet")
			return "subnet-1", nil
		},
		CreateSecurityGroupFunc: func(context.Context, string, string, map[string]string) (string, error) {
			rec.record("create-sg")
			return "sg-1", nil
		},
		ImportKeyPairFunc: func(context.Context, string, []byte, map[string]string) error {
			rec.record("import-keypair")
			return nil
		},
		DeleteKeyPairFunc: func(context.Context, string) error {
			rec.record("delete-keypair")
			return nil
		},
		DeleteSecurityGroupFunc: func(context.Context, string) error {
			rec.record("delete-sg")
			return nil
		},
		DeleteSubnetFunc: func(context.Context, string) error {
			rec.record("delete-subnet")
			return nil
		},
		DeleteRouteTableFunc: func(context.Context, string) error {
			rec.record("delete-routetable")
			return nil
		},
		DeleteInternetGatewayFunc: func(context.Context, string, string) error {
			rec.record("delete-gateway")
			return nil
		},
		DeleteVPCFunc: func(context.Context, string) error {
			rec.record("delete-vpc")
			return nil
		},
	}
}

func TestNetworkStack_CreateOrder(t *testing.T) {
	t.Parallel()
	rec := &callRecorder{}
	ws := testWorkspace(t)
	stack := NewNetworkStack(recordingCloud(rec), ws, &testConfig().AWS, zerolog.Nop())

	require.NoError(t, stack.Create(context.Background()))

	assert.Equal(t, []string{
		"create-vpc", "create-gateway", "create-routetable",
		"create-subnet", "create-sg", "import-keypair",
	}, rec.recorded())

	assert.Equal(t, "vpc-1", stack.VPCID)
	assert.Equal(t, "igw-1", stack.GatewayID)
	assert.Equal(t, "rtb-1", stack.RouteTableID)
	assert.Equal(t, "subnet-1", stack.SubnetID)
	assert.Equal(t, "sg-1", stack.SecurityGroupID)
	assert.Equal(t, ws.Name+"-key", stack.KeypairName)
}

func TestNetworkStack_DestroyReverseOrder(t *testing.T) {
	t.Parallel()
	rec := &callRecorder{}
	stack := NewNetworkStack(recordingCloud(rec), testWorkspace(t), &testConfig().AWS, zerolog.Nop())

	ctx := context.Background()
	require.NoError(t, stack.Create(ctx))
	rec.calls = nil

	require.NoError(t, stack.Destroy(ctx, false))

	assert.Equal(t, []string{
		"delete-keypair", "delete-sg", "delete-subnet",
		"delete-routetable", "delete-gateway", "delete-vpc",
	}, rec.recorded(), "teardown must be the exact reverse of creation")
}

func TestNetworkStack_CreateFailsFast(t *testing.T) {
	t.Parallel()
	rec := &callRecorder{}
	cloud := recordingCloud(rec)
	boom := errors.New("gateway quota exceeded")
	cloud.CreateInternetGatewayFunc = func(context.Context, string, map[string]string) (string, error) {
		return "", boom
	}

	stack := NewNetworkStack(cloud, testWorkspace(t), &testConfig().AWS, zerolog.Nop())
	err := stack.Create(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"create-vpc"}, rec.recorded(), "no step after the failure may run")
	assert.Equal(t, "vpc-1", stack.VPCID, "partially created resources stay recorded")
	assert.Empty(t, stack.GatewayID)
}

func TestNetworkStack_DestroyBestEffort(t *testing.T) {
	t.Parallel()
	rec := &callRecorder{}
	cloud := recordingCloud(rec)
	boom := errors.New("subnet has dependencies")
	cloud.DeleteSubnetFunc = func(context.Context, string) error {
		rec.record("delete-subnet")
		return boom
	}

	stack := NewNetworkStack(cloud, testWorkspace(t), &testConfig().AWS, zerolog.Nop())
	ctx := context.Background()
	require.NoError(t, stack.Create(ctx))
	rec.calls = nil

	err := stack.Destroy(ctx, false)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{
		"delete-keypair", "delete-sg", "delete-subnet",
		"delete-routetable", "delete-gateway", "delete-vpc",
	}, rec.recorded(), "a failed deletion must not stop the remaining ones")
}

func TestNetworkStack_DestroySkipDeletesNothing(t *testing.T) {
	t.Parallel()
	rec := &callRecorder{}
	stack := NewNetworkStack(recordingCloud(rec), testWorkspace(t), &testConfig().AWS, zerolog.Nop())

	ctx := context.Background()
	require.NoError(t, stack.Create(ctx))
	rec.calls = nil

	require.NoError(t, stack.Destroy(ctx, true))
	assert.Empty(t, rec.recorded(), "skip mode must not issue any deletions")
}
