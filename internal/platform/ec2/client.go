package ec2

import (
	"context"
)

// NetworkManager defines the interface for the shared network prerequisites.
// Creation calls block until the resource is usable by the next step.
type NetworkManager interface {
	// CreateVPC creates a VPC and waits until it reports available.
	CreateVPC(ctx context.Context, cidr string, tags map[string]string) (string, error)
	DeleteVPC(ctx context.Context, vpcID string) error

	// CreateInternetGateway creates a gateway and attaches it to the VPC.
	CreateInternetGateway(ctx context.Context, vpcID string, tags map[string]string) (string, error)
	// DeleteInternetGateway detaches the gateway from the VPC and deletes it.
	DeleteInternetGateway(ctx context.Context, gatewayID, vpcID string) error

	// CreateRouteTable creates a route table with a default route through
	// the gateway.
	CreateRouteTable(ctx context.Context, vpcID, gatewayID string, tags map[string]string) (string, error)
	DeleteRouteTable(ctx context.Context, routeTableID string) error

	// CreateSubnet creates a public subnet (auto-assigned public IPs)
	// associated with the route table.
	CreateSubnet(ctx context.Context, vpcID, routeTableID, cidr string, tags map[string]string) (string, error)
	DeleteSubnet(ctx context.Context, subnetID string) error

	// CreateSecurityGroup creates a security group permitting all ingress.
	CreateSecurityGroup(ctx context.Context, vpcID, name string, tags map[string]string) (string, error)
	DeleteSecurityGroup(ctx context.Context, groupID string) error
}

// KeyPairManager defines the interface for managing SSH keypairs.
type KeyPairManager interface {
	ImportKeyPair(ctx context.Context, name string, publicKey []byte, tags map[string]string) error
	DeleteKeyPair(ctx context.Context, name string) error
}

// InstanceManager defines the interface for compute instances.
type InstanceManager interface {
	// RunInstance launches exactly one instance and returns its ID.
	RunInstance(ctx context.Context, opts InstanceRunOpts) (string, error)
	// DescribeInstance returns a fresh snapshot of the instance.
	DescribeInstance(ctx context.Context, instanceID string) (*Instance, error)
	// WaitInstanceExists blocks until the instance record is visible.
	WaitInstanceExists(ctx context.Context, instanceID string) error
	// WaitInstanceRunning blocks until the instance is in a running state.
	WaitInstanceRunning(ctx context.Context, instanceID string) error
	// TerminateInstance terminates the instance and blocks until it reports
	// terminated.
	TerminateInstance(ctx context.Context, instanceID string) error
}

// VolumeManager defines the interface for block-storage volumes.
type VolumeManager interface {
	CreateVolume(ctx context.Context, availabilityZone string, sizeGiB int32, tags map[string]string) (string, error)
	DescribeVolume(ctx context.Context, volumeID string) (*Volume, error)
	AttachVolume(ctx context.Context, volumeID, instanceID, device string) error
	// DetachVolume requests detachment. It does not wait for completion.
	DetachVolume(ctx context.Context, volumeID string) error
	DeleteVolume(ctx context.Context, volumeID string) error
}

// CloudManager combines every provider capability the hardware layer needs.
type CloudManager interface {
	NetworkManager
	KeyPairManager
	InstanceManager
	VolumeManager
}
