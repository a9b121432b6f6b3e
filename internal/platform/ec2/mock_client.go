package ec2

import "context"

// MockClient implements CloudManager for tests. Each method delegates to an
// optional Func field; unset fields fall back to benign defaults so tests
// only override what they assert on.
type MockClient struct {
	CreateVPCFunc             func(ctx context.Context, cidr string, tags map[string]string) (string, error)
	DeleteVPCFunc             func(ctx context.Context, vpcID string) error
	CreateInternetGatewayFunc func(ctx context.Context, vpcID string, tags map[string]string) (string, error)
	DeleteInternetGatewayFunc func(ctx context.Context, gatewayID, vpcID string) error
	CreateRouteTableFunc      func(ctx context.Context, vpcID, gatewayID string, tags map[string]string) (string, error)
	DeleteRouteTableFunc      func(ctx context.Context, routeTableID string) error
	CreateSubnetFunc          func(ctx context.Context, vpcID, routeTableID, cidr string, tags map[string]string) (string, error)
	DeleteSubnetFunc          func(ctx context.Context, subnetID string) error
	CreateSecurityGroupFunc   func(ctx context.Context, vpcID, name string, tags map[string]string) (string, error)
	DeleteSecurityGroupFunc   func(ctx context.Context, groupID string) error

	ImportKeyPairFunc func(ctx context.Context, name string, publicKey []byte, tags map[string]string) error
	DeleteKeyPairFunc func(ctx context.Context, name string) error

	RunInstanceFunc         func(ctx context.Context, opts InstanceRunOpts) (string, error)
	DescribeInstanceFunc    func(ctx context.Context, instanceID string) (*Instance, error)
	WaitInstanceExistsFunc  func(ctx context.Context, instanceID string) error
	WaitInstanceRunningFunc func(ctx context.Context, instanceID string) error
	TerminateInstanceFunc   func(ctx context.Context, instanceID string) error

	CreateVolumeFunc   func(ctx context.Context, availabilityZone string, sizeGiB int32, tags map[string]string) (string, error)
	DescribeVolumeFunc func(ctx context.Context, volumeID string) (*Volume, error)
	AttachVolumeFunc   func(ctx context.Context, volumeID, instanceID, device string) error
	DetachVolumeFunc   func(ctx context.Context, volumeID string) error
	DeleteVolumeFunc   func(ctx context.Context, volumeID string) error
}

func (m *MockClient) CreateVPC(ctx context.Context, cidr string, tags map[string]string) (string, error) {
	if m.CreateVPCFunc != nil {
		return m.CreateVPCFunc(ctx, cidr, tags)
	}
	return "vpc-mock", nil
}

func (m *MockClient) DeleteVPC(ctx context.Context, vpcID string) error {
	if m.DeleteVPCFunc != nil {
		return m.DeleteVPCFunc(ctx, vpcID)
	}
	return nil
}

func (m *MockClient) CreateInternetGateway(ctx context.Context, vpcID string, tags map[string]string) (string, error) {
	if m.CreateInternetGatewayFunc != nil {
		return m.CreateInternetGatewayFunc(ctx, vpcID, tags)
	}
	return "igw-mock", nil
}

func (m *MockClient) DeleteInternetGateway(ctx context.Context, gatewayID, vpcID string) error {
	if m.DeleteInternetGatewayFunc != nil {
		return m.DeleteInternetGatewayFunc(ctx, gatewayID, vpcID)
	}
	return nil
}

func (m *MockClient) CreateRouteTable(ctx context.Context, vpcID, gatewayID string, tags map[string]string) (string, error) {
	if m.CreateRouteTableFunc != nil {
		return m.CreateRouteTableFunc(ctx, vpcID, gatewayID, tags)
	}
	return "rtb-mock", nil
}

func (m *MockClient) DeleteRouteTable(ctx context.Context, routeTableID string) error {
	if m.DeleteRouteTableFunc != nil {
		return m.DeleteRouteTableFunc(ctx, routeTableID)
	}
	return nil
}

func (m *MockClient) CreateSubnet(ctx context.Context, vpcID, routeTableID, cidr string, tags map[string]string) (string, error) {
	if m.CreateSubnetFunc != nil {
		return m.CreateSubnetFunc(ctx, vpcID, routeTableID, cidr, tags)
	}
	return "subnet-mock", nil
}

func (m *MockClient) DeleteSubnet(ctx context.Context, subnetID string) error {
	if m.DeleteSubnetFunc != nil {
		return m.DeleteSubnetFunc(ctx, subnetID)
	}
	return nil
}

func (m *MockClient) CreateSecurityGroup(ctx context.Context, vpcID, name string, tags map[string]string) (string, error) {
	if m.CreateSecurityGroupFunc != nil {
		return m.CreateSecurityGroupFunc(ctx, vpcID, name, tags)
	}
	return "sg-mock", nil
}

func (m *MockClient) DeleteSecurityGroup(ctx context.Context, groupID string) error {
	if m.DeleteSecurityGroupFunc != nil {
		return m.DeleteSecurityGroupFunc(ctx, groupID)
	}
	return nil
}

func (m *MockClient) ImportKeyPair(ctx context.Context, name string, publicKey []byte, tags map[string]string) error {
	if m.ImportKeyPairFunc != nil {
		return m.ImportKeyPairFunc(ctx, name, publicKey, tags)
	}
	return nil
}

func (m *MockClient) DeleteKeyPair(ctx context.Context, name string) error {
	if m.DeleteKeyPairFunc != nil {
		return m.DeleteKeyPairFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) RunInstance(ctx context.Context, opts InstanceRunOpts) (string, error) {
	if m.RunInstanceFunc != nil {
		return m.RunInstanceFunc(ctx, opts)
	}
	return "i-mock", nil
}

func (m *MockClient) DescribeInstance(ctx context.Context, instanceID string) (*Instance, error) {
	if m.DescribeInstanceFunc != nil {
		return m.DescribeInstanceFunc(ctx, instanceID)
	}
	return &Instance{
		ID:               instanceID,
		State:            InstanceStateRunning,
		PublicIP:         "203.0.113.10",
		AvailabilityZone: "eu-west-1a",
		DeviceNames:      []string{"/dev/xvda"},
	}, nil
}

func (m *MockClient) WaitInstanceExists(ctx context.Context, instanceID string) error {
	if m.WaitInstanceExistsFunc != nil {
		return m.WaitInstanceExistsFunc(ctx, instanceID)
	}
	return nil
}

func (m *MockClient) WaitInstanceRunning(ctx context.Context, instanceID string) error {
	if m.WaitInstanceRunningFunc != nil {
		return m.WaitInstanceRunningFunc(ctx, instanceID)
	}
	return nil
}

func (m *MockClient) TerminateInstance(ctx context.Context, instanceID string) error {
	if m.TerminateInstanceFunc != nil {
		return m.TerminateInstanceFunc(ctx, instanceID)
	}
	return nil
}

func (m *MockClient) CreateVolume(ctx context.Context, availabilityZone string, sizeGiB int32, tags map[string]string) (string, error) {
	if m.CreateVolumeFunc != nil {
		return m.CreateVolumeFunc(ctx, availabilityZone, sizeGiB, tags)
	}
	return "vol-mock", nil
}

func (m *MockClient) DescribeVolume(ctx context.Context, volumeID string) (*Volume, error) {
	if m.DescribeVolumeFunc != nil {
		return m.DescribeVolumeFunc(ctx, volumeID)
	}
	return &Volume{ID: volumeID, State: VolumeStateAvailable}, nil
}

func (m *MockClient) AttachVolume(ctx context.Context, volumeID, instanceID, device string) error {
	if m.AttachVolumeFunc != nil {
		return m.AttachVolumeFunc(ctx, volumeID, instanceID, device)
	}
	return nil
}

func (m *MockClient) DetachVolume(ctx context.Context, volumeID string) error {
	if m.DetachVolumeFunc != nil {
		return m.DetachVolumeFunc(ctx, volumeID)
	}
	return nil
}

func (m *MockClient) DeleteVolume(ctx context.Context, volumeID string) error {
	if m.DeleteVolumeFunc != nil {
		return m.DeleteVolumeFunc(ctx, volumeID)
	}
	return nil
}
