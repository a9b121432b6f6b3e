package ec2

// Instance states as reported by the provider.
const (
	InstanceStatePending    = "pending"
	InstanceStateRunning    = "running"
	InstanceStateTerminated = "terminated"
)

// Volume states as reported by the provider.
const (
	VolumeStateCreating  = "creating"
	VolumeStateAvailable = "available"
	VolumeStateInUse     = "in-use"
)

// Instance is a point-in-time snapshot of a compute instance. It never
// updates itself; callers re-describe to observe fresh provider state.
type Instance struct {
	ID               string
	State            string
	PublicIP         string
	AvailabilityZone string
	// DeviceNames lists the device slots of the current block-device
	// mapping, e.g. "/dev/xvda".
	DeviceNames []string
}

// Volume is a point-in-time snapshot of a block-storage volume.
type Volume struct {
	ID    string
	State string
}

// InstanceRunOpts holds all parameters for launching an instance.
type InstanceRunOpts struct {
	ImageID         string
	InstanceType    string
	SubnetID        string
	SecurityGroupID string
	KeyName         string
	Tags            map[string]string
}
