package config

import "fmt"

// Config holds all settings for provisioning a test environment.
type Config struct {
	AWS       AWSConfig `yaml:"aws"`
	Workspace Workspace `yaml:"workspace"`
	Nodes     Nodes     `yaml:"nodes"`
}

// AWSConfig holds provider settings.
type AWSConfig struct {
	Region string `yaml:"region"`

	// Optional static credentials. When empty, the default AWS credential
	// chain (env, shared config, instance profile) applies.
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`

	// AMIImageID is the image every node boots from.
	AMIImageID string `yaml:"ami_image_id"`
	// NodeSize is the EC2 instance type.
	NodeSize string `yaml:"node_size"`

	VPCCIDR    string `yaml:"vpc_cidr"`
	SubnetCIDR string `yaml:"subnet_cidr"`
}

// Workspace holds run-identity settings.
type Workspace struct {
	// Prefix is the leading part of the generated workspace name.
	Prefix string `yaml:"prefix"`
}

// Nodes holds fleet composition settings.
type Nodes struct {
	// WorkerInitialDataDisks is the number of data disks provisioned on
	// each worker after boot.
	WorkerInitialDataDisks int `yaml:"worker_initial_data_disks"`
	// InitialDiskCapacityGiB is the size of each initial data disk.
	InitialDiskCapacityGiB int `yaml:"initial_disk_capacity_gib"`
	// SSHUser is the login user the node image ships with.
	SSHUser string `yaml:"ssh_user"`
}

// Validate checks that all required settings are present.
func (c *Config) Validate() error {
	if c.AWS.AMIImageID == "" {
		return fmt.Errorf("aws.ami_image_id is required")
	}
	if c.AWS.NodeSize == "" {
		return fmt.Errorf("aws.node_size is required")
	}
	if c.Nodes.WorkerInitialDataDisks < 0 {
		return fmt.Errorf("nodes.worker_initial_data_disks must not be negative")
	}
	if c.Nodes.InitialDiskCapacityGiB <= 0 {
		return fmt.Errorf("nodes.initial_disk_capacity_gib must be positive")
	}
	return nil
}
