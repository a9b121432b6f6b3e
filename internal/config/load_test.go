package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rigcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
aws:
  region: us-east-2
  ami_image_id: ami-0abcdef12345
  node_size: t3.large
nodes:
  worker_initial_data_disks: 2
  initial_disk_capacity_gib: 20
workspace:
  prefix: storci
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "us-east-2", cfg.AWS.Region)
	assert.Equal(t, "ami-0abcdef12345", cfg.AWS.AMIImageID)
	assert.Equal(t, "t3.large", cfg.AWS.NodeSize)
	assert.Equal(t, 2, cfg.Nodes.WorkerInitialDataDisks)
	assert.Equal(t, 20, cfg.Nodes.InitialDiskCapacityGiB)
	assert.Equal(t, "storci", cfg.Workspace.Prefix)
}

func TestLoadFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
aws:
  ami_image_id: ami-0abcdef12345
  node_size: t3.medium
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.Equal(t, "192.168.100.0/24", cfg.AWS.VPCCIDR)
	assert.Equal(t, "192.168.100.0/25", cfg.AWS.SubnetCIDR)
	assert.Equal(t, "rigcheck", cfg.Workspace.Prefix)
	assert.Equal(t, 10, cfg.Nodes.InitialDiskCapacityGiB)
	assert.Zero(t, cfg.Nodes.WorkerInitialDataDisks)
}

func TestLoadFile_MissingImage(t *testing.T) {
	path := writeConfig(t, `
aws:
  node_size: t3.medium
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ami_image_id")
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_BadYAML(t *testing.T) {
	path := writeConfig(t, "aws: [unbalanced")
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestValidate_NegativeDisks(t *testing.T) {
	cfg := &Config{}
	cfg.AWS.AMIImageID = "ami-1"
	cfg.AWS.NodeSize = "t3.small"
	cfg.Nodes.WorkerInitialDataDisks = -1
	cfg.Nodes.InitialDiskCapacityGiB = 10

	assert.Error(t, cfg.Validate())
}

func TestLoadTimeouts_Defaults(t *testing.T) {
	tm := LoadTimeouts()

	assert.Equal(t, 60, tm.IPAttempts)
	assert.Equal(t, 10, tm.VolumeAttempts)
}

func TestLoadTimeouts_EnvOverride(t *testing.T) {
	t.Setenv("RIGCHECK_IP_ATTEMPTS", "3")
	t.Setenv("RIGCHECK_IP_INTERVAL", "10ms")
	t.Setenv("RIGCHECK_VOLUME_ATTEMPTS", "not-a-number")

	tm := LoadTimeouts()

	assert.Equal(t, 3, tm.IPAttempts)
	assert.Equal(t, "10ms", tm.IPInterval.String())
	assert.Equal(t, 10, tm.VolumeAttempts, "invalid value falls back to default")
}
