package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// CreateVolume allocates a volume in the given availability zone.
func (c *RealClient) CreateVolume(ctx context.Context, availabilityZone string, sizeGiB int32, tags map[string]string) (string, error) {
	out, err := c.client.CreateVolume(ctx, &awsec2.CreateVolumeInput{
		AvailabilityZone:  aws.String(availabilityZone),
		Size:              aws.Int32(sizeGiB),
		TagSpecifications: tagSpec(types.ResourceTypeVolume, tags),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create volume in %s: %w", availabilityZone, err)
	}
	return aws.ToString(out.VolumeId), nil
}

// DescribeVolume returns a fresh snapshot of the volume.
func (c *RealClient) DescribeVolume(ctx context.Context, volumeID string) (*Volume, error) {
	out, err := c.client.DescribeVolumes(ctx, &awsec2.DescribeVolumesInput{
		VolumeIds: []string{volumeID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe volume %s: %w", volumeID, err)
	}
	if len(out.Volumes) == 0 {
		return nil, fmt.Errorf("volume %s not found", volumeID)
	}

	return &Volume{
		ID:    aws.ToString(out.Volumes[0].VolumeId),
		State: string(out.Volumes[0].State),
	}, nil
}

// AttachVolume attaches the volume to the instance at the given device slot.
func (c *RealClient) AttachVolume(ctx context.Context, volumeID, instanceID, device string) error {
	_, err := c.client.AttachVolume(ctx, &awsec2.AttachVolumeInput{
		VolumeId:   aws.String(volumeID),
		InstanceId: aws.String(instanceID),
		Device:     aws.String(device),
	})
	if err != nil {
		return fmt.Errorf("failed to attach volume %s to %s: %w", volumeID, instanceID, err)
	}
	return nil
}

// DetachVolume requests detachment of the volume. The call returns as soon
// as the provider accepts the request; detach progress is not awaited.
func (c *RealClient) DetachVolume(ctx context.Context, volumeID string) error {
	_, err := c.client.DetachVolume(ctx, &awsec2.DetachVolumeInput{
		VolumeId: aws.String(volumeID),
	})
	if err != nil {
		return fmt.Errorf("failed to detach volume %s: %w", volumeID, err)
	}
	return nil
}

// DeleteVolume deletes the volume.
func (c *RealClient) DeleteVolume(ctx context.Context, volumeID string) error {
	_, err := c.client.DeleteVolume(ctx, &awsec2.DeleteVolumeInput{
		VolumeId: aws.String(volumeID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete volume %s: %w", volumeID, err)
	}
	return nil
}
