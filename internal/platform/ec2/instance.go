package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/rigcheck/rigcheck/internal/util/retry"
)

// RunInstance launches exactly one instance and returns its ID.
func (c *RealClient) RunInstance(ctx context.Context, opts InstanceRunOpts) (string, error) {
	var out *awsec2.RunInstancesOutput

	err := retry.WithExponentialBackoff(ctx, func() error {
		res, err := c.client.RunInstances(ctx, &awsec2.RunInstancesInput{
			ImageId:           aws.String(opts.ImageID),
			InstanceType:      types.InstanceType(opts.InstanceType),
			MinCount:          aws.Int32(1),
			MaxCount:          aws.Int32(1),
			SecurityGroupIds:  []string{opts.SecurityGroupID},
			KeyName:           aws.String(opts.KeyName),
			SubnetId:          aws.String(opts.SubnetID),
			TagSpecifications: tagSpec(types.ResourceTypeInstance, opts.Tags),
		})
		if err != nil {
			if IsInvalidParameter(err) {
				return retry.Fatal(err)
			}
			return err
		}
		out = res
		return nil
	}, retry.WithMaxRetries(c.timeouts.RetryMaxAttempts), retry.WithInitialDelay(c.timeouts.RetryInitialDelay))

	if err != nil {
		return "", fmt.Errorf("failed to run instance: %w", err)
	}
	if len(out.Instances) == 0 {
		return "", fmt.Errorf("run instance returned no instances")
	}

	return aws.ToString(out.Instances[0].InstanceId), nil
}

// DescribeInstance returns a fresh snapshot of the instance.
func (c *RealClient) DescribeInstance(ctx context.Context, instanceID string) (*Instance, error) {
	out, err := c.client.DescribeInstances(ctx, &awsec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe instance %s: %w", instanceID, err)
	}
	if len(out.Reservations) == 0 || len(out.Reservations[0].Instances) == 0 {
		return nil, fmt.Errorf("instance %s not found", instanceID)
	}

	raw := out.Reservations[0].Instances[0]
	snapshot := &Instance{
		ID:       aws.ToString(raw.InstanceId),
		State:    string(raw.State.Name),
		PublicIP: aws.ToString(raw.PublicIpAddress),
	}
	if raw.Placement != nil {
		snapshot.AvailabilityZone = aws.ToString(raw.Placement.AvailabilityZone)
	}
	for _, device := range raw.BlockDeviceMappings {
		snapshot.DeviceNames = append(snapshot.DeviceNames, aws.ToString(device.DeviceName))
	}

	return snapshot, nil
}

// WaitInstanceExists blocks until the instance record is visible.
func (c *RealClient) WaitInstanceExists(ctx context.Context, instanceID string) error {
	waiter := awsec2.NewInstanceExistsWaiter(c.client)
	err := waiter.Wait(ctx, &awsec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	}, c.timeouts.InstanceWait)
	if err != nil {
		return fmt.Errorf("instance %s never materialized: %w", instanceID, err)
	}
	return nil
}

// WaitInstanceRunning blocks until the instance is in a running state.
func (c *RealClient) WaitInstanceRunning(ctx context.Context, instanceID string) error {
	waiter := awsec2.NewInstanceRunningWaiter(c.client)
	err := waiter.Wait(ctx, &awsec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	}, c.timeouts.InstanceWait)
	if err != nil {
		return fmt.Errorf("instance %s never reached running: %w", instanceID, err)
	}
	return nil
}

// TerminateInstance terminates the instance and blocks until the provider
// reports it terminated.
func (c *RealClient) TerminateInstance(ctx context.Context, instanceID string) error {
	_, err := c.client.TerminateInstances(ctx, &awsec2.TerminateInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return fmt.Errorf("failed to terminate instance %s: %w", instanceID, err)
	}

	waiter := awsec2.NewInstanceTerminatedWaiter(c.client)
	err = waiter.Wait(ctx, &awsec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	}, c.timeouts.InstanceWait)
	if err != nil {
		return fmt.Errorf("instance %s never reached terminated: %w", instanceID, err)
	}
	return nil
}
