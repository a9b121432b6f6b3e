package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/rigcheck/rigcheck/internal/util/retry"
)

// CreateVPC creates a VPC and waits until the provider reports it available.
func (c *RealClient) CreateVPC(ctx context.Context, cidr string, tags map[string]string) (string, error) {
	out, err := c.client.CreateVpc(ctx, &awsec2.CreateVpcInput{
		CidrBlock:         aws.String(cidr),
		TagSpecifications: tagSpec(types.ResourceTypeVpc, tags),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create VPC: %w", err)
	}
	vpcID := aws.ToString(out.Vpc.VpcId)

	waiter := awsec2.NewVpcAvailableWaiter(c.client)
	err = waiter.Wait(ctx, &awsec2.DescribeVpcsInput{
		VpcIds: []string{vpcID},
	}, c.timeouts.NetworkWait)
	if err != nil {
		return "", fmt.Errorf("VPC %s never became available: %w", vpcID, err)
	}

	return vpcID, nil
}

// DeleteVPC deletes the VPC.
func (c *RealClient) DeleteVPC(ctx context.Context, vpcID string) error {
	err := retry.WithExponentialBackoff(ctx, func() error {
		_, err := c.client.DeleteVpc(ctx, &awsec2.DeleteVpcInput{
			VpcId: aws.String(vpcID),
		})
		if err != nil && !IsDependencyViolation(err) {
			return retry.Fatal(err)
		}
		return err
	}, retry.WithMaxRetries(c.timeouts.RetryMaxAttempts), retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
	if err != nil {
		return fmt.Errorf("failed to delete VPC %s: %w", vpcID, err)
	}
	return nil
}

// CreateInternetGateway creates an internet gateway and attaches it to the VPC.
func (c *RealClient) CreateInternetGateway(ctx context.Context, vpcID string, tags map[string]string) (string, error) {
	out, err := c.client.CreateInternetGateway(ctx, &awsec2.CreateInternetGatewayInput{
		TagSpecifications: tagSpec(types.ResourceTypeInternetGateway, tags),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create internet gateway: %w", err)
	}
	gatewayID := aws.ToString(out.InternetGateway.InternetGatewayId)

	_, err = c.client.AttachInternetGateway(ctx, &awsec2.AttachInternetGatewayInput{
		InternetGatewayId: aws.String(gatewayID),
		VpcId:             aws.String(vpcID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to attach gateway %s to VPC %s: %w", gatewayID, vpcID, err)
	}

	return gatewayID, nil
}

// DeleteInternetGateway detaches the gateway from the VPC and deletes it.
func (c *RealClient) DeleteInternetGateway(ctx context.Context, gatewayID, vpcID string) error {
	_, err := c.client.DetachInternetGateway(ctx, &awsec2.DetachInternetGatewayInput{
		InternetGatewayId: aws.String(gatewayID),
		VpcId:             aws.String(vpcID),
	})
	if err != nil {
		return fmt.Errorf("failed to detach gateway %s from VPC %s: %w", gatewayID, vpcID, err)
	}

	_, err = c.client.DeleteInternetGateway(ctx, &awsec2.DeleteInternetGatewayInput{
		InternetGatewayId: aws.String(gatewayID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete gateway %s: %w", gatewayID, err)
	}
	return nil
}

// CreateRouteTable creates a route table with a default route through the
// gateway.
func (c *RealClient) CreateRouteTable(ctx context.Context, vpcID, gatewayID string, tags map[string]string) (string, error) {
	out, err := c.client.CreateRouteTable(ctx, &awsec2.CreateRouteTableInput{
		VpcId:             aws.String(vpcID),
		TagSpecifications: tagSpec(types.ResourceTypeRouteTable, tags),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create route table: %w", err)
	}
	routeTableID := aws.ToString(out.RouteTable.RouteTableId)

	_, err = c.client.CreateRoute(ctx, &awsec2.CreateRouteInput{
		RouteTableId:         aws.String(routeTableID),
		DestinationCidrBlock: aws.String("0.0.0.0/0"),
		GatewayId:            aws.String(gatewayID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create default route in %s: %w", routeTableID, err)
	}

	return routeTableID, nil
}

// DeleteRouteTable deletes the route table.
func (c *RealClient) DeleteRouteTable(ctx context.Context, routeTableID string) error {
	_, err := c.client.DeleteRouteTable(ctx, &awsec2.DeleteRouteTableInput{
		RouteTableId: aws.String(routeTableID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete route table %s: %w", routeTableID, err)
	}
	return nil
}

// CreateSubnet creates a subnet with public IP auto-assignment and
// associates it with the route table.
func (c *RealClient) CreateSubnet(ctx context.Context, vpcID, routeTableID, cidr string, tags map[string]string) (string, error) {
	out, err := c.client.CreateSubnet(ctx, &awsec2.CreateSubnetInput{
		VpcId:             aws.String(vpcID),
		CidrBlock:         aws.String(cidr),
		TagSpecifications: tagSpec(types.ResourceTypeSubnet, tags),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create subnet: %w", err)
	}
	subnetID := aws.ToString(out.Subnet.SubnetId)

	_, err = c.client.ModifySubnetAttribute(ctx, &awsec2.ModifySubnetAttributeInput{
		SubnetId:            aws.String(subnetID),
		MapPublicIpOnLaunch: &types.AttributeBooleanValue{Value: aws.Bool(true)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to enable public IPs on subnet %s: %w", subnetID, err)
	}

	_, err = c.client.AssociateRouteTable(ctx, &awsec2.AssociateRouteTableInput{
		RouteTableId: aws.String(routeTableID),
		SubnetId:     aws.String(subnetID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to associate route table %s with subnet %s: %w", routeTableID, subnetID, err)
	}

	return subnetID, nil
}

// DeleteSubnet deletes the subnet.
func (c *RealClient) DeleteSubnet(ctx context.Context, subnetID string) error {
	_, err := c.client.DeleteSubnet(ctx, &awsec2.DeleteSubnetInput{
		SubnetId: aws.String(subnetID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete subnet %s: %w", subnetID, err)
	}
	return nil
}

// CreateSecurityGroup creates a security group permitting all ingress
// traffic. The environments are short-lived and isolated per workspace, so
// the group is deliberately permissive.
func (c *RealClient) CreateSecurityGroup(ctx context.Context, vpcID, name string, tags map[string]string) (string, error) {
	out, err := c.client.CreateSecurityGroup(ctx, &awsec2.CreateSecurityGroupInput{
		GroupName:         aws.String(name),
		Description:       aws.String("Permissive security group for rigcheck test environments"),
		VpcId:             aws.String(vpcID),
		TagSpecifications: tagSpec(types.ResourceTypeSecurityGroup, tags),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create security group: %w", err)
	}
	groupID := aws.ToString(out.GroupId)

	_, err = c.client.AuthorizeSecurityGroupIngress(ctx, &awsec2.AuthorizeSecurityGroupIngressInput{
		GroupId:    aws.String(groupID),
		CidrIp:     aws.String("0.0.0.0/0"),
		IpProtocol: aws.String("-1"),
		FromPort:   aws.Int32(0),
		ToPort:     aws.Int32(65535),
	})
	if err != nil {
		return "", fmt.Errorf("failed to authorize ingress on %s: %w", groupID, err)
	}

	return groupID, nil
}

// DeleteSecurityGroup deletes the security group.
func (c *RealClient) DeleteSecurityGroup(ctx context.Context, groupID string) error {
	err := retry.WithExponentialBackoff(ctx, func() error {
		_, err := c.client.DeleteSecurityGroup(ctx, &awsec2.DeleteSecurityGroupInput{
			GroupId: aws.String(groupID),
		})
		if err != nil && !IsDependencyViolation(err) {
			return retry.Fatal(err)
		}
		return err
	}, retry.WithMaxRetries(c.timeouts.RetryMaxAttempts), retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
	if err != nil {
		return fmt.Errorf("failed to delete security group %s: %w", groupID, err)
	}
	return nil
}
