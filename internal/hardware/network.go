package hardware

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rigcheck/rigcheck/internal/config"
	"github.com/rigcheck/rigcheck/internal/platform/ec2"
	"github.com/rigcheck/rigcheck/internal/util/naming"
	"github.com/rigcheck/rigcheck/internal/util/tags"
	"github.com/rigcheck/rigcheck/internal/workspace"
)

// NetworkStack owns the shared network prerequisites every node depends on.
// The six resources form a strict dependency chain and are created in order:
// VPC, internet gateway, route table, subnet, security group, keypair.
// Destruction runs in exactly the reverse order.
type NetworkStack struct {
	cloud ec2.CloudManager
	ws    *workspace.Workspace
	cfg   *config.AWSConfig
	log   zerolog.Logger

	VPCID           string
	GatewayID       string
	RouteTableID    string
	SubnetID        string
	SecurityGroupID string
	KeypairName     string
}

// NewNetworkStack creates a network stack bound to one workspace. No
// provider resources exist until Create is called.
func NewNetworkStack(cloud ec2.CloudManager, ws *workspace.Workspace, cfg *config.AWSConfig, log zerolog.Logger) *NetworkStack {
	return &NetworkStack{
		cloud: cloud,
		ws:    ws,
		cfg:   cfg,
		log:   log.With().Str("component", "network-stack").Logger(),
	}
}

// Create builds the six prerequisite resources in dependency order. Each
// step blocks until the provider reports the resource usable. On failure the
// error propagates immediately; already-created resources stay live for the
// caller to destroy or abandon.
func (s *NetworkStack) Create(ctx context.Context) error {
	vpcID, err := s.cloud.CreateVPC(ctx, s.cfg.VPCCIDR,
		tags.NewBuilder(naming.VPC(s.ws.Name), s.ws.Name).Build())
	if err != nil {
		return fmt.Errorf("failed to create VPC: %w", err)
	}
	s.VPCID = vpcID
	s.log.Info().Str("vpc", vpcID).Msg("created VPC")

	gatewayID, err := s.cloud.CreateInternetGateway(ctx, s.VPCID,
		tags.NewBuilder(naming.Gateway(s.ws.Name), s.ws.Name).Build())
	if err != nil {
		return fmt.Errorf("failed to create gateway: %w", err)
	}
	s.GatewayID = gatewayID
	s.log.Info().Str("gateway", gatewayID).Str("vpc", s.VPCID).Msg("created gateway")

	routeTableID, err := s.cloud.CreateRouteTable(ctx, s.VPCID, s.GatewayID,
		tags.NewBuilder(naming.RouteTable(s.ws.Name), s.ws.Name).Build())
	if err != nil {
		return fmt.Errorf("failed to create route table: %w", err)
	}
	s.RouteTableID = routeTableID
	s.log.Info().Str("routetable", routeTableID).Msg("created route table")

	subnetID, err := s.cloud.CreateSubnet(ctx, s.VPCID, s.RouteTableID, s.cfg.SubnetCIDR,
		tags.NewBuilder(naming.Subnet(s.ws.Name), s.ws.Name).Build())
	if err != nil {
		return fmt.Errorf("failed to create subnet: %w", err)
	}
	s.SubnetID = subnetID
	s.log.Info().Str("subnet", subnetID).Msg("created subnet")

	securityGroupID, err := s.cloud.CreateSecurityGroup(ctx, s.VPCID, naming.SecurityGroup(s.ws.Name),
		tags.NewBuilder(naming.SecurityGroup(s.ws.Name), s.ws.Name).Build())
	if err != nil {
		return fmt.Errorf("failed to create security group: %w", err)
	}
	s.SecurityGroupID = securityGroupID
	s.log.Info().Str("sg", securityGroupID).Msg("created security group")

	keypairName := naming.KeyPair(s.ws.Name)
	err = s.cloud.ImportKeyPair(ctx, keypairName, s.ws.PublicKey(),
		tags.NewBuilder(keypairName, s.ws.Name).Build())
	if err != nil {
		return fmt.Errorf("failed to import keypair: %w", err)
	}
	s.KeypairName = keypairName
	s.log.Info().Str("keypair", keypairName).Msg("imported keypair")

	return nil
}

// Destroy unwinds the stack in exact reverse creation order. Deletions are
// best-effort sequential: a failure is recorded and the remaining resources
// are still attempted. With skip set, nothing is deleted and every live
// resource is reported instead.
func (s *NetworkStack) Destroy(ctx context.Context, skip bool) error {
	if skip {
		s.report()
		return nil
	}

	var errs []error

	if s.KeypairName != "" {
		if err := s.cloud.DeleteKeyPair(ctx, s.KeypairName); err != nil {
			errs = append(errs, err)
		} else {
			s.log.Info().Str("keypair", s.KeypairName).Msg("deleted keypair")
		}
	}

	if s.SecurityGroupID != "" {
		if err := s.cloud.DeleteSecurityGroup(ctx, s.SecurityGroupID); err != nil {
			errs = append(errs, err)
		} else {
			s.log.Info().Str("sg", s.SecurityGroupID).Msg("deleted security group")
		}
	}

	if s.SubnetID != "" {
		if err := s.cloud.DeleteSubnet(ctx, s.SubnetID); err != nil {
			errs = append(errs, err)
		} else {
			s.log.Info().Str("subnet", s.SubnetID).Msg("deleted subnet")
		}
	}

	if s.RouteTableID != "" {
		if err := s.cloud.DeleteRouteTable(ctx, s.RouteTableID); err != nil {
			errs = append(errs, err)
		} else {
			s.log.Info().Str("routetable", s.RouteTableID).Msg("deleted route table")
		}
	}

	if s.GatewayID != "" {
		if err := s.cloud.DeleteInternetGateway(ctx, s.GatewayID, s.VPCID); err != nil {
			errs = append(errs, err)
		} else {
			s.log.Info().Str("gateway", s.GatewayID).Msg("deleted gateway")
		}
	}

	if s.VPCID != "" {
		if err := s.cloud.DeleteVPC(ctx, s.VPCID); err != nil {
			errs = append(errs, err)
		} else {
			s.log.Info().Str("vpc", s.VPCID).Msg("deleted VPC")
		}
	}

	return errors.Join(errs...)
}

// report logs every resource left behind, for post-mortem debugging of an
// abandoned environment.
func (s *NetworkStack) report() {
	if s.KeypairName != "" {
		s.log.Warn().Str("keypair", s.KeypairName).Msg("leaving keypair")
	}
	if s.SecurityGroupID != "" {
		s.log.Warn().Str("sg", s.SecurityGroupID).Msg("leaving security group")
	}
	if s.SubnetID != "" {
		s.log.Warn().Str("subnet", s.SubnetID).Msg("leaving subnet")
	}
	if s.RouteTableID != "" {
		s.log.Warn().Str("routetable", s.RouteTableID).Msg("leaving route table")
	}
	if s.GatewayID != "" {
		s.log.Warn().Str("gateway", s.GatewayID).Msg("leaving gateway")
	}
	if s.VPCID != "" {
		s.log.Warn().Str("vpc", s.VPCID).Msg("leaving VPC")
	}
}
