package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/rigcheck/rigcheck/internal/config"
)

// RealClient implements CloudManager using the AWS EC2 API.
type RealClient struct {
	client   *awsec2.Client
	timeouts *config.Timeouts
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom wait budgets for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithEC2Client sets a custom EC2 client (useful for testing).
func WithEC2Client(client *awsec2.Client) ClientOption {
	return func(c *RealClient) {
		c.client = client
	}
}

// NewRealClient creates a RealClient for the configured region. Static
// credentials from the config take precedence over the default AWS
// credential chain.
func NewRealClient(ctx context.Context, cfg *config.AWSConfig, opts ...ClientOption) (*RealClient, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	c := &RealClient{
		client:   awsec2.NewFromConfig(awsCfg),
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// tagSpec builds a tag specification applied at resource creation time.
func tagSpec(resourceType types.ResourceType, tags map[string]string) []types.TagSpecification {
	if len(tags) == 0 {
		return nil
	}
	ec2Tags := make([]types.Tag, 0, len(tags))
	for k, v := range tags {
		ec2Tags = append(ec2Tags, types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	return []types.TagSpecification{{
		ResourceType: resourceType,
		Tags:         ec2Tags,
	}}
}
