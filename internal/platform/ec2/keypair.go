package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// ImportKeyPair imports public key material under the given keypair name.
func (c *RealClient) ImportKeyPair(ctx context.Context, name string, publicKey []byte, tags map[string]string) error {
	_, err := c.client.ImportKeyPair(ctx, &awsec2.ImportKeyPairInput{
		KeyName:           aws.String(name),
		PublicKeyMaterial: publicKey,
		TagSpecifications: tagSpec(types.ResourceTypeKeyPair, tags),
	})
	if err != nil {
		return fmt.Errorf("failed to import keypair %s: %w", name, err)
	}
	return nil
}

// DeleteKeyPair deletes the keypair by name.
func (c *RealClient) DeleteKeyPair(ctx context.Context, name string) error {
	_, err := c.client.DeleteKeyPair(ctx, &awsec2.DeleteKeyPairInput{
		KeyName: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete keypair %s: %w", name, err)
	}
	return nil
}
