// Package ec2 wraps the AWS EC2 API behind narrow per-resource interfaces.
//
// The hardware layer consumes [CloudManager] and never touches the SDK
// directly, so all orchestration logic can be tested against [MockClient]
// without live credentials. [RealClient] implements the interfaces with
// aws-sdk-go-v2, using native SDK waiters for instance and VPC state.
package ec2
