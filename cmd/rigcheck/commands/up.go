package commands

import (
	"github.com/spf13/cobra"

	"github.com/rigcheck/rigcheck/cmd/rigcheck/handlers"
)

// Up returns the command for provisioning an ephemeral test environment.
//
// This command creates the full network stack, boots the requested master and
// worker nodes in parallel, prints their SSH addresses, and tears everything
// down again unless --keep is given.
//
// Optional flags:
//
//	--config, -c: Path to environment configuration YAML file (default: rigcheck.yaml)
//	--masters: Number of master nodes to boot
//	--workers: Number of worker nodes to boot
//	--offset: Starting index for node numbering
//	--keep: Leave all resources running after provisioning
//
// Environment variables:
//
//	AWS credentials follow the standard SDK chain unless set in the config file.
//	RIGCHECK_* variables override the built-in wait timeouts.
func Up() *cobra.Command {
	var configPath string
	var masters, workers, offset int
	var keep bool

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Provision an ephemeral test environment",
		Long: `Provision an ephemeral AWS test environment.

This command creates the environment in order:
  1. VPC, internet gateway, route table, subnet, security group
  2. Workspace SSH keypair
  3. Master and worker nodes, booted in parallel
  4. Initial data disks on each worker

SSH addresses for all nodes are printed once everything is running. By
default the whole environment is destroyed again before the command exits;
pass --keep to leave it running for manual inspection. Kept environments
must be cleaned up in the AWS console.

Examples:
  # Provision and immediately tear down a 1 master / 2 worker environment
  rigcheck up

  # Provision a larger environment and keep it running
  rigcheck up -c staging.yaml --masters 3 --workers 5 --keep`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Up(cmd.Context(), configPath, handlers.UpOptions{
				Masters: masters,
				Workers: workers,
				Offset:  offset,
				Keep:    keep,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: rigcheck.yaml)")
	cmd.Flags().IntVar(&masters, "masters", 1, "Number of master nodes")
	cmd.Flags().IntVar(&workers, "workers", 2, "Number of worker nodes")
	cmd.Flags().IntVar(&offset, "offset", 0, "Starting index for node numbering")
	cmd.Flags().BoolVar(&keep, "keep", false, "Leave the environment running after provisioning")

	return cmd
}
