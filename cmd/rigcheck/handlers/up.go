// Package handlers contains the business logic for CLI commands.
//
// Handlers load configuration, construct the cloud client and orchestrator,
// and drive the provisioning lifecycle. Keeping them separate from the cobra
// command definitions makes the flow testable without flag parsing.
package handlers

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/rigcheck/rigcheck/internal/config"
	"github.com/rigcheck/rigcheck/internal/hardware"
	"github.com/rigcheck/rigcheck/internal/platform/ec2"
	"github.com/rigcheck/rigcheck/internal/workspace"
)

// defaultConfigFile is used when no --config flag is given.
const defaultConfigFile = "rigcheck.yaml"

// UpOptions carries the fleet shape and lifecycle flags for the up command.
type UpOptions struct {
	Masters int
	Workers int
	Offset  int
	Keep    bool
}

// Factory function variables - can be replaced in tests.
var (
	// newCloudClient constructs the EC2 client used by the orchestrator.
	newCloudClient = func(ctx context.Context, cfg *config.AWSConfig, timeouts *config.Timeouts) (ec2.CloudManager, error) {
		return ec2.NewRealClient(ctx, cfg, ec2.WithTimeouts(timeouts))
	}

	// newLogger builds the process logger.
	newLogger = func() zerolog.Logger {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
)

// Up handles the up command.
//
// It provisions the network stack, boots the requested fleet, prints the SSH
// address of every node, and unless opts.Keep is set destroys everything
// again before returning. A provisioning failure still attempts a full
// teardown so that a partial environment is not leaked.
func Up(ctx context.Context, configPath string, opts UpOptions) error {
	if configPath == "" {
		configPath = defaultConfigFile
	}
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	log := newLogger()
	timeouts := config.LoadTimeouts()

	cloud, err := newCloudClient(ctx, &cfg.AWS, timeouts)
	if err != nil {
		return fmt.Errorf("creating cloud client: %w", err)
	}

	ws, err := workspace.New(cfg.Workspace.Prefix)
	if err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}
	log.Info().Str("workspace", ws.Name).Msg("workspace created")

	h := hardware.New(cloud, cfg, ws, log).WithTimeouts(timeouts)

	if err := provision(ctx, h, opts, log); err != nil {
		if opts.Keep {
			return err
		}
		if derr := h.Destroy(ctx, false); derr != nil {
			log.Error().Err(derr).Msg("teardown after failed provisioning")
		}
		return err
	}

	printNodeAddresses(ctx, h)

	if opts.Keep {
		log.Warn().Str("workspace", ws.Name).Msg("environment kept running, clean up manually")
		return nil
	}
	return h.Destroy(ctx, false)
}

func provision(ctx context.Context, h *hardware.Hardware, opts UpOptions, log zerolog.Logger) error {
	log.Info().Msg("creating network stack")
	if err := h.Prepare(ctx); err != nil {
		return fmt.Errorf("creating network stack: %w", err)
	}

	log.Info().
		Int("masters", opts.Masters).
		Int("workers", opts.Workers).
		Msg("booting nodes")
	if err := h.BootNodes(ctx, opts.Masters, opts.Workers, opts.Offset); err != nil {
		return fmt.Errorf("booting nodes: %w", err)
	}
	return nil
}

// printNodeAddresses prints the SSH address of every node in name order.
// Nodes whose address cannot be resolved are reported inline rather than
// failing the run, the environment itself is already up.
func printNodeAddresses(ctx context.Context, h *hardware.Hardware) {
	nodes := h.Nodes()
	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ip, err := nodes[name].GetSSHIP(ctx)
		if err != nil {
			fmt.Printf("%s\t<no address: %v>\n", name, err)
			continue
		}
		fmt.Printf("%s\t%s\n", name, ip)
	}
}
