package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgw-labs/onprem-sim/core/onprem"
	"github.com/tgw-labs/onprem-sim/logger"
	"github.com/tgw-labs/onprem-sim/pkg/api"
)

var (
	RootCmd = &cobra.Command{
		Use:   "onprem-sim",
		Short: "Manage a simulated on-premises network on AWS",
		Long: `onprem-sim deploys a VPC with one public subnet and a router instance that stands in for an
on-premises data center, and exports the allocation ID of its Elastic IP for VPN testing.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.Verbose = rootOpts.verbose
			logger.Color = rootOpts.color
		},
	}

	configPath = "onprem.yaml"

	rootOpts = struct {
		verbose, color bool
	}{}
)

// ExitError carries the process exit code of a command that failed without an error worth printing.
type ExitError struct {
	msg  string
	Code int
}

func (e *ExitError) Error() string {
	return e.msg
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "onprem.yaml", "Location of the onprem-sim config file")
	RootCmd.PersistentFlags().BoolVarP(&rootOpts.verbose, "verbose", "v", false, "Print debug output, including the resolved config")
	RootCmd.PersistentFlags().BoolVar(&rootOpts.color, "color", false, "Colorize output")
}

func stackFromConfig(opts onprem.Options) (*onprem.Stack, error) {
	stack, err := onprem.StackFromFile(configPath, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %v", err)
	}
	return stack, nil
}

// offlineStackFromConfig loads the config for commands that never call AWS.
func offlineStackFromConfig(opts onprem.Options) (*onprem.Stack, error) {
	cfg, err := api.ConfigFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %v", err)
	}
	return onprem.NewStack(cfg, opts, onprem.Services{}), nil
}
