package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgw-labs/onprem-sim/core/onprem"
)

var (
	cmdStatus = &cobra.Command{
		Use:          "status",
		Short:        "Describe the simulated on-premises network",
		Long:         ``,
		RunE:         runCmdStatus,
		SilenceUsage: true,
	}

	statusOpts = struct {
		awsDebug bool
	}{}
)

func init() {
	RootCmd.AddCommand(cmdStatus)
	cmdStatus.Flags().BoolVar(&statusOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
}

func runCmdStatus(_ *cobra.Command, _ []string) error {
	stack, err := stackFromConfig(onprem.Options{AWSDebug: statusOpts.awsDebug})
	if err != nil {
		return err
	}

	info, err := stack.Info()
	if err != nil {
		return fmt.Errorf("Failed fetching stack info: %v", err)
	}

	fmt.Print(info.String())
	return nil
}
