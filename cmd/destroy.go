package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgw-labs/onprem-sim/core/onprem"
	"github.com/tgw-labs/onprem-sim/logger"
)

var (
	cmdDestroy = &cobra.Command{
		Use:          "destroy",
		Short:        "Destroy the simulated on-premises network",
		Long:         ``,
		RunE:         runCmdDestroy,
		SilenceUsage: true,
	}

	destroyOpts = struct {
		awsDebug, wait bool
	}{}
)

func init() {
	RootCmd.AddCommand(cmdDestroy)
	cmdDestroy.Flags().BoolVar(&destroyOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
	cmdDestroy.Flags().BoolVar(&destroyOpts.wait, "wait", false, "Wait until the stack is deleted")
}

func runCmdDestroy(_ *cobra.Command, _ []string) error {
	stack, err := stackFromConfig(onprem.Options{AWSDebug: destroyOpts.awsDebug})
	if err != nil {
		return err
	}

	if err := stack.Destroy(destroyOpts.wait); err != nil {
		return fmt.Errorf("Failed destroying stack: %v", err)
	}

	if destroyOpts.wait {
		logger.Infof("Stack %s has been deleted.\n", stack.StackName())
		return nil
	}
	logger.Infof("Deletion of stack %s has started. Run `onprem-sim status` to follow it.\n", stack.StackName())
	return nil
}
