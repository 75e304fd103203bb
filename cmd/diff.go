package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgw-labs/onprem-sim/core/onprem"
	"github.com/tgw-labs/onprem-sim/logger"
)

var (
	cmdDiff = &cobra.Command{
		Use:          "diff",
		Short:        "Compare the deployed and the desired stack templates",
		Long:         ``,
		RunE:         runCmdDiff,
		SilenceUsage: true,
	}

	diffOpts = struct {
		awsDebug bool
		context  int
	}{}
)

func init() {
	RootCmd.AddCommand(cmdDiff)
	cmdDiff.Flags().BoolVar(&diffOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
	cmdDiff.Flags().IntVarP(&diffOpts.context, "context", "C", -1, "output NUM lines of context around changes")
}

func runCmdDiff(c *cobra.Command, _ []string) error {
	opts := onprem.NewOptions("", false, false)
	opts.AWSDebug = diffOpts.awsDebug

	stack, err := stackFromConfig(opts)
	if err != nil {
		return err
	}

	if err := stack.ValidateTemplates(); err != nil {
		return err
	}

	diff, err := stack.Diff(diffOpts.context)
	if err != nil {
		return fmt.Errorf("error comparing stack templates: %v", err)
	}

	if diff == "" {
		logger.Infof("No changes detected in %s\n", stack.StackName())
		return nil
	}

	logger.Infof("Detected changes in: %s\n%s", stack.StackName(), diff)
	c.SilenceErrors = true
	return &ExitError{fmt.Sprintf("Detected changes in: %s", stack.StackName()), 2}
}
