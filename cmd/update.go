package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgw-labs/onprem-sim/core/onprem"
	"github.com/tgw-labs/onprem-sim/logger"
)

var (
	cmdUpdate = &cobra.Command{
		Use:          "update",
		Short:        "Update the simulated on-premises network",
		Long:         ``,
		RunE:         runCmdUpdate,
		SilenceUsage: true,
	}

	updateOpts = struct {
		awsDebug, prettyPrint, skipWait bool
		s3URI                           string
	}{}
)

func init() {
	RootCmd.AddCommand(cmdUpdate)
	cmdUpdate.Flags().BoolVar(&updateOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
	cmdUpdate.Flags().BoolVar(&updateOpts.prettyPrint, "pretty-print", false, "Pretty print the resulting CloudFormation")
	cmdUpdate.Flags().StringVar(&updateOpts.s3URI, "s3-uri", "", "When your template is bigger than the cloudformation limit of 51200 bytes, upload the template to the specified location in S3. S3 location expressed as s3://<bucket>/path/to/dir")
	cmdUpdate.Flags().BoolVar(&updateOpts.skipWait, "skip-wait", false, "Don't wait the resources finish")
}

func runCmdUpdate(_ *cobra.Command, _ []string) error {
	opts := onprem.NewOptions(updateOpts.s3URI, updateOpts.prettyPrint, updateOpts.skipWait)
	opts.AWSDebug = updateOpts.awsDebug

	stack, err := stackFromConfig(opts)
	if err != nil {
		return err
	}

	if err := stack.ValidateTemplates(); err != nil {
		return err
	}

	if _, err := stack.ValidateStack(); err != nil {
		return err
	}

	logger.Headingf("Updating stack %s. Please wait.\n", stack.StackName())
	report, err := stack.Update()
	if err != nil {
		return fmt.Errorf("Error updating stack: %v", err)
	}
	if report == "" {
		logger.Infof("Stack %s is up to date.\n", stack.StackName())
		return nil
	}
	logger.Debugf("Update stack: %s\n", report)

	info, err := stack.Info()
	if err != nil {
		return fmt.Errorf("Failed fetching stack info: %v", err)
	}

	successMsg :=
		`Success! Your AWS resources are being updated:
%s
`
	fmt.Printf(successMsg, info.String())

	return nil
}
