package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgw-labs/onprem-sim/core/onprem"
)

var (
	cmdCalculator = &cobra.Command{
		Use:          "calculator",
		Short:        "Print the AWS cost calculator URL for the stack",
		Long:         ``,
		RunE:         runCmdCalculator,
		SilenceUsage: true,
	}

	calculatorOpts = struct {
		awsDebug bool
		s3URI    string
	}{}
)

func init() {
	RootCmd.AddCommand(cmdCalculator)
	cmdCalculator.Flags().BoolVar(&calculatorOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
	cmdCalculator.Flags().StringVar(&calculatorOpts.s3URI, "s3-uri", "", "When your template is bigger than the cloudformation limit of 51200 bytes, upload the template to the specified location in S3. S3 location expressed as s3://<bucket>/path/to/dir")
}

func runCmdCalculator(_ *cobra.Command, _ []string) error {
	opts := onprem.NewOptions(calculatorOpts.s3URI, false, false)
	opts.AWSDebug = calculatorOpts.awsDebug

	stack, err := stackFromConfig(opts)
	if err != nil {
		return err
	}

	url, err := stack.EstimateCost()
	if err != nil {
		return fmt.Errorf("Failed to estimate cost: %v", err)
	}

	fmt.Println("To estimate the monthly cost of the stack, open the url below:")
	fmt.Println(url)
	return nil
}
