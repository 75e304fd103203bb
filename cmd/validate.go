package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tgw-labs/onprem-sim/core/onprem"
)

var (
	cmdValidate = &cobra.Command{
		Use:          "validate",
		Short:        "Validate the stack template and the router user data",
		Long:         ``,
		RunE:         runCmdValidate,
		SilenceUsage: true,
	}

	validateOpts = struct {
		awsDebug bool
		s3URI    string
	}{}
)

func init() {
	RootCmd.AddCommand(cmdValidate)
	cmdValidate.Flags().BoolVar(&validateOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
	cmdValidate.Flags().StringVar(&validateOpts.s3URI, "s3-uri", "", "When your template is bigger than the cloudformation limit of 51200 bytes, upload the template to the specified location in S3. S3 location expressed as s3://<bucket>/path/to/dir")
}

func runCmdValidate(_ *cobra.Command, _ []string) error {
	opts := onprem.NewOptions(validateOpts.s3URI, false, false)
	opts.AWSDebug = validateOpts.awsDebug

	stack, err := stackFromConfig(opts)
	if err != nil {
		return err
	}

	fmt.Printf("Validating UserData and stack template...\n")

	if err := stack.ValidateTemplates(); err != nil {
		return err
	}

	report, err := stack.ValidateStack()
	if report != "" {
		fmt.Fprintf(os.Stderr, "Validation Report: %s\n", report)
	}
	if err != nil {
		return err
	}

	fmt.Printf("stack template is valid.\n\n")
	fmt.Println("Validation OK!")

	return nil
}
