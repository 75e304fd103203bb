package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tgw-labs/onprem-sim/core/onprem"
	"github.com/tgw-labs/onprem-sim/logger"
	"github.com/tgw-labs/onprem-sim/netutil"
)

var (
	cmdUp = &cobra.Command{
		Use:          "up",
		Short:        "Create the simulated on-premises network",
		Long:         ``,
		RunE:         runCmdUp,
		SilenceUsage: true,
	}

	upOpts = struct {
		awsDebug, export, prettyPrint, skipWait, waitSSH bool
		s3URI                                            string
		sshTimeout                                       time.Duration
	}{}
)

func init() {
	RootCmd.AddCommand(cmdUp)
	cmdUp.Flags().BoolVar(&upOpts.export, "export", false, "Don't create the stack, instead export the cloudformation stack file")
	cmdUp.Flags().BoolVar(&upOpts.prettyPrint, "pretty-print", false, "Pretty print the resulting CloudFormation")
	cmdUp.Flags().BoolVar(&upOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
	cmdUp.Flags().StringVar(&upOpts.s3URI, "s3-uri", "", "When your template is bigger than the cloudformation limit of 51200 bytes, upload the template to the specified location in S3. S3 location expressed as s3://<bucket>/path/to/dir")
	cmdUp.Flags().BoolVar(&upOpts.skipWait, "skip-wait", false, "Don't wait for the stack to finish creating")
	cmdUp.Flags().BoolVar(&upOpts.waitSSH, "wait-ssh", false, "Wait until the router accepts connections on its ssh port")
	cmdUp.Flags().DurationVar(&upOpts.sshTimeout, "ssh-timeout", 10*time.Minute, "How long --wait-ssh waits")
}

func runCmdUp(_ *cobra.Command, _ []string) error {
	if err := validateExclusive("--skip-wait", "--wait-ssh", upOpts.skipWait, upOpts.waitSSH); err != nil {
		return err
	}
	if err := validateExclusive("--export", "--wait-ssh", upOpts.export, upOpts.waitSSH); err != nil {
		return err
	}

	opts := onprem.NewOptions(upOpts.s3URI, upOpts.prettyPrint, upOpts.skipWait)
	opts.AWSDebug = upOpts.awsDebug

	stack, err := stackFromConfig(opts)
	if err != nil {
		return err
	}

	if err := stack.ValidateTemplates(); err != nil {
		return err
	}

	if upOpts.export {
		path, err := stack.Export(".")
		if err != nil {
			return err
		}
		logger.Infof("Exported %s\n", path)
		return nil
	}

	if _, err := stack.ValidateStack(); err != nil {
		return fmt.Errorf("Error validating stack: %v", err)
	}

	logger.Heading("Creating AWS resources. Please wait. It may take a few minutes.")
	if err := stack.Create(); err != nil {
		return fmt.Errorf("Error creating stack: %v", err)
	}

	if upOpts.skipWait {
		logger.Infof("Stack %s is being created. Run `onprem-sim status` to follow it.\n", stack.StackName())
		return nil
	}

	info, err := stack.Info()
	if err != nil {
		return fmt.Errorf("Failed fetching stack info: %v", err)
	}

	successMsg :=
		`Success! Your simulated on-premises network has been created:
%s
Use the EIP allocation ID (exported as %s) as the customer gateway address of your VPN connection.
`
	fmt.Printf(successMsg, info.String(), stack.Config.Output.ExportName)

	if upOpts.waitSSH {
		ip, err := stack.PublicIP()
		if err != nil {
			return err
		}
		port := stack.Config.SecurityGroup.SSHPort
		logger.Infof("Waiting for %s:%d to accept connections...\n", ip, port)
		if err := netutil.WaitForPort(context.Background(), ip, port, upOpts.sshTimeout); err != nil {
			return fmt.Errorf("router is not reachable: %v", err)
		}
		logger.Infof("Router is reachable at %s\n", ip)
	}

	return nil
}
