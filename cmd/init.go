package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgw-labs/onprem-sim/builtin"
	"github.com/tgw-labs/onprem-sim/filegen"
	"github.com/tgw-labs/onprem-sim/pkg/api"
)

var (
	cmdInit = &cobra.Command{
		Use:          "init",
		Short:        "Initialize the config of a simulated on-premises network",
		Long:         ``,
		RunE:         runCmdInit,
		SilenceUsage: true,
	}

	initOpts = struct {
		stackName, region, prefix, cidr string
		cidrMask                        int
	}{}
)

func init() {
	RootCmd.AddCommand(cmdInit)
	cmdInit.Flags().StringVar(&initOpts.prefix, "prefix", "", "Prefix of the VPC and subnet names")
	cmdInit.Flags().StringVar(&initOpts.region, "region", "", "The AWS region to deploy to")
	cmdInit.Flags().StringVar(&initOpts.cidr, "cidr", api.DefaultCIDR, "Address range of the simulated network")
	cmdInit.Flags().IntVar(&initOpts.cidrMask, "cidr-mask", 0, "Prefix length of the public subnet. Defaults to the prefix length of --cidr")
	cmdInit.Flags().StringVar(&initOpts.stackName, "stack-name", "", "The name of the cloudformation stack. Defaults to <prefix>-onprem")
}

func runCmdInit(_ *cobra.Command, _ []string) error {
	if err := validateRequired(
		flag{"--prefix", initOpts.prefix},
		flag{"--region", initOpts.region},
	); err != nil {
		return err
	}

	cfg := &api.Config{
		StackName: initOpts.stackName,
		Region:    api.RegionForName(initOpts.region),
		Prefix:    initOpts.prefix,
		CIDR:      initOpts.cidr,
		CIDRMask:  initOpts.cidrMask,
	}
	if err := cfg.SetDefaults(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %v", err)
	}

	if err := filegen.CreateFileFromTemplate(configPath, cfg, builtin.Bytes(builtin.ConfigTmplFile)); err != nil {
		return fmt.Errorf("Error exec-ing default config template: %v", err)
	}

	successMsg :=
		`Success! Created %s

Next steps:
1. (Optional) Edit %s to change the router instance, key pair or security group.
2. Use the "onprem-sim render" command to render the CloudFormation stack template and the router user data.
3. Use the "onprem-sim up" command to create the stack.
`

	fmt.Printf(successMsg, configPath, configPath)
	return nil
}
