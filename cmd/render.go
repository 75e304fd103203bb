package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tgw-labs/onprem-sim/core/onprem"
)

var (
	cmdRender = &cobra.Command{
		Use:          "render",
		Short:        "Render the CloudFormation stack template and the router user data",
		Long:         ``,
		RunE:         runCmdRender,
		SilenceUsage: true,
	}

	renderOpts = struct {
		dir         string
		prettyPrint bool
	}{}
)

func init() {
	RootCmd.AddCommand(cmdRender)
	cmdRender.Flags().StringVar(&renderOpts.dir, "dir", ".", "Directory to write stack-templates/ and userdata/ to")
	cmdRender.Flags().BoolVar(&renderOpts.prettyPrint, "pretty-print", true, "Pretty print the resulting CloudFormation")
}

func runCmdRender(_ *cobra.Command, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("render takes no arguments\n")
	}

	stack, err := offlineStackFromConfig(onprem.Options{PrettyPrint: renderOpts.prettyPrint})
	if err != nil {
		return err
	}

	if err := stack.ValidateTemplates(); err != nil {
		return err
	}

	if err := stack.RenderFiles(renderOpts.dir); err != nil {
		return fmt.Errorf("failed to render files: %v", err)
	}

	successMsg :=
		`Success! Stack rendered to %s and %s.

Next steps:
1. Look over the stack template and the router user data.
2. Use the "onprem-sim validate" command to check the stack with CloudFormation.
`
	fmt.Printf(successMsg,
		filepath.Join(renderOpts.dir, onprem.RenderedStackTemplateFile),
		filepath.Join(renderOpts.dir, onprem.RenderedUserDataFile),
	)
	return nil
}
