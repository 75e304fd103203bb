package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgw-labs/onprem-sim/core/onprem"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Print version information and exit",
	Long:  ``,
	Run:   runCmdVersion,
}

func init() {
	RootCmd.AddCommand(cmdVersion)
}

func runCmdVersion(_ *cobra.Command, _ []string) {
	fmt.Printf("onprem-sim version %s\n", onprem.VERSION)
}
