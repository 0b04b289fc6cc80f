package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd creates the checklist command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Vehicle inspection checklist service",
		Long: `checklist renders vehicle inspection checklists as PDF reports and
uploads them to the Drive web app. It serves the HTTP API used by the
checklist form and can render a saved record from the command line.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ./checklist.yaml or $XDG_CONFIG_HOME/checklist/checklist.yaml)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewVersionCmd())
	return cmd
}
