package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootConfig carries the global flag values into subcommands.
type RootConfig struct {
	ConfigPath string
	DBPath     string
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:           "bankist",
		Short:         "Bankist — a minimal multi-account banking ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional; built-in demo accounts otherwise)")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "./bankist.sqlite", "SQLite operation journal database")

	// Subcommands
	cmd.AddCommand(
		newDemoCmd(rc),
		newStatementCmd(rc),
		newHistoryCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("bankist (dev)")
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
