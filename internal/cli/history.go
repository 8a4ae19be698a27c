package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tylercoen/bankist/journal"
)

func newHistoryCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "history <username>",
		Short: "List journaled operations for an account",
		Long: `Query the SQLite operation journal for everything recorded against one
account: logins, transfer legs, loans and closure.

Example:
  bankist history js --db ./bankist.sqlite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(rc.DBPath)
			if err != nil {
				return err
			}
			defer j.Close()

			recs, err := j.ListByUsername(args[0])
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Printf("no operations recorded for %q\n", args[0])
				return nil
			}

			for _, r := range recs {
				line := fmt.Sprintf("%s  %-12s", r.Time.Format("2006-01-02 15:04:05"), r.Op)
				if r.Amount != 0 {
					line += fmt.Sprintf("  %10.2f", r.Amount)
				}
				if r.Counterparty != "" {
					line += fmt.Sprintf("  (%s)", r.Counterparty)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
