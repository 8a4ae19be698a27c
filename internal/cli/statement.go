package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tylercoen/bankist/config"
	"github.com/tylercoen/bankist/format"
	"github.com/tylercoen/bankist/journal"
	"github.com/tylercoen/bankist/ledger"
)

func newStatementCmd(rc *RootConfig) *cobra.Command {
	var sortAscending bool

	cmd := &cobra.Command{
		Use:   "statement <username> <pin>",
		Short: "Print an account statement",
		Long: `Authenticate against the seeded accounts and print the movement list,
balance, income/expense totals and qualifying interest, formatted for the
account's locale and currency.

Example:
  bankist statement js 1111
  bankist statement jd 2222 --sort`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rc)
			if err != nil {
				return err
			}
			store, err := cfg.Build()
			if err != nil {
				return err
			}

			var pin int
			if _, err := fmt.Sscanf(args[1], "%d", &pin); err != nil {
				return fmt.Errorf("pin must be numeric: %w", err)
			}

			engine := ledger.NewEngine(store, journal.Nop{})
			acc, err := engine.Authenticate(args[0], pin)
			if err != nil {
				return err
			}

			printStatement(acc, time.Now(), sortAscending)
			return nil
		},
	}

	cmd.Flags().BoolVar(&sortAscending, "sort", false, "sort movements ascending by amount")
	return cmd
}

func printStatement(acc *ledger.Account, now time.Time, sortAscending bool) {
	fmt.Printf("Welcome back, %s\n\n", acc.FirstName())

	for _, e := range acc.OrderedMovements(sortAscending) {
		kind := "deposit"
		if e.Amount < 0 {
			kind = "withdrawal"
		}
		fmt.Printf("%3d %-10s %-14s %s\n",
			e.Seq,
			kind,
			format.RelativeDate(e.Date, now, acc.Locale),
			format.Currency(e.Amount, acc.Locale, acc.Currency),
		)
	}

	fmt.Println()
	fmt.Printf("Balance:  %s\n", format.Currency(acc.Balance(), acc.Locale, acc.Currency))
	fmt.Printf("In:       %s\n", format.Currency(acc.TotalIncome(), acc.Locale, acc.Currency))
	fmt.Printf("Out:      %s\n", format.Currency(acc.TotalExpense(), acc.Locale, acc.Currency))
	fmt.Printf("Interest: %s\n", format.Currency(acc.QualifyingInterest(), acc.Locale, acc.Currency))
}

func loadConfig(rc *RootConfig) (*config.Config, error) {
	if rc.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(rc.ConfigPath)
}
