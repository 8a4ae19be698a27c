package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tylercoen/bankist/config"
	"github.com/tylercoen/bankist/ledger"
)

func demoJournal(rc *RootConfig) config.JournalConfig {
	return config.JournalConfig{Type: "sqlite", DBPath: rc.DBPath}
}

func newDemoCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted session over the demo accounts",
		Long: `Walk through a full session against the seeded accounts:

  1. Log in as the first account
  2. Transfer to the second account
  3. Request a loan
  4. Print the resulting statement
  5. Close the second account

Operations are journaled to the SQLite database given by --db.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(rc)
		},
	}
}

func runDemo(rc *RootConfig) error {
	cfg, err := loadConfig(rc)
	if err != nil {
		return err
	}
	if len(cfg.Accounts) < 2 {
		return fmt.Errorf("demo needs at least two seed accounts, have %d", len(cfg.Accounts))
	}
	store, err := cfg.Build()
	if err != nil {
		return err
	}

	cfg.Journal = demoJournal(rc)
	jour, err := cfg.Journal.Open()
	if err != nil {
		return err
	}
	defer jour.Close()

	engine := ledger.NewEngine(store, jour)

	jonas := cfg.Accounts[0]
	jessica := cfg.Accounts[1]
	js := ledger.DeriveUsername(jonas.Owner)
	jd := ledger.DeriveUsername(jessica.Owner)

	fmt.Printf("Logging in as %s (%s)...\n", jonas.Owner, js)
	acc, err := engine.Authenticate(js, jonas.PIN)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome back, %s\n\n", acc.FirstName())

	fmt.Printf("Transferring 500 to %s...\n", jd)
	if err := engine.Transfer(js, jd, 500); err != nil {
		return err
	}

	fmt.Println("Requesting a loan of 4000.50...")
	granted, err := engine.RequestLoan(js, 4000.50)
	if err != nil {
		return err
	}
	fmt.Printf("Loan granted: %.2f\n\n", granted)

	acc, _ = engine.Account(js)
	printStatement(acc, time.Now(), false)

	fmt.Printf("\nClosing account %s...\n", jd)
	if err := engine.CloseAccount(jd, jd, jessica.PIN); err != nil {
		return err
	}
	fmt.Printf("Accounts remaining: %d\n", store.Len())

	return nil
}
