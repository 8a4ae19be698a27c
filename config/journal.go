package config

import (
	"fmt"

	"github.com/tylercoen/bankist/journal"
)

// Open builds the configured journal backend. Callers own the Close.
func (jc JournalConfig) Open() (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return journal.Nop{}, nil
	case "csv":
		return journal.NewCSV(jc.OpsFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}
