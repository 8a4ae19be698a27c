package journal

import "time"

// Operation kinds recorded by the engine. A transfer produces two records,
// one per leg, sharing the same timestamp.
const (
	OpLogin       = "login"
	OpTransferOut = "transfer_out"
	OpTransferIn  = "transfer_in"
	OpLoan        = "loan"
	OpClose       = "close"
)

// Record is one audited engine operation. It captures what happened, not
// account state: the ledger itself lives only in memory.
type Record struct {
	ID           string // ULID, time-sortable
	Time         time.Time
	Op           string
	Username     string
	Counterparty string  // other leg of a transfer, empty otherwise
	Amount       float64 // zero for login/close
}

type Journal interface {
	Record(Record) error
	Close() error
}

// Nop discards everything. It is the default backend: auditing is opt-in.
type Nop struct{}

func (Nop) Record(Record) error { return nil }
func (Nop) Close() error        { return nil }
