package ledger

import (
	"math"
	"sync"
	"time"

	"github.com/tylercoen/bankist/journal"
	"github.com/tylercoen/bankist/pkg/id"
)

// Engine runs the business operations over a Store. Every operation executes
// inside one critical section keyed by the engine, so a transfer touching two
// accounts can never interleave with a close or another transfer.
//
// The engine holds no session: the caller keeps the current username from a
// successful Authenticate and passes it back in.
type Engine struct {
	mu    sync.Mutex
	store *Store
	jour  journal.Journal
	now   func() time.Time
}

// NewEngine wires the engine to its store and operation journal. A nil
// journal disables auditing.
func NewEngine(store *Store, jour journal.Journal) *Engine {
	if jour == nil {
		jour = journal.Nop{}
	}
	return &Engine{
		store: store,
		jour:  jour,
		now:   time.Now,
	}
}

// SetClock replaces the time source. Tests use this to pin "now".
func (e *Engine) SetClock(now func() time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
}

// Account returns a snapshot of one account. Callers re-fetch after a
// mutating operation rather than holding on to stale copies.
func (e *Engine) Account(username string) (*Account, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.store.FindByUsername(username)
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// Authenticate checks username and PIN and returns an account snapshot.
// Unknown user and wrong PIN are the same ErrBadCredentials: the caller gets
// no signal about which check failed.
func (e *Engine) Authenticate(username string, pin int) (*Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.store.FindByUsername(username)
	if !ok || a.PIN != pin {
		return nil, ErrBadCredentials
	}

	if err := e.jour.Record(journal.Record{
		ID:       id.New(),
		Time:     e.now(),
		Op:       journal.OpLogin,
		Username: a.Username,
	}); err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

// Transfer moves amount from one account to another as a single atomic step:
// a negative movement on the source, a positive one on the destination, both
// stamped with the same "now". Any failed precondition leaves both accounts
// untouched.
func (e *Engine) Transfer(from, to string, amount float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if amount <= 0 {
		return ErrBadAmount
	}
	src, ok := e.store.FindByUsername(from)
	if !ok {
		return ErrNotFound
	}
	dst, ok := e.store.FindByUsername(to)
	if !ok {
		return ErrUnknownRecipient
	}
	if dst.Username == src.Username {
		return ErrSelfTransfer
	}
	// Balance is recomputed from the movements at the moment of the check,
	// never read from a cache.
	if src.Balance() < amount {
		return ErrInsufficientFunds
	}

	now := e.now()
	src.addMovement(-amount, now)
	dst.addMovement(amount, now)

	if err := e.jour.Record(journal.Record{
		ID:           id.New(),
		Time:         now,
		Op:           journal.OpTransferOut,
		Username:     src.Username,
		Counterparty: dst.Username,
		Amount:       amount,
	}); err != nil {
		return err
	}
	return e.jour.Record(journal.Record{
		ID:           id.New(),
		Time:         now,
		Op:           journal.OpTransferIn,
		Username:     dst.Username,
		Counterparty: src.Username,
		Amount:       amount,
	})
}

// RequestLoan grants a loan of the requested amount rounded up to the next
// whole unit, provided some existing movement is at least 10% of that. The
// granted amount is returned so the caller can display it.
func (e *Engine) RequestLoan(username string, requested float64) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.store.FindByUsername(username)
	if !ok {
		return 0, ErrNotFound
	}

	amount := math.Ceil(requested)
	if amount <= 0 {
		return 0, ErrBadAmount
	}

	qualifies := false
	for _, mov := range a.Movements {
		if mov >= amount*0.1 {
			qualifies = true
			break
		}
	}
	if !qualifies {
		return 0, ErrNoQualifyingDeposit
	}

	now := e.now()
	a.addMovement(amount, now)

	if err := e.jour.Record(journal.Record{
		ID:       id.New(),
		Time:     now,
		Op:       journal.OpLoan,
		Username: a.Username,
		Amount:   amount,
	}); err != nil {
		return 0, err
	}
	return amount, nil
}

// CloseAccount removes the account after the caller re-confirms its username
// and PIN. The caller's session reference is stale afterwards and clearing it
// is the caller's job.
func (e *Engine) CloseAccount(username, confirmUsername string, confirmPIN int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.store.FindByUsername(username)
	if !ok {
		return ErrNotFound
	}
	if confirmUsername != a.Username || confirmPIN != a.PIN {
		return ErrBadCredentials
	}

	e.store.RemoveByUsername(a.Username)

	return e.jour.Record(journal.Record{
		ID:       id.New(),
		Time:     e.now(),
		Op:       journal.OpClose,
		Username: a.Username,
	})
}
