package ledger

import "errors"

// Rejections are expected control-flow outcomes, not faults. Every engine
// operation guarantees zero side effects when it returns one of these.
var (
	// ErrBadCredentials covers both unknown username and PIN mismatch.
	// Authenticate deliberately does not distinguish the two.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrNotFound means the acting account does not exist in the store.
	ErrNotFound = errors.New("account not found")

	// ErrBadAmount means the amount is not positive.
	ErrBadAmount = errors.New("amount must be > 0")

	// ErrUnknownRecipient means no account matches the destination username.
	ErrUnknownRecipient = errors.New("unknown recipient")

	// ErrSelfTransfer means source and destination are the same account.
	ErrSelfTransfer = errors.New("cannot transfer to self")

	// ErrInsufficientFunds means the source balance is below the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNoQualifyingDeposit means no existing movement reaches 10% of the
	// requested loan.
	ErrNoQualifyingDeposit = errors.New("no qualifying deposit for loan")
)
