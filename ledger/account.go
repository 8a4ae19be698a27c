// Package ledger models the accounts of a small in-memory bank, the business
// rules that mutate them (transfers, loans, closure), and the derived
// reporting over their movements.
package ledger

import (
	"strings"
	"time"
	"unicode"
)

// Account is one customer's ledger. Movements is the canonical insertion-order
// sequence of signed amounts (positive deposit, negative withdrawal), and
// MovementDates pairs a timestamp with each movement at the same index.
// After every mutation len(Movements) == len(MovementDates) must hold.
type Account struct {
	Owner         string
	Username      string
	PIN           int
	InterestRate  float64 // percent, e.g. 1.2 means 1.2%
	Movements     []float64
	MovementDates []time.Time
	Currency      string // ISO 4217 code, e.g. "EUR"
	Locale        string // BCP 47 tag, e.g. "pt-PT"
}

// DeriveUsername builds the stable lookup key for an owner name: the lowercase
// first letter of every whitespace-separated token ("Jonas Schmedtmann" -> "js").
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, tok := range strings.Fields(owner) {
		r := []rune(tok)[0]
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// NewAccount derives the username from owner. Movement and date slices start
// empty; use addMovement to keep the pairing invariant.
func NewAccount(owner string, pin int, interestRate float64, currency, locale string) *Account {
	return &Account{
		Owner:        owner,
		Username:     DeriveUsername(owner),
		PIN:          pin,
		InterestRate: interestRate,
		Currency:     currency,
		Locale:       locale,
	}
}

// addMovement appends one signed amount with its timestamp. This is the only
// way movements grow; entries are never edited or removed individually.
func (a *Account) addMovement(amount float64, at time.Time) {
	a.Movements = append(a.Movements, amount)
	a.MovementDates = append(a.MovementDates, at)
}

// Clone returns a deep copy so callers can hold a snapshot without aliasing
// the engine's live state.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Movements = append([]float64(nil), a.Movements...)
	cp.MovementDates = append([]time.Time(nil), a.MovementDates...)
	return &cp
}

// FirstName is the leading token of Owner, used for welcome messages.
func (a *Account) FirstName() string {
	if f := strings.Fields(a.Owner); len(f) > 0 {
		return f[0]
	}
	return a.Owner
}
