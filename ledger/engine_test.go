package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tylercoen/bankist/journal"
)

// memJournal captures records in memory so tests can assert on auditing.
type memJournal struct {
	recs []journal.Record
}

func (m *memJournal) Record(r journal.Record) error {
	m.recs = append(m.recs, r)
	return nil
}

func (m *memJournal) Close() error { return nil }

var testNow = time.Date(2020, 7, 26, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *memJournal) {
	t.Helper()

	jonas := NewAccount("Jonas Schmedtmann", 1111, 1.2, "EUR", "pt-PT")
	jonas.addMovement(200, testNow.AddDate(0, -2, 0))
	jonas.addMovement(-100, testNow.AddDate(0, -1, 0))

	jessica := NewAccount("Jessica Davis", 2222, 1.5, "USD", "en-US")
	jessica.addMovement(5000, testNow.AddDate(0, -3, 0))

	jour := &memJournal{}
	e := NewEngine(NewStore(jonas, jessica), jour)
	e.SetClock(func() time.Time { return testNow })
	return e, jour
}

// snapshot grabs the movement state of every account so all-or-nothing
// rejections can be checked byte for byte.
func snapshot(t *testing.T, e *Engine, usernames ...string) map[string]*Account {
	t.Helper()

	out := make(map[string]*Account)
	for _, u := range usernames {
		a, ok := e.Account(u)
		require.True(t, ok)
		out[u] = a
	}
	return out
}

func assertUnchanged(t *testing.T, e *Engine, before map[string]*Account) {
	t.Helper()

	for u, prev := range before {
		got, ok := e.Account(u)
		require.True(t, ok)
		assert.Equal(t, prev.Movements, got.Movements)
		assert.Equal(t, prev.MovementDates, got.MovementDates)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	e, jour := newTestEngine(t)

	acc, err := e.Authenticate("js", 1111)
	require.NoError(t, err)
	assert.Equal(t, "Jonas Schmedtmann", acc.Owner)

	require.Len(t, jour.recs, 1)
	assert.Equal(t, journal.OpLogin, jour.recs[0].Op)
	assert.Equal(t, "js", jour.recs[0].Username)
}

func TestAuthenticateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		pin      int
	}{
		{name: "unknown_user", username: "nobody", pin: 1111},
		{name: "wrong_pin", username: "js", pin: 9999},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, jour := newTestEngine(t)
			acc, err := e.Authenticate(tt.username, tt.pin)

			// Unknown user and wrong PIN are indistinguishable to the caller.
			assert.ErrorIs(t, err, ErrBadCredentials)
			assert.Nil(t, acc)
			assert.Empty(t, jour.recs)
		})
	}
}

func TestTransfer(t *testing.T) {
	t.Parallel()

	e, jour := newTestEngine(t)

	require.NoError(t, e.Transfer("jd", "js", 250))

	src, _ := e.Account("jd")
	dst, _ := e.Account("js")

	assert.Equal(t, -250.0, src.Movements[len(src.Movements)-1])
	assert.Equal(t, 250.0, dst.Movements[len(dst.Movements)-1])

	// Both legs carry the same timestamp at the same index as the movement.
	assert.Len(t, src.MovementDates, len(src.Movements))
	assert.Len(t, dst.MovementDates, len(dst.Movements))
	assert.Equal(t, testNow, src.MovementDates[len(src.MovementDates)-1])
	assert.Equal(t, testNow, dst.MovementDates[len(dst.MovementDates)-1])

	require.Len(t, jour.recs, 2)
	assert.Equal(t, journal.OpTransferOut, jour.recs[0].Op)
	assert.Equal(t, journal.OpTransferIn, jour.recs[1].Op)
	assert.Equal(t, "js", jour.recs[0].Counterparty)
}

func TestTransferRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from     string
		to       string
		amount   float64
		expected error
	}{
		{name: "zero_amount", from: "jd", to: "js", amount: 0, expected: ErrBadAmount},
		{name: "negative_amount", from: "jd", to: "js", amount: -10, expected: ErrBadAmount},
		{name: "unknown_source", from: "nobody", to: "js", amount: 10, expected: ErrNotFound},
		{name: "unknown_recipient", from: "jd", to: "nobody", amount: 10, expected: ErrUnknownRecipient},
		{name: "self_transfer", from: "jd", to: "jd", amount: 10, expected: ErrSelfTransfer},
		{name: "insufficient_funds", from: "js", to: "jd", amount: 100.01, expected: ErrInsufficientFunds},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, jour := newTestEngine(t)
			before := snapshot(t, e, "js", "jd")

			err := e.Transfer(tt.from, tt.to, tt.amount)

			assert.ErrorIs(t, err, tt.expected)
			assertUnchanged(t, e, before)
			assert.Empty(t, jour.recs)
		})
	}
}

func TestTransferBalanceComputedFresh(t *testing.T) {
	t.Parallel()

	// js holds 200 - 100 = 100. A transfer of exactly 100 is allowed, the
	// next one of any size is not.
	e, _ := newTestEngine(t)

	require.NoError(t, e.Transfer("js", "jd", 100))
	assert.ErrorIs(t, e.Transfer("js", "jd", 0.01), ErrInsufficientFunds)
}

func TestRequestLoan(t *testing.T) {
	t.Parallel()

	e, jour := newTestEngine(t)

	// 4000.50 rounds up to 4001; jessica's 5000 deposit covers 10% of it.
	granted, err := e.RequestLoan("jd", 4000.50)
	require.NoError(t, err)
	assert.Equal(t, 4001.0, granted)

	acc, _ := e.Account("jd")
	assert.Equal(t, 4001.0, acc.Movements[len(acc.Movements)-1])
	assert.Equal(t, testNow, acc.MovementDates[len(acc.MovementDates)-1])
	assert.Len(t, acc.MovementDates, len(acc.Movements))

	require.Len(t, jour.recs, 1)
	assert.Equal(t, journal.OpLoan, jour.recs[0].Op)
	assert.Equal(t, 4001.0, jour.recs[0].Amount)
}

func TestRequestLoanCeilingNormalization(t *testing.T) {
	t.Parallel()

	// 4.2 and 5 must behave identically: both normalize to 5 before the
	// 10%-of-existing-deposit check.
	for _, requested := range []float64{4.2, 5} {
		e, _ := newTestEngine(t)

		granted, err := e.RequestLoan("js", requested)
		require.NoError(t, err)
		assert.Equal(t, 5.0, granted)
	}
}

func TestRequestLoanRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		amount   float64
		expected error
	}{
		{name: "unknown_user", username: "nobody", amount: 100, expected: ErrNotFound},
		{name: "zero_amount", username: "js", amount: 0, expected: ErrBadAmount},
		{name: "negative_amount", username: "js", amount: -5, expected: ErrBadAmount},
		// js's largest movement is 200, so anything above 2000 has no
		// qualifying deposit.
		{name: "no_qualifying_deposit", username: "js", amount: 2001, expected: ErrNoQualifyingDeposit},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, jour := newTestEngine(t)
			before := snapshot(t, e, "js", "jd")

			_, err := e.RequestLoan(tt.username, tt.amount)

			assert.ErrorIs(t, err, tt.expected)
			assertUnchanged(t, e, before)
			assert.Empty(t, jour.recs)
		})
	}
}

func TestCloseAccount(t *testing.T) {
	t.Parallel()

	e, jour := newTestEngine(t)

	require.NoError(t, e.CloseAccount("jd", "jd", 2222))

	_, ok := e.Account("jd")
	assert.False(t, ok)

	require.Len(t, jour.recs, 1)
	assert.Equal(t, journal.OpClose, jour.recs[0].Op)
}

func TestCloseAccountRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		confirmUsername string
		confirmPIN      int
	}{
		{name: "wrong_username", confirmUsername: "js", confirmPIN: 2222},
		{name: "wrong_pin", confirmUsername: "jd", confirmPIN: 1111},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, _ := newTestEngine(t)

			err := e.CloseAccount("jd", tt.confirmUsername, tt.confirmPIN)

			assert.ErrorIs(t, err, ErrBadCredentials)
			_, ok := e.Account("jd")
			assert.True(t, ok)
		})
	}
}
