package ledger

import (
	"sort"
	"time"
)

// Reporting: pure reads over an account's movements. None of these mutate the
// account; callers that want a cached balance keep it themselves.

// Balance is the signed sum of all movements.
func (a *Account) Balance() float64 {
	var sum float64
	for _, mov := range a.Movements {
		sum += mov
	}
	return sum
}

// TotalIncome is the sum of positive movements.
func (a *Account) TotalIncome() float64 {
	var sum float64
	for _, mov := range a.Movements {
		if mov > 0 {
			sum += mov
		}
	}
	return sum
}

// TotalExpense is the absolute value of the sum of negative movements.
func (a *Account) TotalExpense() float64 {
	var sum float64
	for _, mov := range a.Movements {
		if mov < 0 {
			sum += mov
		}
	}
	return -sum
}

// QualifyingInterest computes interest per deposit and keeps only amounts of
// at least one whole unit; smaller interest is not paid out.
func (a *Account) QualifyingInterest() float64 {
	var sum float64
	for _, mov := range a.Movements {
		if mov <= 0 {
			continue
		}
		interest := mov * a.InterestRate / 100
		if interest >= 1 {
			sum += interest
		}
	}
	return sum
}

// Entry is one movement paired with its date and Seq, the 1-based insertion
// position used for display numbering. Seq follows the original entry, never
// the sorted position.
type Entry struct {
	Amount float64
	Date   time.Time
	Seq    int
}

// OrderedMovements returns the movement/date pairs, in insertion order when
// ascending is false, or stably sorted ascending by amount. Sorting works on
// a copy; the account's movement sequence is never reordered. Ties keep their
// original relative order.
func (a *Account) OrderedMovements(ascending bool) []Entry {
	out := make([]Entry, len(a.Movements))
	for i, mov := range a.Movements {
		out[i] = Entry{Amount: mov, Date: a.MovementDates[i], Seq: i + 1}
	}
	if ascending {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Amount < out[j].Amount
		})
	}
	return out
}
