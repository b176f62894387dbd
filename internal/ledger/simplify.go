package ledger

import (
	"sort"

	"github.com/splitledger/splitledger/internal/models"
)

// SuggestedPayment is one transfer in a minimal settlement plan.
type SuggestedPayment struct {
	// From is the user who should pay.
	From string `json:"from"`

	// To is the user who should be paid.
	To string `json:"to"`

	// Amount is the transfer amount.
	Amount float64 `json:"amount"`
}

// SuggestSettlements computes a small set of payments that would bring every
// user's total balance to zero. It matches debtors against creditors
// greedily on their net positions, so the plan needs at most one payment per
// user beyond the smaller of the two sides.
//
// The plan is advisory: executing a suggested payment is a normal Settle
// call. Users are processed in ID order, so the output is deterministic.
func (l *Ledger) SuggestSettlements() []SuggestedPayment {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(l.store.Users()))
	for id := range l.store.Users() {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	type position struct {
		id  string
		net float64
	}
	var debtors, creditors []position
	for _, id := range ids {
		user, _ := l.store.User(id)
		net := user.TotalBalance()
		switch {
		case net < -models.Tolerance:
			debtors = append(debtors, position{id: id, net: -net})
		case net > models.Tolerance:
			creditors = append(creditors, position{id: id, net: net})
		}
	}

	var plan []SuggestedPayment
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].net
		if creditors[j].net < amount {
			amount = creditors[j].net
		}

		if amount > models.Tolerance {
			plan = append(plan, SuggestedPayment{
				From:   debtors[i].id,
				To:     creditors[j].id,
				Amount: amount,
			})
		}

		debtors[i].net -= amount
		creditors[j].net -= amount
		if debtors[i].net < models.Tolerance {
			i++
		}
		if creditors[j].net < models.Tolerance {
			j++
		}
	}
	return plan
}
