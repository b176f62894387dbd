package ledger

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/splitledger/splitledger/internal/models"
)

// checkInvariants verifies the two global balance properties:
//
//   - conservation: totals across all users sum to zero
//   - symmetry: A's entry for B mirrors B's entry for A (absence counts as
//     zero)
func checkInvariants(t *testing.T, l *Ledger, step int) {
	t.Helper()

	users := l.ListUsers()

	var sum float64
	for _, u := range users {
		sum += u.TotalBalance()
	}
	if math.Abs(sum) > models.Tolerance {
		t.Fatalf("step %d: total balances sum to %v, want 0", step, sum)
	}

	for _, a := range users {
		for counterparty, amount := range a.Balances {
			if counterparty == a.ID {
				t.Fatalf("step %d: %s holds a balance entry for itself", step, a.ID)
			}
			mirror := l.UserBalances(counterparty)[a.ID]
			if math.Abs(amount+mirror) > models.Tolerance {
				t.Fatalf("step %d: %s->%s = %v but %s->%s = %v, want negation",
					step, a.ID, counterparty, amount, counterparty, a.ID, mirror)
			}
		}
	}
}

// TestInvariantsUnderRandomOperations drives a deterministic pseudo-random
// mix of expenses and settlements and checks conservation and symmetry after
// every successful operation.
func TestInvariantsUnderRandomOperations(t *testing.T) {
	l := newTestLedger(t)
	users := createUsers(t, l, 5)
	rng := rand.New(rand.NewSource(42))

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	for step := 0; step < 200; step++ {
		switch rng.Intn(4) {
		case 0: // equal split among a random subset
			payer := ids[rng.Intn(len(ids))]
			among := randomSubset(rng, ids)
			_, err := l.AddExpense(context.Background(), ExpenseInput{
				Description: "Equal",
				Amount:      float64(rng.Intn(10000)+1) / 100,
				PaidBy:      payer,
				SplitAmong:  among,
				SplitType:   models.SplitEqual,
			})
			if err != nil {
				t.Fatalf("step %d: AddExpense failed: %v", step, err)
			}
		case 1: // exact split with amounts that sum to the total
			payer := ids[rng.Intn(len(ids))]
			among := randomSubset(rng, ids)
			details := make(map[string]float64, len(among))
			var amount float64
			for _, id := range among {
				share := float64(rng.Intn(5000)+1) / 100
				details[id] = share
				amount += share
			}
			_, err := l.AddExpense(context.Background(), ExpenseInput{
				Description:  "Exact",
				Amount:       amount,
				PaidBy:       payer,
				SplitAmong:   among,
				SplitType:    models.SplitExact,
				SplitDetails: details,
			})
			if err != nil {
				t.Fatalf("step %d: AddExpense failed: %v", step, err)
			}
		case 2: // percentage split, two distinct participants
			payer := ids[rng.Intn(len(ids))]
			other := ids[rng.Intn(len(ids))]
			if payer == other {
				continue
			}
			pct := float64(rng.Intn(99) + 1)
			_, err := l.AddExpense(context.Background(), ExpenseInput{
				Description:  "Percentage",
				Amount:       float64(rng.Intn(10000)+1) / 100,
				PaidBy:       payer,
				SplitAmong:   []string{payer, other},
				SplitType:    models.SplitPercentage,
				SplitDetails: map[string]float64{payer: pct, other: 100 - pct},
			})
			if err != nil {
				t.Fatalf("step %d: AddExpense failed: %v", step, err)
			}
		case 3: // settlement between two distinct users
			payer := ids[rng.Intn(len(ids))]
			receiver := ids[rng.Intn(len(ids))]
			if payer == receiver {
				continue
			}
			amount := float64(rng.Intn(5000)+1) / 100
			if err := l.Settle(context.Background(), payer, receiver, amount); err != nil {
				t.Fatalf("step %d: Settle failed: %v", step, err)
			}
		}

		checkInvariants(t, l, step)
	}
}

// randomSubset returns a non-empty selection of ids without duplicates,
// preserving their relative order.
func randomSubset(rng *rand.Rand, ids []string) []string {
	var subset []string
	for _, id := range ids {
		if rng.Intn(2) == 0 {
			subset = append(subset, id)
		}
	}
	if len(subset) == 0 {
		subset = append(subset, ids[rng.Intn(len(ids))])
	}
	return subset
}
